package commands

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/focusd/internal/app"
)

// ForState binds every palette command to st.
func ForState(ctx context.Context, st *app.State) Handlers {
	return Handlers{
		Add: func(a AddArgs) (Result, error) {
			if err := st.AddTask(ctx, a.Name); err != nil {
				return Result{}, err
			}
			return Result{Message: fmt.Sprintf("Added task: %s", a.Name)}, nil
		},
		Remove: func(a IndexArgs) (Result, error) {
			name, err := st.RemoveTask(ctx, a.Index)
			if err != nil {
				return Result{}, err
			}
			return Result{Message: fmt.Sprintf("Removed task: %s", name)}, nil
		},
		Pick: func() (Result, error) {
			name, err := st.PickRandomTask()
			if err != nil {
				return Result{}, err
			}
			return Result{Message: fmt.Sprintf("Focus task: %s", name)}, nil
		},
		Select: func(a IndexArgs) (Result, error) {
			name, err := st.SelectTask(a.Index)
			if err != nil {
				return Result{}, err
			}
			return Result{Message: fmt.Sprintf("Focus task: %s", name)}, nil
		},
		Start: func(a StartArgs) (Result, error) {
			run, err := st.StartSprint(a.Task)
			if err != nil {
				return Result{}, err
			}
			return Result{Message: fmt.Sprintf("Sprint started: %s", run.CurrentTask)}, nil
		},
		Stop: func() (Result, error) {
			st.StopSprint()
			return Result{Message: "Sprint stopped"}, nil
		},
		Clear: func() (Result, error) {
			st.ClearSprint()
			return Result{Message: "Timer cleared"}, nil
		},
		Sleep: func() (Result, error) {
			entry, err := st.LogSleep(ctx)
			if err != nil {
				return Result{}, err
			}
			return Result{Message: "Logged: " + entry.Label()}, nil
		},
		Wake: func() (Result, error) {
			entry, err := st.LogWake(ctx)
			if err != nil {
				return Result{}, err
			}
			return Result{Message: "Logged: " + entry.Label()}, nil
		},
	}
}
