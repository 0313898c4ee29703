package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/focusd/internal/app"
	"github.com/sandeepkv93/focusd/internal/sprint"
)

func newSprintCmd(o *rootOptions) *cobra.Command {
	var tick time.Duration
	sprintCmd := &cobra.Command{
		Use:   "sprint [task]",
		Short: "Run a five-minute focus sprint in the foreground",
		Long: `Run a focus sprint on the given task, or on the first task in the list.
The sprint is recorded when the countdown reaches zero. Interrupting it
(Ctrl+C) stops the sprint without recording anything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, cleanup, err := o.openState(ctx, app.WithTimerOptions(sprint.Options{Tick: tick}))
			if err != nil {
				return err
			}
			defer cleanup()

			run, err := st.StartSprint(strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sprint started: %s (%s)\n", run.CurrentTask, formatDuration(run.RemainingSeconds))

			finished := false
			for {
				select {
				case <-ctx.Done():
					st.StopSprint()
					fmt.Fprintln(out, "\nSprint stopped; nothing recorded.")
					return nil
				case c, ok := <-st.Changes():
					if !ok {
						if finished {
							fmt.Fprintf(out, "\nSprint complete: %s\n", run.CurrentTask)
						}
						return nil
					}
					switch c.Kind {
					case app.ChangeTick:
						if c.Sprint.RunID != run.RunID {
							continue
						}
						if c.Sprint.Running {
							fmt.Fprintf(out, "\r%s %s", progressBar(float64(c.Sprint.Elapsed())/float64(sprint.Duration), 30), formatDuration(c.Sprint.RemainingSeconds))
							continue
						}
						// the countdown ended; Close applies the pending
						// completion even if its change was dropped
						finished = true
						go st.Close()
					case app.ChangeSprintCompleted:
						fmt.Fprintf(out, "\nSprint complete: %s\n", run.CurrentTask)
						return c.Err
					}
				}
			}
		},
	}
	sprintCmd.Flags().DurationVar(&tick, "tick", time.Second, "countdown tick interval")
	_ = sprintCmd.Flags().MarkHidden("tick")
	return sprintCmd
}

func formatDuration(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSec/60, totalSec%60)
}

func progressBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
