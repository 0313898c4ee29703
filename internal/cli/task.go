package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newTaskCmd(o *rootOptions) *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the task list",
	}

	taskCmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Append a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cleanup, err := o.openState(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			name := strings.TrimSpace(strings.Join(args, " "))
			if err := st.AddTask(cmd.Context(), name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %d: %s\n", len(st.Snapshot().Tasks), name)
			return nil
		},
	})

	taskCmd.AddCommand(&cobra.Command{
		Use:     "rm <n>",
		Aliases: []string{"remove"},
		Short:   "Remove the task at position n (1-based)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid task number: %s", args[0])
			}
			st, cleanup, err := o.openState(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			name, err := st.RemoveTask(cmd.Context(), n-1)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed task: %s\n", name)
			return nil
		},
	})

	taskCmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cleanup, err := o.openState(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			tasks := st.Snapshot().Tasks
			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks.")
				return nil
			}
			for i, name := range tasks {
				fmt.Fprintf(out, "%3d. %s\n", i+1, name)
			}
			return nil
		},
	})

	taskCmd.AddCommand(&cobra.Command{
		Use:   "pick",
		Short: "Pick a random task to focus on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cleanup, err := o.openState(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			name, err := st.PickRandomTask()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Focus task: %s\n", name)
			return nil
		},
	})

	return taskCmd
}
