package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/focusd/internal/model"
)

func newSleepCmd(o *rootOptions, use string) *cobra.Command {
	short := "Log going to sleep now"
	if use == "wake" {
		short = "Log waking up now"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cleanup, err := o.openState(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			var entry model.SleepEntry
			if use == "wake" {
				entry, err = st.LogWake(cmd.Context())
			} else {
				entry, err = st.LogSleep(cmd.Context())
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged: %s\n", entry.Label())
			return nil
		},
	}
}
