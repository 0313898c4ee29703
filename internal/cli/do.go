package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/focusd/internal/commands"
)

func newDoCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "do <command>",
		Short: "Run one command-palette command",
		Long: "Run one command-palette command, for example:\n\n  focusd do \"add write report\"\n\nCommands:\n  " +
			strings.Join(commands.Usage(), "\n  "),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cleanup, err := o.openState(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := commands.Run(strings.Join(args, " "), commands.ForState(cmd.Context(), st))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}
