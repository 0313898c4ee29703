package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/focusd/internal/report"
	"github.com/sandeepkv93/focusd/internal/views"
)

func newStatsCmd(o *rootOptions) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the weekly summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseDay(date)
			if err != nil {
				return err
			}
			st, cleanup, err := o.openState(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			md := report.WeekMarkdown(st.WeekStats(ref))
			fmt.Fprintln(cmd.OutOrStdout(), views.RenderMarkdown(md, o.markdownStyle(cmd)))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "any date in the week, YYYY-MM-DD (default today)")
	return cmd
}
