package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/report"
	"github.com/sandeepkv93/focusd/internal/views"
)

func newReviewCmd(o *rootOptions) *cobra.Command {
	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Write and read weekly reviews",
	}
	reviewCmd.AddCommand(newReviewSetCmd(o))
	reviewCmd.AddCommand(newReviewShowCmd(o))
	reviewCmd.AddCommand(newReviewHistoryCmd(o))
	return reviewCmd
}

func newReviewSetCmd(o *rootOptions) *cobra.Command {
	var week string
	var fields model.ReviewFields
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save the review for a week; unspecified fields keep their saved text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(week)
			if err != nil {
				return err
			}
			st, cleanup, err := o.openState(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			merged := model.ReviewFields{}
			if saved, ok := st.Review(day); ok {
				merged = saved.Fields()
			}
			flags := cmd.Flags()
			if flags.Changed("wins") {
				merged.Wins = fields.Wins
			}
			if flags.Changed("struggles") {
				merged.Struggles = fields.Struggles
			}
			if flags.Changed("improvements") {
				merged.Improvements = fields.Improvements
			}
			if flags.Changed("priorities") {
				merged.Priorities = fields.Priorities
			}

			saved, err := st.SaveReview(cmd.Context(), day, merged)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Review saved: %s\n", report.WeekHeading(saved.WeekStart))
			return nil
		},
	}
	cmd.Flags().StringVar(&week, "week", "", "any date in the week, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&fields.Wins, "wins", "", "what went well")
	cmd.Flags().StringVar(&fields.Struggles, "struggles", "", "what was hard")
	cmd.Flags().StringVar(&fields.Improvements, "improvements", "", "what to change")
	cmd.Flags().StringVar(&fields.Priorities, "priorities", "", "priorities for next week")
	return cmd
}

func newReviewShowCmd(o *rootOptions) *cobra.Command {
	var week string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the review for a week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(week)
			if err != nil {
				return err
			}
			st, cleanup, err := o.openState(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			review, ok := st.Review(day)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "No review for %s.\n", report.WeekHeading(model.WeekStart(day)))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), views.RenderMarkdown(report.ReviewMarkdown(review), o.markdownStyle(cmd)))
			return nil
		},
	}
	cmd.Flags().StringVar(&week, "week", "", "any date in the week, YYYY-MM-DD (default today)")
	return cmd
}

func newReviewHistoryCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show all reviews, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cleanup, err := o.openState(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			md := report.ReviewHistoryMarkdown(st.ReviewHistory())
			fmt.Fprintln(cmd.OutOrStdout(), views.RenderMarkdown(md, o.markdownStyle(cmd)))
			return nil
		},
	}
}

// parseDay reads YYYY-MM-DD in local time; empty means now.
func parseDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now(), nil
	}
	day, err := time.ParseInLocation(model.WeekKeyLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", raw)
	}
	return day, nil
}
