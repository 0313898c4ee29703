// Package report renders weekly summaries and reviews as Markdown and PDF.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/stats"
)

const HeadingLayout = "Jan 02, 2006"

// WeekHeading renders "Week of Mar 11, 2024".
func WeekHeading(week time.Time) string {
	return "Week of " + week.Format(HeadingLayout)
}

func WeekMarkdown(ws stats.WeeklyStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", WeekHeading(ws.WeekStart))
	fmt.Fprintf(&b, "- **Total Sprints:** %d (%d mins)\n", ws.TotalSprints, ws.TotalMinutes)
	fmt.Fprintf(&b, "- **Active Days:** %s\n", ws.ActiveDaysLabel())
	fmt.Fprintf(&b, "- **Sleep Logs:** %d\n\n", ws.SleepEntries)

	b.WriteString("| " + strings.Join(stats.Weekdays, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(stats.Weekdays)) + "\n")
	counts := make([]string, 0, len(stats.Weekdays))
	for _, d := range stats.Weekdays {
		counts = append(counts, fmt.Sprintf("%d", ws.SprintsPerDay[d]))
	}
	b.WriteString("| " + strings.Join(counts, " | ") + " |\n")
	return b.String()
}

type section struct {
	title string
	body  string
}

func reviewSections(r model.WeeklyReview) []section {
	return []section{
		{"Wins", r.Wins},
		{"Struggles", r.Struggles},
		{"Improvements", r.Improvements},
		{"Priorities", r.Priorities},
	}
}

func ReviewMarkdown(r model.WeeklyReview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n", WeekHeading(r.WeekStart))
	for _, s := range reviewSections(r) {
		body := strings.TrimSpace(s.body)
		if body == "" {
			body = "_none_"
		}
		fmt.Fprintf(&b, "\n### %s\n\n%s\n", s.title, body)
	}
	return b.String()
}

// ReviewHistoryMarkdown expects reviews newest first.
func ReviewHistoryMarkdown(reviews []model.WeeklyReview) string {
	if len(reviews) == 0 {
		return "_No reviews yet._\n"
	}
	parts := make([]string, 0, len(reviews))
	for _, r := range reviews {
		parts = append(parts, ReviewMarkdown(r))
	}
	return strings.Join(parts, "\n---\n\n")
}
