package views

import (
	"fmt"
	"strings"
)

type TaskPanelData struct {
	ListView  string
	AddView   string
	Adding    bool
	TaskCount int
	FocusTask string
}

type TimerPanelData struct {
	Task         string
	Running      bool
	Timer        string
	ProgressView string
	ProgressPct  int
	Sprints      int
}

type StatsPanelData struct {
	SummaryView string
	RecentSleep []string
}

type ReviewFieldData struct {
	Title   string
	View    string
	Focused bool
}

type ReviewPanelData struct {
	Heading string
	Fields  []ReviewFieldData
	Dirty   bool
}

type HistoryPanelData struct {
	ViewportView string
	Count        int
	ScrollPct    int
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	b.WriteString(accentStyle.Render(fmt.Sprintf("Tasks (%d)", data.TaskCount)) + "\n")
	if data.Adding {
		b.WriteString(data.AddView + "\n")
	}
	if data.TaskCount == 0 {
		b.WriteString(mutedStyle.Render("No tasks yet. Press [a] to add one.") + "\n")
	} else {
		b.WriteString(data.ListView + "\n")
	}
	if data.FocusTask != "" {
		b.WriteString(fmt.Sprintf("focus: %s\n", data.FocusTask))
	}
	b.WriteString(mutedStyle.Render("actions: [a]add [d]remove [enter]focus [r]random"))
	return strings.TrimSpace(b.String())
}

func RenderTimerPanel(data TimerPanelData) string {
	var b strings.Builder
	b.WriteString(accentStyle.Render("Sprint") + "\n")
	if data.Task != "" {
		b.WriteString(fmt.Sprintf("task: %s\n", data.Task))
	} else {
		b.WriteString("task: (none selected)\n")
	}
	state := "idle"
	if data.Running {
		state = "running"
	}
	b.WriteString(fmt.Sprintf("state: %s\n", state))
	b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(fmt.Sprintf("sprints this week: %d\n", data.Sprints))
	b.WriteString(mutedStyle.Render("actions: [s]start [x]stop [c]clear"))
	return strings.TrimSpace(b.String())
}

func RenderStatsPanel(data StatsPanelData) string {
	var b strings.Builder
	b.WriteString(data.SummaryView + "\n\n")
	b.WriteString(accentStyle.Render("Sleep log") + "\n")
	if len(data.RecentSleep) == 0 {
		b.WriteString(mutedStyle.Render("(empty)") + "\n")
	}
	for _, label := range data.RecentSleep {
		b.WriteString("- " + label + "\n")
	}
	b.WriteString(mutedStyle.Render("actions: [L]sleep [W]wake"))
	return strings.TrimSpace(b.String())
}

func RenderReviewPanel(data ReviewPanelData) string {
	var b strings.Builder
	title := "Weekly Review: " + data.Heading
	if data.Dirty {
		title += " *"
	}
	b.WriteString(accentStyle.Render(title) + "\n")
	for _, f := range data.Fields {
		marker := " "
		if f.Focused {
			marker = ">"
		}
		b.WriteString(fmt.Sprintf("\n%s %s\n%s\n", marker, f.Title, f.View))
	}
	b.WriteString(mutedStyle.Render("\nkeys: [tab]next field [ctrl+s]save [esc]back"))
	return strings.TrimSpace(b.String())
}

func RenderHistoryPanel(data HistoryPanelData) string {
	var b strings.Builder
	b.WriteString(accentStyle.Render(fmt.Sprintf("Review History (%d)", data.Count)) + "\n")
	b.WriteString(data.ViewportView + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d%% [j/k]scroll", data.ScrollPct)))
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderConfirm(prompt string) string {
	if prompt == "" {
		return ""
	}
	return errorStyle.Render(prompt) + " [y/N]"
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
