package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusd/internal/report"
	"github.com/sandeepkv93/focusd/internal/sprint"
	"github.com/sandeepkv93/focusd/internal/views"
)

const recentSleepShown = 5

func (m Model) handleDashboardKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "a":
		m.mode = modeAddTask
		m.addInput.SetValue("")
		m.addInput.Focus()
	case "d":
		if len(m.doc.Tasks) == 0 {
			return m
		}
		name, err := m.state.RemoveTask(m.ctx, m.cursor)
		m.afterMutation(fmt.Sprintf("Removed task: %s", name), err)
	case "enter":
		name, err := m.state.SelectTask(m.cursor)
		m.afterMutation(fmt.Sprintf("Focus task: %s", name), err)
	case "r":
		name, err := m.state.PickRandomTask()
		m.afterMutation(fmt.Sprintf("Focus task: %s", name), err)
	case "s":
		run, err := m.state.StartSprint("")
		m.afterMutation(fmt.Sprintf("Sprint started: %s", run.CurrentTask), err)
	case "x":
		if m.state.Sprint().Running {
			m.state.StopSprint()
			m.afterMutation("Sprint stopped", nil)
		}
	case "c":
		m.state.ClearSprint()
		m.afterMutation("Timer cleared", nil)
	case "L":
		entry, err := m.state.LogSleep(m.ctx)
		m.afterMutation("Logged: "+entry.Label(), err)
	case "W":
		entry, err := m.state.LogWake(m.ctx)
		m.afterMutation("Logged: "+entry.Label(), err)
	case "X":
		m.mode = modeConfirmReset
	}
	return m
}

func (m Model) handleAddTaskKey(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		m.addInput.Blur()
		m.addInput.SetValue("")
		m.Status = StatusBar{}
	case tea.KeyEnter:
		name := strings.TrimSpace(m.addInput.Value())
		err := m.state.AddTask(m.ctx, name)
		m.afterMutation(fmt.Sprintf("Added task: %s", name), err)
		if err == nil {
			m.mode = modeNormal
			m.addInput.Blur()
			m.addInput.SetValue("")
			m.cursor = len(m.doc.Tasks) - 1
			m.taskList.Select(m.cursor)
		}
	default:
		m.addInput = typeInto(m.addInput, msg)
	}
	return m
}

func (m Model) handleConfirmResetKey(msg tea.KeyMsg) Model {
	m.mode = modeNormal
	if msg.String() != "y" && msg.String() != "Y" {
		m.Status = StatusBar{Text: "reset cancelled"}
		return m
	}
	err := m.state.Reset(m.ctx)
	m.afterMutation("All data cleared", err)
	m.review.dirty = false
	m.loadReview()
	return m
}

// afterMutation reloads the document and reports the outcome. The document
// is reloaded on failure too, since a failed save keeps the change in memory.
func (m *Model) afterMutation(okText string, err error) {
	m.refresh()
	if err != nil {
		m.setError(err)
		return
	}
	m.LastError = nil
	m.Status = StatusBar{Text: okText}
}

func (m *Model) moveCursor(delta int) {
	if len(m.doc.Tasks) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.doc.Tasks)-1)
	m.taskList.Select(m.cursor)
}

func (m Model) renderTaskPanel() string {
	return views.RenderTaskPanel(views.TaskPanelData{
		ListView:  m.taskList.View(),
		AddView:   m.addInput.View(),
		Adding:    m.mode == modeAddTask,
		TaskCount: len(m.doc.Tasks),
		FocusTask: m.sprint.CurrentTask,
	})
}

func (m Model) renderTimerPanel() string {
	remaining := m.sprint.RemainingSeconds
	if !m.sprint.Running && remaining == 0 {
		remaining = sprint.Duration
	}
	pct := float64(m.sprint.Elapsed()) / float64(sprint.Duration)
	return views.RenderTimerPanel(views.TimerPanelData{
		Task:         m.sprint.CurrentTask,
		Running:      m.sprint.Running,
		Timer:        formatDuration(remaining),
		ProgressView: m.sprintProgress.ViewAs(pct),
		ProgressPct:  int(pct * 100),
		Sprints:      m.week.TotalSprints,
	})
}

func (m Model) renderStatsPanel() string {
	var recent []string
	start := max(len(m.doc.SleepLog)-recentSleepShown, 0)
	for i := len(m.doc.SleepLog) - 1; i >= start; i-- {
		recent = append(recent, m.doc.SleepLog[i].Label())
	}
	return views.RenderStatsPanel(views.StatsPanelData{
		SummaryView: views.RenderMarkdown(report.WeekMarkdown(m.week), m.markdownStyle),
		RecentSleep: recent,
	})
}
