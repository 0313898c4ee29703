package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusd/internal/app"
	"github.com/sandeepkv93/focusd/internal/views"
)

func (m Model) Init() tea.Cmd {
	return waitForChangeCmd(m.state.Changes())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.historyViewport.Width = max(typed.Width-6, 20)
		m.historyViewport.Height = max(typed.Height-10, 5)
		return m, nil
	case StateChangeMsg:
		return m.onStateChange(typed.Change)
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			return m.switchView(typed.View)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.setError(typed.Err)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.mode {
	case modePalette:
		return m.handlePaletteKey(msg), nil
	case modeAddTask:
		return m.handleAddTaskKey(msg), nil
	case modeConfirmReset:
		return m.handleConfirmResetKey(msg), nil
	}

	if m.CurrentView == ViewReview {
		return m.handleReviewKey(msg)
	}

	switch keyStr {
	case "/":
		m.mode = modePalette
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Dashboard:
		return m.switchView(ViewDashboard)
	case m.Keys.Review:
		return m.switchView(ViewReview)
	case m.Keys.History:
		return m.switchView(ViewHistory)
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.CurrentView {
	case ViewDashboard:
		return m.handleDashboardKey(msg), nil
	case ViewHistory:
		var cmd tea.Cmd
		m.historyViewport, cmd = m.historyViewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	m.CurrentView = v
	switch v {
	case ViewReview:
		if !m.review.dirty {
			m.loadReview()
		}
		return m, m.focusReviewField(m.review.focus)
	case ViewHistory:
		m.refresh()
		m.historyViewport.GotoTop()
	}
	return m, nil
}

func (m Model) onStateChange(c app.Change) (tea.Model, tea.Cmd) {
	m.sprint = c.Sprint
	switch c.Kind {
	case app.ChangeSprintCompleted:
		m.refresh()
		if c.Err != nil {
			m.setError(c.Err)
		} else {
			m.Status = StatusBar{Text: fmt.Sprintf("Sprint complete: %s", c.Sprint.CurrentTask)}
		}
	case app.ChangeDocument:
		m.refresh()
		if c.Err != nil {
			m.setError(c.Err)
		}
	}
	return m, waitForChangeCmd(m.state.Changes())
}

func (m *Model) setError(err error) {
	m.LastError = err
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	}
}

func (m Model) View() string {
	data := views.AppData{
		Header:     "focusd",
		ActiveTab:  viewIndex(m.CurrentView),
		StatusLine: m.Status.Text,
		IsError:    m.Status.IsError,
		Footer:     m.footer(),
	}
	for i, v := range allViews {
		data.Tabs = append(data.Tabs, fmt.Sprintf("%d %s", i+1, v))
	}

	switch m.CurrentView {
	case ViewDashboard:
		data.LeftPane = m.renderTaskPanel() + "\n\n" + m.renderTimerPanel()
		data.RightPane = m.renderStatsPanel()
	case ViewReview:
		data.LeftPane = m.renderReviewPanel()
	case ViewHistory:
		data.LeftPane = m.renderHistoryPanel()
	}

	var overlay []string
	if m.mode == modePalette {
		overlay = append(overlay, views.RenderCommandPalette(true, m.commandInput.View()))
		overlay = append(overlay, "commands: "+strings.Join(paletteUsage(), " | "))
	}
	if m.mode == modeConfirmReset {
		overlay = append(overlay, views.RenderConfirm("Clear ALL tasks, sprints, sleep logs and reviews?"))
	}
	if m.HelpVisible {
		overlay = append(overlay, m.renderHelpView())
	}
	data.Overlay = strings.Join(overlay, "\n")
	return views.RenderApp(data)
}

func (m Model) footer() string {
	if m.CurrentView == ViewReview {
		return "keys: [tab]field [ctrl+s]save [esc]dashboard | ctrl+c quit"
	}
	return fmt.Sprintf("keys: %s dashboard | %s review | %s history | / cmd | %s help | %s quit",
		m.Keys.Dashboard, m.Keys.Review, m.Keys.History, m.Keys.Help, m.Keys.Quit)
}

func isKnownView(v View) bool {
	return viewIndex(v) >= 0
}

func viewIndex(v View) int {
	for i, known := range allViews {
		if known == v {
			return i
		}
	}
	return -1
}

func waitForChangeCmd(ch <-chan app.Change) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return StateChangeMsg{Change: c}
	}
}
