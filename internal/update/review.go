package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/report"
	"github.com/sandeepkv93/focusd/internal/views"
)

// loadReview fills the editor with the saved review for the current week.
func (m *Model) loadReview() {
	m.review.week = model.WeekStart(m.state.Now())
	saved, _ := m.state.Review(m.review.week)
	values := []string{saved.Wins, saved.Struggles, saved.Improvements, saved.Priorities}
	for i := range m.review.fields {
		m.review.fields[i].SetValue(values[i])
	}
	m.review.dirty = false
}

func (m Model) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.review.fields[m.review.focus].Blur()
		m.CurrentView = ViewDashboard
		return m, nil
	case "tab":
		return m, m.focusReviewField((m.review.focus + 1) % len(m.review.fields))
	case "shift+tab":
		return m, m.focusReviewField((m.review.focus + len(m.review.fields) - 1) % len(m.review.fields))
	case "ctrl+s":
		return m.saveReview(), nil
	}

	field := m.review.fields[m.review.focus]
	var cmd tea.Cmd
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		field.InsertString(string(msg.Runes))
	} else {
		field, cmd = field.Update(msg)
	}
	m.review.fields[m.review.focus] = field
	m.review.dirty = true
	return m, cmd
}

func (m *Model) focusReviewField(i int) tea.Cmd {
	for j := range m.review.fields {
		m.review.fields[j].Blur()
	}
	m.review.focus = i
	return m.review.fields[i].Focus()
}

func (m Model) saveReview() Model {
	fields := model.ReviewFields{
		Wins:         m.review.fields[0].Value(),
		Struggles:    m.review.fields[1].Value(),
		Improvements: m.review.fields[2].Value(),
		Priorities:   m.review.fields[3].Value(),
	}
	saved, err := m.state.SaveReview(m.ctx, m.review.week, fields)
	m.afterMutation("Review saved: "+report.WeekHeading(saved.WeekStart), err)
	m.review.dirty = false
	return m
}

func (m Model) renderReviewPanel() string {
	fields := make([]views.ReviewFieldData, 0, len(m.review.fields))
	for i, ta := range m.review.fields {
		fields = append(fields, views.ReviewFieldData{
			Title:   reviewTitles[i],
			View:    ta.View(),
			Focused: i == m.review.focus,
		})
	}
	return views.RenderReviewPanel(views.ReviewPanelData{
		Heading: report.WeekHeading(m.review.week),
		Fields:  fields,
		Dirty:   m.review.dirty,
	})
}
