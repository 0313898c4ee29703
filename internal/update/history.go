package update

import (
	"github.com/sandeepkv93/focusd/internal/report"
	"github.com/sandeepkv93/focusd/internal/views"
)

func (m Model) renderHistoryMarkdown() string {
	return views.RenderMarkdown(report.ReviewHistoryMarkdown(m.state.ReviewHistory()), m.markdownStyle)
}

func (m Model) renderHistoryPanel() string {
	return views.RenderHistoryPanel(views.HistoryPanelData{
		ViewportView: m.historyViewport.View(),
		Count:        len(m.doc.WeeklyReviews),
		ScrollPct:    int(m.historyViewport.ScrollPercent() * 100),
	})
}
