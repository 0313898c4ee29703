package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/stats"
)

// WritePDF writes a one-page weekly report. review may be nil.
func WritePDF(w io.Writer, ws stats.WeeklyStats, review *model.WeeklyReview) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(WeekHeading(ws.WeekStart), true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr("Focus Report: "+WeekHeading(ws.WeekStart)))
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total Sprints: %d (%d mins)", ws.TotalSprints, ws.TotalMinutes))
	pdf.Ln(7)
	pdf.Cell(0, 8, "Active Days: "+ws.ActiveDaysLabel())
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Sleep Logs: %d", ws.SleepEntries))
	pdf.Ln(12)

	// Sprints per day
	colWidth := 180.0 / float64(len(stats.Weekdays))
	pdf.SetFont("Arial", "B", 11)
	for _, d := range stats.Weekdays {
		pdf.CellFormat(colWidth, 8, d, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	for _, d := range stats.Weekdays {
		pdf.CellFormat(colWidth, 8, fmt.Sprintf("%d", ws.SprintsPerDay[d]), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(14)

	if review != nil {
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, "Weekly Review")
		pdf.Ln(10)
		for _, s := range reviewSections(*review) {
			pdf.SetFont("Arial", "B", 12)
			pdf.Cell(0, 8, s.title)
			pdf.Ln(8)
			pdf.SetFont("Arial", "", 11)
			body := strings.TrimSpace(s.body)
			if body == "" {
				body = "-"
			}
			pdf.MultiCell(0, 6, tr(body), "", "", false)
			pdf.Ln(3)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("report: write pdf: %w", err)
	}
	return nil
}
