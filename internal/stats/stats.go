// Package stats derives read-only weekly summaries from the event history.
package stats

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
)

// Weekdays lists the bucket names in ISO order.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type WeeklyStats struct {
	WeekStart       time.Time
	WeekEnd         time.Time
	TotalSprints    int
	TotalMinutes    int
	SprintsPerDay   map[string]int
	DaysWithSprints int
	SleepEntries    int
}

func (s WeeklyStats) ActiveDaysLabel() string {
	return fmt.Sprintf("%d/%d", s.DaysWithSprints, len(Weekdays))
}

// ComputeWeekStats summarises the week containing ref. Records and entries
// that failed to parse when loaded are skipped.
func ComputeWeekStats(records []model.SprintRecord, sleepLog []model.SleepEntry, ref time.Time) WeeklyStats {
	start := model.WeekStart(ref)
	end := start.AddDate(0, 0, 7)

	perDay := make(map[string]int, len(Weekdays))
	for _, d := range Weekdays {
		perDay[d] = 0
	}

	total := 0
	for _, rec := range records {
		if !rec.Valid() {
			continue
		}
		day := model.Date(rec.CompletedAt)
		if !inWindow(day, start, end) {
			continue
		}
		total++
		perDay[weekdayName(day)]++
	}

	active := 0
	for _, d := range Weekdays {
		if perDay[d] > 0 {
			active++
		}
	}

	sleeps := 0
	for _, entry := range sleepLog {
		if !entry.Valid() {
			continue
		}
		if inWindow(model.Date(entry.At), start, end) {
			sleeps++
		}
	}

	return WeeklyStats{
		WeekStart:       start,
		WeekEnd:         end,
		TotalSprints:    total,
		TotalMinutes:    total * (model.SprintDurationSeconds / 60),
		SprintsPerDay:   perDay,
		DaysWithSprints: active,
		SleepEntries:    sleeps,
	}
}

func inWindow(day, start, end time.Time) bool {
	return !day.Before(start) && day.Before(end)
}

func weekdayName(d time.Time) string {
	return Weekdays[(int(d.Weekday())+6)%7]
}
