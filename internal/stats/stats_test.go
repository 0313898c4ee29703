package stats

import (
	"testing"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.Local)
}

func records(times ...time.Time) []model.SprintRecord {
	out := make([]model.SprintRecord, 0, len(times))
	for _, tm := range times {
		out = append(out, model.NewSprintRecord(tm))
	}
	return out
}

func TestComputeWeekStatsReferenceScenario(t *testing.T) {
	recs := records(at(2024, 3, 11, 9, 0), at(2024, 3, 14, 10, 0))

	got := ComputeWeekStats(recs, nil, at(2024, 3, 13, 12, 0))

	assert.True(t, got.WeekStart.Equal(at(2024, 3, 11, 0, 0)), "week start %s", got.WeekStart)
	assert.True(t, got.WeekEnd.Equal(at(2024, 3, 18, 0, 0)), "week end %s", got.WeekEnd)
	assert.Equal(t, 2, got.TotalSprints)
	assert.Equal(t, 10, got.TotalMinutes)
	assert.Equal(t, 2, got.DaysWithSprints)
}

func TestComputeWeekStatsBucketsByWeekday(t *testing.T) {
	recs := records(at(2024, 3, 11, 8, 30), at(2024, 3, 13, 17, 45))

	got := ComputeWeekStats(recs, nil, at(2024, 3, 15, 0, 0))

	assert.Equal(t, 2, got.DaysWithSprints)
	assert.Equal(t, 1, got.SprintsPerDay["Mon"])
	assert.Equal(t, 1, got.SprintsPerDay["Wed"])
	for _, d := range []string{"Tue", "Thu", "Fri", "Sat", "Sun"} {
		assert.Equal(t, 0, got.SprintsPerDay[d], d)
	}
	assert.Len(t, got.SprintsPerDay, 7)
	assert.Equal(t, "2/7", got.ActiveDaysLabel())
}

func TestComputeWeekStatsWindowBoundaries(t *testing.T) {
	recs := records(
		at(2024, 3, 10, 23, 59), // previous Sunday
		at(2024, 3, 11, 0, 0),
		at(2024, 3, 17, 23, 59),
		at(2024, 3, 18, 0, 0), // next Monday
	)
	got := ComputeWeekStats(recs, nil, at(2024, 3, 11, 0, 0))
	assert.Equal(t, 2, got.TotalSprints)
	assert.Equal(t, 1, got.SprintsPerDay["Mon"])
	assert.Equal(t, 1, got.SprintsPerDay["Sun"])
}

func TestComputeWeekStatsCountsSleepEntriesAndSkipsMalformed(t *testing.T) {
	sleep := []model.SleepEntry{
		model.ParseSleepEntry("Sleep at 2024-03-11 22:15"),
		model.ParseSleepEntry("Wake at 2024-03-12 06:30"),
		model.ParseSleepEntry("Wake at 2024-03-19 06:30"),
		model.ParseSleepEntry("Sleep around midnight"),
	}
	recs := append(records(at(2024, 3, 12, 9, 0)), model.SprintRecord{Raw: "not-a-date"})

	var got WeeklyStats
	require.NotPanics(t, func() {
		got = ComputeWeekStats(recs, sleep, at(2024, 3, 13, 0, 0))
	})
	assert.Equal(t, 2, got.SleepEntries)
	assert.Equal(t, 1, got.TotalSprints)
}

func TestComputeWeekStatsIsPure(t *testing.T) {
	recs := records(at(2024, 3, 11, 9, 0), at(2024, 3, 12, 9, 0), at(2024, 3, 12, 10, 0))
	sleep := []model.SleepEntry{model.ParseSleepEntry("Sleep at 2024-03-11 22:15")}
	before := append([]model.SprintRecord(nil), recs...)

	first := ComputeWeekStats(recs, sleep, at(2024, 3, 13, 0, 0))
	second := ComputeWeekStats(recs, sleep, at(2024, 3, 13, 0, 0))

	assert.Equal(t, first, second)
	assert.Equal(t, before, recs)
	assert.Equal(t, 2, first.SprintsPerDay["Tue"])
}

func TestComputeWeekStatsEmptyHistory(t *testing.T) {
	got := ComputeWeekStats(nil, nil, at(2024, 3, 13, 0, 0))
	assert.Zero(t, got.TotalSprints)
	assert.Zero(t, got.TotalMinutes)
	assert.Zero(t, got.DaysWithSprints)
	assert.Zero(t, got.SleepEntries)
	assert.Len(t, got.SprintsPerDay, 7)
}
