package model

import (
	"sort"
	"time"
)

const WeekKeyLayout = "2006-01-02"

type WeeklyReview struct {
	WeekStart    time.Time
	Wins         string
	Struggles    string
	Improvements string
	Priorities   string
}

type ReviewFields struct {
	Wins         string
	Struggles    string
	Improvements string
	Priorities   string
}

func NewWeeklyReview(week time.Time, f ReviewFields) WeeklyReview {
	return WeeklyReview{
		WeekStart:    WeekStart(week),
		Wins:         f.Wins,
		Struggles:    f.Struggles,
		Improvements: f.Improvements,
		Priorities:   f.Priorities,
	}
}

func (r WeeklyReview) Fields() ReviewFields {
	return ReviewFields{
		Wins:         r.Wins,
		Struggles:    r.Struggles,
		Improvements: r.Improvements,
		Priorities:   r.Priorities,
	}
}

func (r WeeklyReview) Key() string {
	return r.WeekStart.Format(WeekKeyLayout)
}

// WeekStart returns local midnight of the Monday of the ISO week containing d.
func WeekStart(d time.Time) time.Time {
	day := Date(d)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// Date truncates d to local midnight of its calendar day.
func Date(d time.Time) time.Time {
	local := d.In(time.Local)
	y, m, dd := local.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.Local)
}

func SameDay(a, b time.Time) bool {
	return Date(a).Equal(Date(b))
}

// Reviews holds at most one WeeklyReview per week key.
type Reviews []WeeklyReview

// Upsert replaces any review stored for the same week and appends r.
func (rs *Reviews) Upsert(r WeeklyReview) {
	r.WeekStart = WeekStart(r.WeekStart)
	next := make(Reviews, 0, len(*rs)+1)
	for _, existing := range *rs {
		if existing.Key() == r.Key() {
			continue
		}
		next = append(next, existing)
	}
	*rs = append(next, r)
}

func (rs Reviews) Get(week time.Time) (WeeklyReview, bool) {
	key := WeekStart(week).Format(WeekKeyLayout)
	for _, r := range rs {
		if r.Key() == key {
			return r, true
		}
	}
	return WeeklyReview{}, false
}

func (rs Reviews) All() []WeeklyReview {
	out := make([]WeeklyReview, len(rs))
	copy(out, rs)
	return out
}

// History returns the reviews most recent week first.
func (rs Reviews) History() []WeeklyReview {
	out := rs.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WeekStart.After(out[j].WeekStart)
	})
	return out
}
