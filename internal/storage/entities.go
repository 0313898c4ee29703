package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
)

// SprintTimeLayout matches the naive local ISO-8601 timestamps written by
// earlier versions of the data file.
const SprintTimeLayout = "2006-01-02T15:04:05.000000"

var sprintReadLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

type documentFile struct {
	Tasks         []string     `json:"tasks"`
	SprintBlocks  []string     `json:"sprint_blocks"`
	SleepLog      []string     `json:"sleep_log"`
	WeeklyReviews []reviewFile `json:"weekly_reviews"`
}

type reviewFile struct {
	WeekStart    string `json:"week_start"`
	Wins         string `json:"wins"`
	Struggles    string `json:"struggles"`
	Improvements string `json:"improvements"`
	Priorities   string `json:"priorities"`
}

func toFile(doc model.Document) documentFile {
	out := documentFile{
		Tasks:         make([]string, 0, len(doc.Tasks)),
		SprintBlocks:  make([]string, 0, len(doc.SprintRecords)),
		SleepLog:      make([]string, 0, len(doc.SleepLog)),
		WeeklyReviews: make([]reviewFile, 0, len(doc.WeeklyReviews)),
	}
	out.Tasks = append(out.Tasks, doc.Tasks...)
	for _, rec := range doc.SprintRecords {
		out.SprintBlocks = append(out.SprintBlocks, formatSprintTime(rec))
	}
	for _, entry := range doc.SleepLog {
		out.SleepLog = append(out.SleepLog, entry.Label())
	}
	for _, r := range doc.WeeklyReviews {
		out.WeeklyReviews = append(out.WeeklyReviews, reviewFile{
			WeekStart:    r.Key(),
			Wins:         r.Wins,
			Struggles:    r.Struggles,
			Improvements: r.Improvements,
			Priorities:   r.Priorities,
		})
	}
	return out
}

func fromFile(in documentFile) (model.Document, error) {
	doc := model.EmptyDocument()
	for _, name := range in.Tasks {
		doc.Tasks = append(doc.Tasks, name)
	}
	for _, raw := range in.SprintBlocks {
		doc.SprintRecords = append(doc.SprintRecords, parseSprintTime(raw))
	}
	for _, raw := range in.SleepLog {
		doc.SleepLog = append(doc.SleepLog, model.ParseSleepEntry(raw))
	}
	for i, r := range in.WeeklyReviews {
		review, err := fromReviewFile(r)
		if err != nil {
			return model.Document{}, fmt.Errorf("%w: weekly_reviews[%d]: %v", ErrCorruptState, i, err)
		}
		doc.WeeklyReviews.Upsert(review)
	}
	return doc, nil
}

func fromReviewFile(r reviewFile) (model.WeeklyReview, error) {
	week, err := time.ParseInLocation(model.WeekKeyLayout, strings.TrimSpace(r.WeekStart), time.Local)
	if err != nil {
		return model.WeeklyReview{}, fmt.Errorf("week_start %q: %w", r.WeekStart, err)
	}
	return model.NewWeeklyReview(week, model.ReviewFields{
		Wins:         r.Wins,
		Struggles:    r.Struggles,
		Improvements: r.Improvements,
		Priorities:   r.Priorities,
	}), nil
}

func formatSprintTime(rec model.SprintRecord) string {
	if !rec.Valid() {
		return rec.Raw
	}
	return rec.CompletedAt.In(time.Local).Format(SprintTimeLayout)
}

func parseSprintTime(raw string) model.SprintRecord {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range sprintReadLayouts {
		var (
			tm  time.Time
			err error
		)
		if layout == time.RFC3339Nano {
			tm, err = time.Parse(layout, trimmed)
			if err == nil {
				tm = tm.In(time.Local)
			}
		} else {
			tm, err = time.ParseInLocation(layout, trimmed, time.Local)
		}
		if err == nil {
			return model.NewSprintRecord(tm)
		}
	}
	return model.SprintRecord{Raw: raw}
}
