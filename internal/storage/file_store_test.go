package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
)

func sampleDocument(t *testing.T) model.Document {
	t.Helper()
	doc := model.EmptyDocument()
	for _, name := range []string{"write report", "inbox zero", "write report"} {
		if err := doc.Tasks.Add(name); err != nil {
			t.Fatalf("add task: %v", err)
		}
	}
	doc.SprintRecords = append(doc.SprintRecords,
		model.NewSprintRecord(time.Date(2024, 3, 11, 9, 0, 12, 345678000, time.Local)),
		model.NewSprintRecord(time.Date(2024, 3, 14, 10, 0, 0, 0, time.Local)),
	)
	sleep, err := model.NewSleepEntry(model.SleepKindSleep, time.Date(2024, 3, 11, 22, 15, 30, 0, time.Local))
	if err != nil {
		t.Fatalf("sleep entry: %v", err)
	}
	wake, err := model.NewSleepEntry(model.SleepKindWake, time.Date(2024, 3, 12, 6, 45, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("wake entry: %v", err)
	}
	doc.SleepLog.Append(sleep)
	doc.SleepLog.Append(wake)
	doc.WeeklyReviews.Upsert(model.NewWeeklyReview(time.Date(2024, 3, 13, 0, 0, 0, 0, time.Local), model.ReviewFields{
		Wins:       "shipped",
		Struggles:  "meetings",
		Priorities: "sleep earlier",
	}))
	doc.WeeklyReviews.Upsert(model.NewWeeklyReview(time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local), model.ReviewFields{
		Improvements: "fewer tabs",
	}))
	return doc
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	store := NewFileStore(path)
	doc := sampleDocument(t)

	if err := store.Save(t.Context(), doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, doc)
	}
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("temporary file left behind: %v", err)
	}
}

func TestFileStoreWritesDocumentFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := NewFileStore(path).Save(t.Context(), sampleDocument(t)); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"tasks", "sprint_blocks", "sleep_log", "weekly_reviews"} {
		if _, ok := generic[key]; !ok {
			t.Fatalf("missing top-level key %q in %s", key, raw)
		}
	}
	if len(generic) != 4 {
		t.Fatalf("unexpected top-level keys: %v", generic)
	}
	sleep := generic["sleep_log"].([]any)
	if sleep[0] != "Sleep at 2024-03-11 22:15" {
		t.Fatalf("unexpected sleep label: %v", sleep[0])
	}
	blocks := generic["sprint_blocks"].([]any)
	if blocks[0] != "2024-03-11T09:00:12.345678" {
		t.Fatalf("unexpected sprint timestamp: %v", blocks[0])
	}
	reviews := generic["weekly_reviews"].([]any)
	first := reviews[0].(map[string]any)
	if first["week_start"] != "2024-03-11" || first["wins"] != "shipped" || first["improvements"] != "" {
		t.Fatalf("unexpected review: %v", first)
	}
}

func TestFileStoreMissingOrBlankFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	got, err := NewFileStore(filepath.Join(dir, "absent.json")).Load(t.Context())
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if !reflect.DeepEqual(got, model.EmptyDocument()) {
		t.Fatalf("expected empty document, got %#v", got)
	}

	blank := filepath.Join(dir, "blank.json")
	if err := os.WriteFile(blank, []byte("  \n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err = NewFileStore(blank).Load(t.Context())
	if err != nil {
		t.Fatalf("load blank: %v", err)
	}
	if len(got.Tasks) != 0 || len(got.SprintRecords) != 0 {
		t.Fatalf("expected empty document, got %#v", got)
	}
}

func TestFileStoreLoadsPartialDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"tasks": ["a", "b"]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := NewFileStore(path).Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got.Tasks, model.TaskList{"a", "b"}) {
		t.Fatalf("unexpected tasks: %#v", got.Tasks)
	}
	if got.SprintRecords == nil || got.SleepLog == nil || got.WeeklyReviews == nil {
		t.Fatalf("absent fields must default to empty sequences: %#v", got)
	}
}

func TestFileStoreCorruptState(t *testing.T) {
	cases := map[string]string{
		"syntax":      `{"tasks": [`,
		"wrong type":  `{"tasks": "not a list"}`,
		"not object":  `[1, 2, 3]`,
		"review date": `{"weekly_reviews": [{"week_start": "last monday"}]}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data.json")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			_, err := NewFileStore(path).Load(t.Context())
			if !errors.Is(err, ErrCorruptState) {
				t.Fatalf("expected ErrCorruptState, got %v", err)
			}
		})
	}
}

func TestFileStoreKeepsUnparseableTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	content := `{
		"sprint_blocks": ["2024-03-11T09:00:00", "2024-03-12T10:00:00+00:00", "yesterday"],
		"sleep_log": ["Sleep at 2024-03-11 22:15", "Slept badly"]
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store := NewFileStore(path)
	doc, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.SprintRecords) != 3 || !doc.SprintRecords[0].Valid() || !doc.SprintRecords[1].Valid() || doc.SprintRecords[2].Valid() {
		t.Fatalf("unexpected sprint records: %#v", doc.SprintRecords)
	}
	if doc.SleepLog[1].Valid() || doc.SleepLog[1].Label() != "Slept badly" {
		t.Fatalf("unexpected sleep entry: %#v", doc.SleepLog[1])
	}

	if err := store.Save(t.Context(), doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	again, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.SprintRecords[2].Raw != "yesterday" || again.SleepLog[1].Raw != "Slept badly" {
		t.Fatalf("raw values not preserved: %#v", again)
	}
}

func TestFileStoreSaveFailureIsTyped(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := NewFileStore(filepath.Join(blocker, "data.json")).Save(t.Context(), model.EmptyDocument())
	var storeErr *Error
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
}

func TestFileStoreSaveReplacesStaleTempFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := NewFileStore(path)
	doc := sampleDocument(t)
	if err := store.Save(t.Context(), doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	// leftover from an interrupted save, longer than the next payload
	if err := os.WriteFile(path+".tmp", bytes.Repeat([]byte("x"), 64*1024), 0o644); err != nil {
		t.Fatalf("write tmp: %v", err)
	}

	doc.Tasks = model.TaskList{"only"}
	if err := store.Save(t.Context(), doc); err != nil {
		t.Fatalf("save over stale tmp: %v", err)
	}
	got, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got.Tasks, doc.Tasks) {
		t.Fatalf("unexpected tasks: %v", got.Tasks)
	}
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("temporary file left behind: %v", err)
	}
}

func TestFileStoreFailedWriteKeepsPreviousFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := NewFileStore(path)
	doc := sampleDocument(t)
	if err := store.Save(t.Context(), doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := os.Mkdir(path+".tmp", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	err = store.Save(t.Context(), model.EmptyDocument())
	var storeErr *Error
	if !errors.As(err, &storeErr) || storeErr.Op != "write" {
		t.Fatalf("expected write *Error, got %v", err)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatal("failed save must leave the previous file intact")
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	dir := t.TempDir()
	s, err := Open("", filepath.Join(dir, "data.json"))
	if err != nil {
		t.Fatalf("open json: %v", err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Fatalf("expected *FileStore, got %T", s)
	}

	s, err = Open("SQLite", filepath.Join(dir, "data.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if _, ok := s.(*SQLiteStore); !ok {
		t.Fatalf("expected *SQLiteStore, got %T", s)
	}
	if err := Close(s); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := Open("mongo", "x"); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}
