// Package app owns the in-memory document and mediates every mutation
// through the configured store.
package app

//go:generate mockgen -destination=mock_store_test.go -package=app github.com/sandeepkv93/focusd/internal/storage Store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/sprint"
	"github.com/sandeepkv93/focusd/internal/stats"
	"github.com/sandeepkv93/focusd/internal/storage"
)

// ErrPersistenceFailure reports that a mutation was applied in memory but
// could not be saved.
var ErrPersistenceFailure = errors.New("app: persistence failure")

// errStaleCompletion marks a completion from a run that Reset discarded.
var errStaleCompletion = errors.New("app: completion predates reset")

type ChangeKind string

const (
	ChangeTick            ChangeKind = "tick"
	ChangeSprintCompleted ChangeKind = "sprint_completed"
	ChangeDocument        ChangeKind = "document"
)

type Change struct {
	Kind   ChangeKind
	Sprint sprint.State
	Err    error
}

type Option func(*State)

func WithLogger(l *slog.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *State) {
		if now != nil {
			s.now = now
		}
	}
}

func WithRand(r *rand.Rand) Option {
	return func(s *State) { s.rng = r }
}

func WithTimerOptions(opts sprint.Options) Option {
	return func(s *State) { s.timerOpts = opts }
}

// State is the application aggregate. The document has a single writer at a
// time; readers get copies.
type State struct {
	mu        sync.RWMutex
	doc       model.Document
	store     storage.Store
	timer     *sprint.Timer
	timerOpts sprint.Options
	logger    *slog.Logger
	now       func() time.Time
	rng       *rand.Rand
	// resetEpoch is the timer epoch of the last Reset; older completions
	// are dropped.
	resetEpoch uint64

	emitMu  sync.Mutex
	closed  bool
	changes chan Change
	dropped uint64
	doneCh  chan struct{}
}

// New loads the document from store. A corrupt document is returned as an
// error and no State is created.
func New(ctx context.Context, store storage.Store, opts ...Option) (*State, error) {
	if store == nil {
		return nil, errors.New("app: nil store")
	}
	s := &State{
		store:   store,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
		changes: make(chan Change, 64),
		doneCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	doc, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	s.doc = doc

	if s.timerOpts.Now == nil {
		s.timerOpts.Now = s.now
	}
	s.timer = sprint.NewTimer(s.timerOpts)
	s.logger.Debug("document loaded",
		"tasks", len(doc.Tasks),
		"sprints", len(doc.SprintRecords),
		"sleep_entries", len(doc.SleepLog),
		"reviews", len(doc.WeeklyReviews),
	)

	go s.loop()
	return s, nil
}

// Changes reports sprint state transitions and document mutations. Sends do
// not block; consumers that fall behind miss intermediate ticks.
func (s *State) Changes() <-chan Change {
	return s.changes
}

func (s *State) Dropped() uint64 {
	return atomic.LoadUint64(&s.dropped)
}

// Close stops the sprint timer and waits for pending completions to be
// applied. The store is left open.
func (s *State) Close() {
	s.timer.Close()
	<-s.doneCh
}

func (s *State) loop() {
	defer close(s.doneCh)
	defer s.closeChanges()

	updates := s.timer.Updates()
	completions := s.timer.Completions()
	for updates != nil || completions != nil {
		select {
		case st, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			s.emit(Change{Kind: ChangeTick, Sprint: st})
		case c, ok := <-completions:
			if !ok {
				completions = nil
				continue
			}
			recorded, err := s.recordSprint(c)
			if !recorded && err == nil {
				continue
			}
			s.emit(Change{Kind: ChangeSprintCompleted, Sprint: s.timer.State(), Err: err})
		}
	}
}

func (s *State) recordSprint(c sprint.Completion) (bool, error) {
	err := s.mutate(context.Background(), "record sprint", func(doc *model.Document) error {
		if c.Epoch < s.resetEpoch {
			return errStaleCompletion
		}
		doc.SprintRecords = append(doc.SprintRecords, model.NewSprintRecord(c.At))
		return nil
	})
	if errors.Is(err, errStaleCompletion) {
		s.logger.Debug("sprint completion discarded by reset", "run_id", c.RunID, "task", c.Task)
		return false, nil
	}
	s.logger.Info("sprint completed", "run_id", c.RunID, "task", c.Task, "at", c.At.Format(time.RFC3339))
	return true, err
}

// mutate applies fn under the write lock and saves the result before
// returning. fn must leave the document untouched when it fails.
func (s *State) mutate(ctx context.Context, op string, fn func(doc *model.Document) error) error {
	s.mu.Lock()
	if err := fn(&s.doc); err != nil {
		s.mu.Unlock()
		return err
	}
	saveErr := s.store.Save(ctx, s.doc.Clone())
	s.mu.Unlock()

	if saveErr != nil {
		s.logger.Error("save failed", "op", op, "err", saveErr)
		saveErr = fmt.Errorf("%s: %w: %w", op, ErrPersistenceFailure, saveErr)
	}
	s.emit(Change{Kind: ChangeDocument, Sprint: s.timer.State(), Err: saveErr})
	return saveErr
}

func (s *State) emit(c Change) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.changes <- c:
	default:
		atomic.AddUint64(&s.dropped, 1)
	}
}

func (s *State) closeChanges() {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	s.closed = true
	close(s.changes)
}

func (s *State) Snapshot() model.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

func (s *State) Sprint() sprint.State {
	return s.timer.State()
}

func (s *State) AddTask(ctx context.Context, name string) error {
	return s.mutate(ctx, "add task", func(doc *model.Document) error {
		return doc.Tasks.Add(name)
	})
}

func (s *State) RemoveTask(ctx context.Context, index int) (string, error) {
	var removed string
	err := s.mutate(ctx, "remove task", func(doc *model.Document) error {
		var err error
		removed, err = doc.Tasks.RemoveAt(index)
		if err != nil {
			return err
		}
		if !slices.Contains(doc.Tasks, removed) {
			s.timer.ForgetTask(removed)
		}
		return nil
	})
	return removed, err
}

// PickRandomTask makes a random task the focus of the next sprint.
func (s *State) PickRandomTask() (string, error) {
	s.mu.RLock()
	task, ok := s.doc.Tasks.PickRandom(s.rng)
	s.mu.RUnlock()
	if !ok {
		return "", model.ErrNoTaskAvailable
	}
	if err := s.timer.SetTask(task); err != nil {
		return "", err
	}
	return task, nil
}

func (s *State) SelectTask(index int) (string, error) {
	s.mu.RLock()
	task, err := s.doc.Tasks.At(index)
	s.mu.RUnlock()
	if err != nil {
		return "", err
	}
	if err := s.timer.SetTask(task); err != nil {
		return "", err
	}
	return task, nil
}

// StartSprint starts a sprint on task. A blank task falls back to the
// selected focus task, then to the first task in the list.
func (s *State) StartSprint(task string) (sprint.State, error) {
	chosen := strings.TrimSpace(task)
	if chosen == "" {
		chosen = s.timer.State().CurrentTask
	}
	if chosen == "" {
		s.mu.RLock()
		if len(s.doc.Tasks) > 0 {
			chosen = s.doc.Tasks[0]
		}
		s.mu.RUnlock()
	}
	if chosen == "" {
		return s.timer.State(), model.ErrNoTaskAvailable
	}
	st, err := s.timer.Start(chosen)
	if err != nil {
		return st, err
	}
	s.logger.Info("sprint started", "run_id", st.RunID, "task", st.CurrentTask, "seconds", st.RemainingSeconds)
	return st, nil
}

func (s *State) StopSprint() sprint.State {
	before := s.timer.State()
	st := s.timer.Stop()
	if before.Running {
		s.logger.Info("sprint stopped", "run_id", before.RunID, "task", before.CurrentTask, "remaining", before.RemainingSeconds)
	}
	return st
}

func (s *State) ClearSprint() sprint.State {
	return s.timer.Clear()
}

func (s *State) LogSleep(ctx context.Context) (model.SleepEntry, error) {
	return s.logSleepKind(ctx, model.SleepKindSleep)
}

func (s *State) LogWake(ctx context.Context) (model.SleepEntry, error) {
	return s.logSleepKind(ctx, model.SleepKindWake)
}

func (s *State) logSleepKind(ctx context.Context, kind model.SleepKind) (model.SleepEntry, error) {
	entry, err := model.NewSleepEntry(kind, s.now())
	if err != nil {
		return model.SleepEntry{}, err
	}
	err = s.mutate(ctx, "log "+strings.ToLower(string(kind)), func(doc *model.Document) error {
		doc.SleepLog.Append(entry)
		return nil
	})
	return entry, err
}

// SaveReview stores the review for the week containing week, replacing any
// earlier review for that week.
func (s *State) SaveReview(ctx context.Context, week time.Time, fields model.ReviewFields) (model.WeeklyReview, error) {
	review := model.NewWeeklyReview(week, fields)
	err := s.mutate(ctx, "save review", func(doc *model.Document) error {
		doc.WeeklyReviews.Upsert(review)
		return nil
	})
	return review, err
}

func (s *State) Review(week time.Time) (model.WeeklyReview, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.WeeklyReviews.Get(week)
}

func (s *State) CurrentReview() (model.WeeklyReview, bool) {
	return s.Review(s.now())
}

func (s *State) ReviewHistory() []model.WeeklyReview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.WeeklyReviews.History()
}

func (s *State) WeekStats(ref time.Time) stats.WeeklyStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stats.ComputeWeekStats(s.doc.SprintRecords, s.doc.SleepLog, ref)
}

func (s *State) CurrentWeekStats() stats.WeeklyStats {
	return s.WeekStats(s.now())
}

func (s *State) Now() time.Time {
	return s.now()
}

// Reset clears every sequence and the sprint.
func (s *State) Reset(ctx context.Context) error {
	err := s.mutate(ctx, "reset", func(doc *model.Document) error {
		s.resetEpoch = s.timer.Clear().Epoch
		*doc = model.EmptyDocument()
		return nil
	})
	if err == nil {
		s.logger.Info("document reset")
	}
	return err
}
