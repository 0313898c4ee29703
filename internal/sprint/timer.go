// Package sprint implements the fixed-length focus timer.
package sprint

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/focusd/internal/model"
)

var (
	ErrAlreadyRunning = errors.New("sprint: already running")
	ErrClosed         = errors.New("sprint: timer closed")
)

// Duration is the sprint length in seconds.
const Duration = model.SprintDurationSeconds

type State struct {
	Running          bool
	RemainingSeconds int
	CurrentTask      string
	RunID            string
	// Epoch counts Clear calls.
	Epoch uint64
}

func (s State) Elapsed() int {
	if !s.Running {
		return 0
	}
	return Duration - s.RemainingSeconds
}

// Completion is emitted once for every run that counts down to zero.
type Completion struct {
	RunID string
	Task  string
	At    time.Time
	// Epoch is the timer epoch the run completed in.
	Epoch uint64
}

type Options struct {
	Tick         time.Duration
	Now          func() time.Time
	NewRunID     func() string
	UpdateBuffer int
}

func (o Options) withDefaults() Options {
	if o.Tick <= 0 {
		o.Tick = time.Second
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewRunID == nil {
		o.NewRunID = uuid.NewString
	}
	if o.UpdateBuffer <= 0 {
		o.UpdateBuffer = 16
	}
	return o
}

// Timer is a two-state machine (idle, running). Each Start spawns a countdown
// goroutine that exits as soon as it observes its run is no longer current.
type Timer struct {
	mu          sync.Mutex
	opts        Options
	state       State
	gen         uint64
	updates     chan State
	completions chan Completion
	stopCh      chan struct{}
	wg          sync.WaitGroup
	closed      bool
	dropped     uint64
}

func NewTimer(opts Options) *Timer {
	opts = opts.withDefaults()
	return &Timer{
		opts:        opts,
		updates:     make(chan State, opts.UpdateBuffer),
		completions: make(chan Completion, 1),
		stopCh:      make(chan struct{}),
	}
}

// Updates publishes the state after every tick and transition. Sends never
// block; a slow consumer misses intermediate states (see Dropped).
func (t *Timer) Updates() <-chan State {
	return t.updates
}

func (t *Timer) Completions() <-chan Completion {
	return t.completions
}

func (t *Timer) Dropped() uint64 {
	return atomic.LoadUint64(&t.dropped)
}

func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// SetTask chooses the focus task for the next sprint.
func (t *Timer) SetTask(task string) error {
	trimmed, err := model.ValidateTaskName(task)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Running {
		return ErrAlreadyRunning
	}
	t.state.CurrentTask = trimmed
	t.publishLocked()
	return nil
}

// ForgetTask clears the focus task if it is task and no sprint is running.
func (t *Timer) ForgetTask(task string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Running || t.state.CurrentTask != task {
		return
	}
	t.state.CurrentTask = ""
	t.publishLocked()
}

func (t *Timer) Start(task string) (State, error) {
	trimmed := strings.TrimSpace(task)
	if trimmed == "" {
		return t.State(), model.ErrNoTaskAvailable
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return State{}, ErrClosed
	}
	if t.state.Running {
		snap := t.state
		t.mu.Unlock()
		return snap, ErrAlreadyRunning
	}
	t.gen++
	gen := t.gen
	t.state = State{
		Running:          true,
		RemainingSeconds: Duration,
		CurrentTask:      trimmed,
		RunID:            t.opts.NewRunID(),
		Epoch:            t.state.Epoch,
	}
	snap := t.state
	t.publishLocked()
	t.wg.Add(1)
	t.mu.Unlock()

	go t.countdown(gen)
	return snap, nil
}

// Stop ends a running sprint without recording it. Stopping an idle timer is
// a no-op.
func (t *Timer) Stop() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.state.Running {
		return t.state
	}
	t.gen++
	t.state.Running = false
	t.state.RemainingSeconds = 0
	t.publishLocked()
	return t.state
}

// Clear stops the timer, forgets the focus task and starts a new epoch.
func (t *Timer) Clear() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	t.state = State{Epoch: t.state.Epoch + 1}
	t.publishLocked()
	return t.state
}

// Close stops every countdown and closes both channels.
func (t *Timer) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.gen++
	t.state.Running = false
	t.state.RemainingSeconds = 0
	close(t.stopCh)
	t.mu.Unlock()

	t.wg.Wait()
	close(t.updates)
	close(t.completions)
}

func (t *Timer) countdown(gen uint64) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.opts.Tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
		case <-t.stopCh:
			return
		}

		completion, alive := t.advance(gen)
		if completion != nil {
			t.deliver(*completion)
			return
		}
		if !alive {
			return
		}
	}
}

// advance applies one tick for run gen. The decrement, the transition to idle
// and the decision to complete happen under one lock, so a concurrent Stop
// either lands first (no completion) or finds the timer already idle.
func (t *Timer) advance(gen uint64) (*Completion, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen || !t.state.Running {
		return nil, false
	}
	if t.state.RemainingSeconds > 0 {
		t.state.RemainingSeconds--
	}
	if t.state.RemainingSeconds > 0 {
		t.publishLocked()
		return nil, true
	}
	t.state.Running = false
	t.gen++
	t.publishLocked()
	return &Completion{
		RunID: t.state.RunID,
		Task:  t.state.CurrentTask,
		At:    t.opts.Now(),
		Epoch: t.state.Epoch,
	}, false
}

// deliver hands c to the consumer. A completion already decided survives a
// concurrent Close; it is only given up when the buffer is still full at
// shutdown.
func (t *Timer) deliver(c Completion) {
	select {
	case t.completions <- c:
		return
	default:
	}
	select {
	case t.completions <- c:
	case <-t.stopCh:
		select {
		case t.completions <- c:
		default:
		}
	}
}

func (t *Timer) publishLocked() {
	if t.closed {
		return
	}
	select {
	case t.updates <- t.state:
	default:
		atomic.AddUint64(&t.dropped, 1)
	}
}
