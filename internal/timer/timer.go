package timer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/aloud/internal/catalog"
)

// Timer owns the session State. It is not safe for concurrent use: every
// method, and the scheduled tick, must run on one goroutine.
type Timer struct {
	catalog   *catalog.Catalog
	sched     Scheduler
	log       *zap.Logger
	state     State
	listing   []catalog.Entry
	cancel    func()
	observers []func(State)
}

// New creates a stopped timer at the start of the given difficulty.
func New(cat *catalog.Catalog, sched Scheduler, d catalog.Difficulty, log *zap.Logger) (*Timer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	t := &Timer{catalog: cat, sched: sched, log: log}
	if err := t.Reset(d); err != nil {
		return nil, err
	}
	return t, nil
}

// OnChange registers fn to be called after every state change.
func (t *Timer) OnChange(fn func(State)) {
	t.observers = append(t.observers, fn)
}

// Start begins ticking. It returns false when already running or when the
// session is complete.
func (t *Timer) Start() bool {
	if t.state.Running || t.state.Done() {
		return false
	}
	t.state.Running = true
	t.cancel = t.sched.Every(Period*time.Second, t.Tick)
	t.log.Debug("timer started",
		zap.String("difficulty", string(t.state.Profile.Difficulty)),
		zap.Int("total_remaining", t.state.TotalRemaining),
		zap.Int("task_index", t.state.TaskIndex))
	t.notify()
	return true
}

// Pause stops ticking and freezes the state. Pausing a stopped timer is a
// no-op.
func (t *Timer) Pause() {
	if !t.state.Running {
		return
	}
	t.stop()
	t.log.Debug("timer paused", zap.Int("total_remaining", t.state.TotalRemaining))
	t.notify()
}

// Reset stops ticking and replaces the state with a fresh one for d.
func (t *Timer) Reset(d catalog.Difficulty) error {
	p, err := t.catalog.Profile(d)
	if err != nil {
		return fmt.Errorf("reset timer: %w", err)
	}
	listing, err := t.catalog.Listing(d)
	if err != nil {
		return fmt.Errorf("reset timer: %w", err)
	}

	t.stop()
	t.state = NewState(p)
	t.listing = listing
	t.log.Debug("timer reset", zap.String("difficulty", string(d)))
	t.notify()
	return nil
}

// ChangeDifficulty handles a difficulty selection. Unlike a user reset it
// may arrive while the timer is running; the result is the same.
func (t *Timer) ChangeDifficulty(d catalog.Difficulty) error {
	return t.Reset(d)
}

// Tick advances the clock by one period. It is invoked by the scheduler
// and is exported for hosts that drive the clock themselves.
func (t *Timer) Tick() {
	if !t.state.Running {
		return
	}
	prevTask := t.state.TaskIndex
	t.state = Tick(t.state)

	if t.state.TaskIndex != prevTask && !t.state.Done() {
		t.log.Debug("task advanced", zap.Int("task_index", t.state.TaskIndex))
	}
	if !t.state.Running {
		t.stop()
		t.log.Info("session complete",
			zap.String("difficulty", string(t.state.Profile.Difficulty)),
			zap.Int("total_remaining", t.state.TotalRemaining),
			zap.Int("task_index", t.state.TaskIndex))
	}
	t.notify()
}

// State returns a copy of the current state.
func (t *Timer) State() State {
	s := t.state
	s.Profile.TaskSeconds = append([]int(nil), s.Profile.TaskSeconds...)
	return s
}

// Running reports whether ticks are scheduled.
func (t *Timer) Running() bool {
	return t.state.Running
}

// Difficulty is the active profile's difficulty.
func (t *Timer) Difficulty() catalog.Difficulty {
	return t.state.Profile.Difficulty
}

// Clock is the formatted total remaining time.
func (t *Timer) Clock() string {
	return FormatClock(t.state.TotalRemaining)
}

// TaskClock is the formatted time remaining in the current task.
func (t *Timer) TaskClock() string {
	return FormatClock(t.state.TaskRemaining)
}

// CurrentTaskLabel describes the active task, e.g. "Task 2: Pseudo-test-code Aloud".
func (t *Timer) CurrentTaskLabel() string {
	if t.state.Done() {
		return "Session complete"
	}
	task, ok := t.catalog.Task(t.state.TaskIndex)
	if !ok {
		return "Session complete"
	}
	return fmt.Sprintf("Task %d: %s", t.state.TaskIndex+1, task.Name)
}

// Tasks is the visible task list for the active difficulty.
func (t *Timer) Tasks() []catalog.Entry {
	return append([]catalog.Entry(nil), t.listing...)
}

func (t *Timer) stop() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.state.Running = false
}

func (t *Timer) notify() {
	s := t.State()
	for _, fn := range t.observers {
		fn(s)
	}
}
