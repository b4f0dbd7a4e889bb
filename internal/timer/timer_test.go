package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aloud/internal/catalog"
)

// manualScheduler records schedules and fires them on demand.
type manualScheduler struct {
	scheduled int
	cancelled int
	period    time.Duration
	fn        func()
}

func (m *manualScheduler) Every(period time.Duration, fn func()) func() {
	m.scheduled++
	m.period = period
	m.fn = fn
	active := true
	return func() {
		if active {
			active = false
			m.cancelled++
			m.fn = nil
		}
	}
}

func (m *manualScheduler) advance(n int) {
	for range n {
		if m.fn == nil {
			return
		}
		m.fn()
	}
}

func newTestTimer(t *testing.T, d catalog.Difficulty) (*Timer, *manualScheduler) {
	t.Helper()
	sched := &manualScheduler{}
	tm, err := New(catalog.Default(), sched, d, nil)
	require.NoError(t, err)
	return tm, sched
}

func TestTimer_StartSchedulesOnce(t *testing.T) {
	tm, sched := newTestTimer(t, catalog.Easy)

	assert.True(t, tm.Start())
	assert.False(t, tm.Start())
	assert.Equal(t, 1, sched.scheduled)
	assert.Equal(t, time.Second, sched.period)
	assert.True(t, tm.Running())
}

func TestTimer_PauseIdempotent(t *testing.T) {
	tm, sched := newTestTimer(t, catalog.Easy)
	tm.Start()
	sched.advance(10)

	tm.Pause()
	once := tm.State()
	tm.Pause()
	assert.Equal(t, once, tm.State())
	assert.Equal(t, 1, sched.cancelled)
	assert.Equal(t, 890, once.TotalRemaining)
	assert.False(t, once.Running)
}

func TestTimer_PauseResume(t *testing.T) {
	tm, sched := newTestTimer(t, catalog.Easy)
	tm.Start()
	sched.advance(30)
	tm.Pause()
	sched.advance(30) // cancelled: no effect

	require.Equal(t, 870, tm.State().TotalRemaining)

	tm.Start()
	sched.advance(30)
	s := tm.State()
	assert.Equal(t, 840, s.TotalRemaining)
	assert.Equal(t, 1, s.TaskIndex)
	assert.Equal(t, 120, s.TaskRemaining)
	assert.Equal(t, 2, sched.scheduled)
}

func TestTimer_Reset(t *testing.T) {
	tm, sched := newTestTimer(t, catalog.Easy)
	tm.Start()
	sched.advance(200)

	require.NoError(t, tm.Reset(catalog.Medium))
	s := tm.State()
	assert.Equal(t, 1800, s.TotalRemaining)
	assert.Equal(t, 0, s.TaskIndex)
	assert.Equal(t, 120, s.TaskRemaining)
	assert.False(t, s.Running)
	assert.Equal(t, 1, sched.cancelled)
	assert.Equal(t, "30:00", tm.Clock())
	assert.Equal(t, "2.00 min", tm.Tasks()[0].DurationLabel)
}

func TestTimer_ChangeDifficultyWhileRunning(t *testing.T) {
	tm, sched := newTestTimer(t, catalog.Easy)
	tm.Start()
	sched.advance(75)

	require.NoError(t, tm.ChangeDifficulty(catalog.Hard))
	s := tm.State()
	assert.Equal(t, catalog.Hard, tm.Difficulty())
	assert.Equal(t, 2700, s.TotalRemaining)
	assert.Equal(t, 0, s.TaskIndex)
	assert.Equal(t, 180, s.TaskRemaining)
	assert.False(t, tm.Running())
	assert.Equal(t, "Task 1: Read Instructions Aloud", tm.CurrentTaskLabel())
}

func TestTimer_ResetUnknownDifficultyKeepsState(t *testing.T) {
	tm, _ := newTestTimer(t, catalog.Easy)
	before := tm.State()
	assert.Error(t, tm.Reset("nightmare"))
	assert.Equal(t, before, tm.State())
}

func TestTimer_RunsToCompletion(t *testing.T) {
	tm, sched := newTestTimer(t, catalog.Easy)
	tm.Start()
	sched.advance(10_000)

	s := tm.State()
	assert.True(t, s.Done())
	assert.False(t, s.Running)
	assert.Equal(t, 0, s.TotalRemaining)
	assert.Equal(t, 7, s.TaskIndex)
	assert.Equal(t, 1, sched.cancelled)
	assert.Equal(t, "Session complete", tm.CurrentTaskLabel())

	// Terminal: nothing restarts it except a reset.
	assert.False(t, tm.Start())
	tm.Tick()
	assert.Equal(t, s, tm.State())
}

func TestTimer_TickWhilePausedIgnored(t *testing.T) {
	tm, _ := newTestTimer(t, catalog.Easy)
	tm.Tick()
	assert.Equal(t, 900, tm.State().TotalRemaining)
}

func TestTimer_ObserversNotified(t *testing.T) {
	tm, sched := newTestTimer(t, catalog.Easy)
	var seen []State
	tm.OnChange(func(s State) { seen = append(seen, s) })

	tm.Start()
	sched.advance(2)
	tm.Pause()

	require.Len(t, seen, 4)
	assert.True(t, seen[0].Running)
	assert.Equal(t, 898, seen[2].TotalRemaining)
	assert.False(t, seen[3].Running)
}

func TestTimer_Labels(t *testing.T) {
	tm, sched := newTestTimer(t, catalog.Easy)
	assert.Equal(t, "15:00", tm.Clock())
	assert.Equal(t, "1:00", tm.TaskClock())
	assert.Equal(t, "Task 1: Read Instructions Aloud", tm.CurrentTaskLabel())

	tm.Start()
	sched.advance(61)
	assert.Equal(t, "13:59", tm.Clock())
	assert.Equal(t, "1:59", tm.TaskClock())
	assert.Equal(t, "Task 2: Pseudo-test-code Aloud", tm.CurrentTaskLabel())
}

func TestTimer_StateIsCopy(t *testing.T) {
	tm, _ := newTestTimer(t, catalog.Easy)
	s := tm.State()
	s.Profile.TaskSeconds[0] = 1
	assert.Equal(t, 60, tm.State().Profile.TaskSeconds[0])
}
