package timer

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/abhisek/aloud/internal/catalog"
)

type fakeTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()               { f.stopped.Store(true) }

type fakeClock struct {
	tickers chan *fakeTicker
}

func newFakeClock() *fakeClock {
	return &fakeClock{tickers: make(chan *fakeTicker, 4)}
}

func (c *fakeClock) NewTicker(time.Duration) Ticker {
	ft := &fakeTicker{ch: make(chan time.Time)}
	c.tickers <- ft
	return ft
}

func TestTickerScheduler_RunsAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := newFakeClock()
	sched := NewTickerScheduler(clock)

	var calls atomic.Int32
	fired := make(chan struct{}, 8)
	cancel := sched.Every(time.Second, func() {
		calls.Add(1)
		fired <- struct{}{}
	})

	ft := <-clock.tickers
	for range 3 {
		ft.ch <- time.Now()
		<-fired
	}
	assert.Equal(t, int32(3), calls.Load())

	cancel()
	cancel()
	require.Eventually(t, ft.stopped.Load, time.Second, time.Millisecond)
}

func TestTickerScheduler_CancelFromCallback(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := newFakeClock()
	sched := NewTickerScheduler(clock)

	var cancel func()
	done := make(chan struct{})
	cancel = sched.Every(time.Second, func() {
		cancel()
		close(done)
	})

	ft := <-clock.tickers
	ft.ch <- time.Now()
	<-done
	require.Eventually(t, ft.stopped.Load, time.Second, time.Millisecond)
}

func TestTickerScheduler_DrivesTimerToCompletion(t *testing.T) {
	defer goleak.VerifyNone(t)

	cat, err := catalog.New(
		[]catalog.Task{{Name: "Only", Style: catalog.StyleCode}},
		[]catalog.Profile{
			{Difficulty: catalog.Easy, TotalSeconds: 3, TaskSeconds: []int{3}},
			{Difficulty: catalog.Medium, TotalSeconds: 6, TaskSeconds: []int{6}},
			{Difficulty: catalog.Hard, TotalSeconds: 9, TaskSeconds: []int{9}},
		},
	)
	require.NoError(t, err)

	clock := newFakeClock()
	tm, err := New(cat, NewTickerScheduler(clock), catalog.Easy, nil)
	require.NoError(t, err)

	states := make(chan State, 8)
	tm.OnChange(func(s State) { states <- s })

	require.True(t, tm.Start())
	<-states // start notification

	ft := <-clock.tickers
	var last State
	for range 3 {
		ft.ch <- time.Now()
		last = <-states
	}
	assert.True(t, last.Done())
	assert.False(t, last.Running)
	require.Eventually(t, ft.stopped.Load, time.Second, time.Millisecond)
}

// countingLocker records lock state for LockedScheduler tests.
type countingLocker struct {
	locks  int
	held   bool
	seenIn []bool
}

func (l *countingLocker) Lock()   { l.locks++; l.held = true }
func (l *countingLocker) Unlock() { l.held = false }

func TestLockedScheduler_HoldsLockDuringCallback(t *testing.T) {
	inner := &manualScheduler{}
	mu := &countingLocker{}
	sched := NewLockedScheduler(inner, mu)

	cancel := sched.Every(time.Second, func() {
		mu.seenIn = append(mu.seenIn, mu.held)
	})
	assert.Equal(t, time.Second, inner.period)

	inner.advance(2)
	assert.Equal(t, []bool{true, true}, mu.seenIn)
	assert.Equal(t, 2, mu.locks)
	assert.False(t, mu.held)

	cancel()
	assert.Equal(t, 1, inner.cancelled)
}

func TestLockedScheduler_DrivesTimer(t *testing.T) {
	inner := &manualScheduler{}
	var mu sync.Mutex
	tm, err := New(catalog.Default(), NewLockedScheduler(inner, &mu), catalog.Easy, nil)
	require.NoError(t, err)

	require.True(t, tm.Start())
	inner.advance(5)

	mu.Lock()
	assert.Equal(t, "14:55", tm.Clock())
	tm.Pause()
	mu.Unlock()

	inner.advance(5)
	assert.Equal(t, "14:55", tm.Clock())
}
