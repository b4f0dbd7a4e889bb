package timer

import (
	"sync"
	"time"
)

// Scheduler runs fn every period until the returned cancel func is called.
// Cancel must be safe to call more than once and from inside fn.
type Scheduler interface {
	Every(period time.Duration, fn func()) (cancel func())
}

// Ticker is the subset of *time.Ticker the TickerScheduler needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock creates tickers. Tests substitute a fake.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

type realClock struct{}

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

func (realClock) NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// RealClock is backed by the time package.
var RealClock Clock = realClock{}

// TickerScheduler runs each schedule on its own goroutine. fn is always
// invoked from that goroutine, so callers that share state with fn must
// only touch it from fn or after cancel.
type TickerScheduler struct {
	clock Clock
}

// NewTickerScheduler creates a scheduler on the given clock (nil = real).
func NewTickerScheduler(clock Clock) *TickerScheduler {
	if clock == nil {
		clock = RealClock
	}
	return &TickerScheduler{clock: clock}
}

func (s *TickerScheduler) Every(period time.Duration, fn func()) func() {
	ticker := s.clock.NewTicker(period)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C():
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()

	return func() {
		once.Do(func() { close(done) })
	}
}

// LockedScheduler runs every callback of inner while holding mu, so a host
// that also holds mu may call Timer methods from another goroutine.
type LockedScheduler struct {
	inner Scheduler
	mu    sync.Locker
}

// NewLockedScheduler wraps inner.
func NewLockedScheduler(inner Scheduler, mu sync.Locker) *LockedScheduler {
	return &LockedScheduler{inner: inner, mu: mu}
}

func (s *LockedScheduler) Every(period time.Duration, fn func()) func() {
	return s.inner.Every(period, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		fn()
	})
}
