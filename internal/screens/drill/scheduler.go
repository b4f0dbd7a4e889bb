package drill

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aloud/internal/timer"
)

// tickMsg is one scheduled timer tick. gen identifies the schedule that
// produced it; ticks from a cancelled schedule are dropped.
type tickMsg struct{ gen int }

func (tickMsg) Background() {}

// teaScheduler runs timer ticks through the Bubble Tea event loop so the
// timer is only touched from Update.
type teaScheduler struct {
	gen    int
	period time.Duration
	fn     func()
	armed  bool
}

var _ timer.Scheduler = (*teaScheduler)(nil)

func (s *teaScheduler) Every(period time.Duration, fn func()) func() {
	s.gen++
	gen := s.gen
	s.period, s.fn, s.armed = period, fn, true
	return func() {
		if s.gen != gen {
			return
		}
		s.gen++
		s.fn = nil
		s.armed = false
	}
}

// pending returns the command for the first tick of a schedule registered
// since the last call, or nil.
func (s *teaScheduler) pending() tea.Cmd {
	if !s.armed {
		return nil
	}
	s.armed = false
	return s.next(s.gen)
}

func (s *teaScheduler) next(gen int) tea.Cmd {
	return tea.Tick(s.period, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// handle runs the callback for a current tick and schedules the next one.
func (s *teaScheduler) handle(msg tickMsg) tea.Cmd {
	if msg.gen != s.gen || s.fn == nil {
		return nil
	}
	s.fn()
	// fn may have cancelled the schedule.
	if msg.gen != s.gen || s.fn == nil {
		return nil
	}
	return s.next(msg.gen)
}
