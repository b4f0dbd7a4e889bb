// Package timer implements the practice session clock: a pure per-second
// transition over State and a Timer that owns one State and drives it
// through a Scheduler.
package timer

import (
	"fmt"

	"github.com/abhisek/aloud/internal/catalog"
)

// Period is the fixed tick interval in seconds.
const Period = 1

// State is the full session clock. TaskIndex == len(Profile.TaskSeconds)
// means every task has run out.
type State struct {
	Profile        catalog.Profile
	TotalRemaining int
	TaskIndex      int
	TaskRemaining  int
	Running        bool
}

// NewState returns a stopped state at the start of the profile.
func NewState(p catalog.Profile) State {
	return State{
		Profile:        p,
		TotalRemaining: p.TotalSeconds,
		TaskIndex:      0,
		TaskRemaining:  p.TaskDuration(0),
	}
}

// TaskCount is the number of tasks in the profile.
func (s State) TaskCount() int {
	return len(s.Profile.TaskSeconds)
}

// Done reports whether the session has reached its terminal state.
func (s State) Done() bool {
	return s.TotalRemaining <= 0 || s.TaskIndex >= s.TaskCount()
}

// Tick applies one period. Both counters are decremented first, then the
// task boundary is handled, then termination is checked; a task boundary
// and the session boundary may coincide on the same tick.
func Tick(s State) State {
	if s.Done() {
		s.Running = false
		return s
	}

	s.TotalRemaining -= Period
	s.TaskRemaining -= Period

	if s.TaskRemaining <= 0 {
		s.TaskIndex++
		if s.TaskIndex < s.TaskCount() {
			s.TaskRemaining = s.Profile.TaskDuration(s.TaskIndex)
		} else {
			s.TaskRemaining = 0
		}
	}

	if s.TotalRemaining < 0 {
		s.TotalRemaining = 0
	}
	if s.Done() {
		s.Running = false
	}
	return s
}

// FormatClock renders seconds as m:ss with no hour component.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
