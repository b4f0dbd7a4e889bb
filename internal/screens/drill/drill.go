// Package drill is the main practice screen: the session clock, the task
// list and per-task assistance panels.
package drill

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/aloud/internal/assist"
	"github.com/abhisek/aloud/internal/catalog"
	"github.com/abhisek/aloud/internal/router"
	"github.com/abhisek/aloud/internal/screen"
	"github.com/abhisek/aloud/internal/screens/challenge"
	"github.com/abhisek/aloud/internal/timer"
	"github.com/abhisek/aloud/internal/ui/components"
	"github.com/abhisek/aloud/internal/ui/layout"
)

// panel is the assistance block under one task row.
type panel struct {
	requestID string
	loading   bool
	reply     *assist.Reply
	err       error
}

// DrillScreen implements screen.Screen for a practice session.
type DrillScreen struct {
	catalog    *catalog.Catalog
	timer      *timer.Timer
	sched      *teaScheduler
	dispatcher *assist.Dispatcher
	log        *zap.Logger

	list    components.TaskList
	panels  map[int]*panel
	spinner spinner.Model

	challenge string
	suggested string
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)
var _ screen.StatusProvider = (*DrillScreen)(nil)
var _ screen.Resumer = (*DrillScreen)(nil)

// New creates a drill screen with a stopped timer at difficulty d.
func New(cat *catalog.Catalog, d catalog.Difficulty, dispatcher *assist.Dispatcher, log *zap.Logger) (*DrillScreen, error) {
	if log == nil {
		log = zap.NewNop()
	}
	sched := &teaScheduler{}
	t, err := timer.New(cat, sched, d, log)
	if err != nil {
		return nil, err
	}
	s := &DrillScreen{
		catalog:    cat,
		timer:      t,
		sched:      sched,
		dispatcher: dispatcher,
		log:        log,
		panels:     make(map[int]*panel),
		spinner:    spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
	s.list = components.NewTaskList(t.Tasks())
	return s, nil
}

// SetChallenge replaces the challenge text used by assistance requests.
func (s *DrillScreen) SetChallenge(challenge, suggested string) {
	s.challenge = strings.TrimSpace(challenge)
	s.suggested = strings.TrimSpace(suggested)
}

func (s *DrillScreen) Init() tea.Cmd {
	return nil
}

func (s *DrillScreen) Title() string {
	return "Drill"
}

func (s *DrillScreen) Status() string {
	return fmt.Sprintf("%s  %s", difficultyLabel(s.timer.Difficulty()), s.timer.Clock())
}

func (s *DrillScreen) KeyHints() []layout.KeyHint {
	startLabel := "Start"
	if s.timer.Running() {
		startLabel = "Pause"
	}
	return []layout.KeyHint{
		{Key: "Space", Description: startLabel},
		{Key: "R", Description: "Reset"},
		{Key: "1/2/3", Description: "Difficulty"},
		{Key: "↑↓", Description: "Task"},
		{Key: "A", Description: "Assist"},
		{Key: "E", Description: "Challenge"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Resume restarts the spinner when a request is still in flight.
func (s *DrillScreen) Resume() tea.Cmd {
	if s.anyLoading() {
		return s.spinner.Tick
	}
	return nil
}

func (s *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		cmd := s.sched.handle(msg)
		s.syncList()
		return s, cmd

	case assistDoneMsg:
		s.handleAssistDone(msg)
		return s, nil

	case challenge.SavedMsg:
		s.SetChallenge(msg.Challenge, msg.Suggested)
		return s, nil

	case spinner.TickMsg:
		if !s.anyLoading() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *DrillScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "space", " ":
		if s.timer.Running() {
			s.timer.Pause()
			return s, nil
		}
		s.timer.Start()
		return s, s.sched.pending()

	case "r":
		s.reset(s.timer.Difficulty())
		return s, nil

	case "1":
		s.reset(catalog.Easy)
		return s, nil
	case "2":
		s.reset(catalog.Medium)
		return s, nil
	case "3":
		s.reset(catalog.Hard)
		return s, nil
	case "d":
		s.reset(s.timer.Difficulty().Next())
		return s, nil

	case "up", "k", "down", "j":
		s.list = s.list.Update(msg)
		return s, nil

	case "a", "enter":
		return s, s.toggleAssist(s.list.Selected)

	case "e":
		editor := challenge.New(s.challenge, s.suggested)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: editor} }
	}
	return s, nil
}

// reset rebuilds the session for d. Open panels are discarded along with
// the task list they belonged to.
func (s *DrillScreen) reset(d catalog.Difficulty) {
	if err := s.timer.ChangeDifficulty(d); err != nil {
		s.log.Warn("difficulty change failed", zap.String("difficulty", string(d)), zap.Error(err))
		return
	}
	s.panels = make(map[int]*panel)
	selected := s.list.Selected
	s.list = components.NewTaskList(s.timer.Tasks())
	s.list.Selected = min(selected, len(s.list.Entries)-1)
	s.syncList()
}

func (s *DrillScreen) syncList() {
	st := s.timer.State()
	s.list.Current = st.TaskIndex
	s.list.Done = st.Done()
}

// toggleAssist closes an open panel or opens one and starts a request.
func (s *DrillScreen) toggleAssist(index int) tea.Cmd {
	if _, open := s.panels[index]; open {
		delete(s.panels, index)
		return nil
	}
	task, ok := s.catalog.Task(index)
	if !ok {
		return nil
	}

	p := &panel{requestID: uuid.New().String(), loading: true}
	s.panels[index] = p

	return tea.Batch(
		s.dispatch(index, p.requestID, task),
		s.spinner.Tick,
	)
}

func (s *DrillScreen) dispatch(index int, requestID string, task catalog.Task) tea.Cmd {
	d := s.dispatcher
	challengeText, suggested := s.challenge, s.suggested
	return func() tea.Msg {
		reply, err := d.Dispatch(context.Background(), task, challengeText, suggested)
		return assistDoneMsg{index: index, requestID: requestID, reply: reply, err: err}
	}
}

func (s *DrillScreen) handleAssistDone(msg assistDoneMsg) {
	p, ok := s.panels[msg.index]
	if !ok || p.requestID != msg.requestID {
		s.log.Debug("dropping stale assistance reply",
			zap.Int("task_index", msg.index),
			zap.String("request_id", msg.requestID))
		return
	}
	p.loading = false
	p.reply = msg.reply
	p.err = msg.err
}

func (s *DrillScreen) anyLoading() bool {
	for _, p := range s.panels {
		if p.loading {
			return true
		}
	}
	return false
}

func difficultyLabel(d catalog.Difficulty) string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}
