// Package challenge is the editor for the challenge question and the
// optional suggested solution sent with assistance requests.
package challenge

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aloud/internal/router"
	"github.com/abhisek/aloud/internal/screen"
	"github.com/abhisek/aloud/internal/ui/components"
	"github.com/abhisek/aloud/internal/ui/layout"
)

// SavedMsg carries the edited text back to the screen below.
type SavedMsg struct {
	Challenge string
	Suggested string
}

const (
	fieldChallenge = iota
	fieldSuggested
	fieldCount
)

// EditorScreen edits the challenge question and suggested solution.
type EditorScreen struct {
	fields [fieldCount]components.Editor
	focus  int
}

var _ screen.Screen = (*EditorScreen)(nil)
var _ screen.KeyHintProvider = (*EditorScreen)(nil)

// New creates an editor pre-filled with the current text.
func New(challenge, suggested string) *EditorScreen {
	return &EditorScreen{
		fields: [fieldCount]components.Editor{
			components.NewEditor("Challenge question", "Paste the challenge question here...", challenge),
			components.NewEditor("Suggested solution (optional)", "Paste your own solution, if any...", suggested),
		},
	}
}

func (e *EditorScreen) Init() tea.Cmd {
	return e.fields[e.focus].Focus()
}

func (e *EditorScreen) Title() string {
	return "Challenge"
}

func (e *EditorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch field"},
		{Key: "Ctrl+S", Description: "Save"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (e *EditorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "tab":
			return e, e.switchFocus()
		case "ctrl+s":
			return e, e.save()
		case "esc":
			return e, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	var cmd tea.Cmd
	e.fields[e.focus], cmd = e.fields[e.focus].Update(msg)
	return e, cmd
}

func (e *EditorScreen) switchFocus() tea.Cmd {
	e.fields[e.focus].Blur()
	e.focus = (e.focus + 1) % fieldCount
	return e.fields[e.focus].Focus()
}

func (e *EditorScreen) save() tea.Cmd {
	challenge, suggested := e.values()
	saved := SavedMsg{
		Challenge: strings.TrimSpace(challenge),
		Suggested: strings.TrimSpace(suggested),
	}
	return tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return saved },
	)
}

// values returns the current, untrimmed text of both fields.
func (e *EditorScreen) values() (challenge, suggested string) {
	return e.fields[fieldChallenge].Value(), e.fields[fieldSuggested].Value()
}

func (e *EditorScreen) View(width, height int) string {
	fieldWidth := width - 8
	if fieldWidth < 20 {
		fieldWidth = 20
	}
	// Challenge gets two thirds of the space.
	avail := height - 8
	if avail < 6 {
		avail = 6
	}
	e.fields[fieldChallenge].SetSize(fieldWidth, avail*2/3)
	e.fields[fieldSuggested].SetSize(fieldWidth, avail-avail*2/3)

	body := lipgloss.JoinVertical(lipgloss.Left,
		e.fields[fieldChallenge].View(),
		"",
		e.fields[fieldSuggested].View(),
	)
	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}
