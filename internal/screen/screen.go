package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aloud/internal/ui/layout"
)

// Screen is one page of the terminal UI.
type Screen interface {
	// Init returns an initial command when the screen is pushed.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface for screens that supply their
// own footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that show a status
// string on the right of the header.
type StatusProvider interface {
	Status() string
}

// Resumer is an optional interface for screens that restart animations
// when they become active again after the screen above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}
