package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette. Calm on dark terminals; accents mark time pressure.
var (
	Primary   = lipgloss.Color("#60A5FA") // Sky
	Secondary = lipgloss.Color("#34D399") // Mint
	Accent    = lipgloss.Color("#FBBF24") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	BgCode    = lipgloss.Color("#111827") // Near black
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Clock = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text).
		Padding(0, 2)

	TaskClock = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
)

// Task list
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Current = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	Finished = lipgloss.NewStyle().
			Foreground(TextDim).
			Strikethrough(true)
)

// Status badges
var (
	Running = lipgloss.NewStyle().
		Foreground(BgCard).
		Background(Success).
		Bold(true).
		Padding(0, 1)

	Paused = lipgloss.NewStyle().
		Foreground(BgCard).
		Background(Accent).
		Bold(true).
		Padding(0, 1)

	Complete = lipgloss.NewStyle().
			Foreground(Text).
			Background(Border).
			Bold(true).
			Padding(0, 1)
)

// Assistance panel
var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	Code = lipgloss.NewStyle().
		Background(BgCode).
		Foreground(Text).
		Padding(0, 1)

	Complexity = lipgloss.NewStyle().
			Foreground(Secondary).
			Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
