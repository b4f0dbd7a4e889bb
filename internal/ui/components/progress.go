package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aloud/internal/ui/theme"
)

// ProgressBar displays how much of a countdown has elapsed.
type ProgressBar struct {
	Label   string
	Percent float64
	Width   int
}

// NewProgressBar creates a bar for done out of total seconds. A zero total
// renders as full.
func NewProgressBar(label string, done, total, width int) ProgressBar {
	p := 1.0
	if total > 0 {
		p = float64(done) / float64(total)
	}
	return ProgressBar{Label: label, Percent: p, Width: width}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result = lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Label) + "  "
	}

	barWidth := p.Width - lipgloss.Width(result)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	filled = max(0, min(filled, barWidth))

	return result +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))
}
