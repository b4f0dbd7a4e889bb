package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aloud/internal/ui/theme"
)

// Editor wraps bubbles/textarea with a label and focus styling.
type Editor struct {
	Label string
	Model textarea.Model
}

// NewEditor creates a multi-line editor holding value.
func NewEditor(label, placeholder, value string) Editor {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetValue(value)
	return Editor{Label: label, Model: ta}
}

// Focus gives the editor keyboard input.
func (e *Editor) Focus() tea.Cmd {
	return e.Model.Focus()
}

// Blur removes keyboard input.
func (e *Editor) Blur() {
	e.Model.Blur()
}

// SetSize fits the editor into width x height cells.
func (e *Editor) SetSize(width, height int) {
	e.Model.SetWidth(width)
	e.Model.SetHeight(height)
}

// Update forwards messages to the textarea.
func (e Editor) Update(msg tea.Msg) (Editor, tea.Cmd) {
	var cmd tea.Cmd
	e.Model, cmd = e.Model.Update(msg)
	return e, cmd
}

// View renders the label and the textarea.
func (e Editor) View() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Render(e.Label)
	if e.Model.Focused() {
		label = theme.Selected.Render(e.Label)
	}
	return label + "\n" + theme.Panel.Render(e.Model.View())
}

// Value returns the current text.
func (e Editor) Value() string {
	return e.Model.Value()
}
