package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aloud/internal/catalog"
	"github.com/abhisek/aloud/internal/ui/theme"
)

// TaskList is the navigable list of session tasks. Each row may carry an
// expanded detail block beneath it.
type TaskList struct {
	Entries  []catalog.Entry
	Selected int
	// Current is the index of the task the timer is on.
	Current int
	// Done marks the whole session complete.
	Done bool
}

// NewTaskList creates a list with the first row selected.
func NewTaskList(entries []catalog.Entry) TaskList {
	return TaskList{Entries: entries}
}

// Update handles up/down navigation.
func (l TaskList) Update(msg tea.Msg) TaskList {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return l
	}

	switch kmsg.String() {
	case "up", "k":
		if l.Selected > 0 {
			l.Selected--
		}
	case "down", "j":
		if l.Selected < len(l.Entries)-1 {
			l.Selected++
		}
	}
	return l
}

// View renders the rows. details maps a row index to the block drawn
// under it.
func (l TaskList) View(details map[int]string) string {
	var b strings.Builder
	for i, e := range l.Entries {
		prefix := "    "
		if i == l.Selected {
			prefix = "  ▸ "
		}

		style := theme.Unselected
		switch {
		case i == l.Selected:
			style = theme.Selected
		case l.Done || i < l.Current:
			style = theme.Finished
		case i == l.Current:
			style = theme.Current
		}

		marker := "  "
		if !l.Done && i == l.Current {
			marker = lipgloss.NewStyle().Foreground(theme.Accent).Render("● ")
		}

		b.WriteString(prefix + marker + style.Render(e.Label()))
		b.WriteString("\n")

		if d, ok := details[i]; ok && d != "" {
			b.WriteString(lipgloss.NewStyle().MarginLeft(6).Render(d))
			b.WriteString("\n")
		}
	}
	return b.String()
}
