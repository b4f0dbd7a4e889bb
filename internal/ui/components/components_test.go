package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/aloud/internal/catalog"
)

func testEntries(t *testing.T) []catalog.Entry {
	t.Helper()
	entries, err := catalog.Default().Listing(catalog.Easy)
	if err != nil {
		t.Fatal(err)
	}
	return entries
}

func TestTaskList_Navigation(t *testing.T) {
	l := NewTaskList(testEntries(t))

	l = l.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, l.Selected)

	for i := 0; i < 10; i++ {
		l = l.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	assert.Equal(t, 6, l.Selected)

	l = l.Update(tea.KeyPressMsg{Code: 'k', Text: "k"})
	assert.Equal(t, 5, l.Selected)
}

func TestTaskList_ViewRowsAndDetails(t *testing.T) {
	l := NewTaskList(testEntries(t))
	out := l.View(map[int]string{2: "details for three"})

	assert.Contains(t, out, "Read Instructions Aloud - 1.00 min")
	assert.Contains(t, out, "Function-code-translation Aloud - 6.00 min")
	assert.Contains(t, out, "details for three")
	assert.Equal(t, 8, strings.Count(out, "\n"))
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name        string
		done, total int
		want        float64
	}{
		{"start", 0, 900, 0},
		{"half", 450, 900, 0.5},
		{"zero total", 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProgressBar("", tt.done, tt.total, 20)
			assert.InDelta(t, tt.want, p.Percent, 1e-9)
			assert.NotEmpty(t, p.View())
		})
	}
}

func TestEditor(t *testing.T) {
	e := NewEditor("Question", "type here", "hello")
	assert.Equal(t, "hello", e.Value())

	e.Focus()
	e, _ = e.Update(tea.KeyPressMsg{Code: '!', Text: "!"})
	assert.Equal(t, "hello!", e.Value())
	assert.Contains(t, e.View(), "Question")

	e.Blur()
	e, _ = e.Update(tea.KeyPressMsg{Code: '?', Text: "?"})
	assert.Equal(t, "hello!", e.Value())
}
