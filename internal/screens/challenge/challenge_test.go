package challenge

import (
	"reflect"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aloud/internal/router"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// runSequence executes a tea.Sequence command and returns the messages of
// its parts in order.
func runSequence(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	v := reflect.ValueOf(cmd())
	require.Equal(t, reflect.Slice, v.Kind())

	var msgs []tea.Msg
	for i := 0; i < v.Len(); i++ {
		c, ok := v.Index(i).Interface().(tea.Cmd)
		require.True(t, ok)
		msgs = append(msgs, c())
	}
	return msgs
}

func TestNew_PrefillsFields(t *testing.T) {
	e := New("two sum", "use a map")
	challenge, suggested := e.values()
	assert.Equal(t, "two sum", challenge)
	assert.Equal(t, "use a map", suggested)
	assert.Equal(t, "Challenge", e.Title())
	assert.Len(t, e.KeyHints(), 3)
}

func TestTyping_GoesToFocusedField(t *testing.T) {
	e := New("ab", "")
	e.Init()

	e.Update(keyPress('c'))
	challenge, suggested := e.values()
	assert.Equal(t, "abc", challenge)
	assert.Empty(t, suggested)

	e.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	e.Update(keyPress('x'))
	challenge, suggested = e.values()
	assert.Equal(t, "abc", challenge)
	assert.Equal(t, "x", suggested)
}

func TestSave_PopsThenSendsTrimmedText(t *testing.T) {
	e := New("  two sum \n", " map ")
	e.Init()

	_, cmd := e.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	msgs := runSequence(t, cmd)
	require.Len(t, msgs, 2)
	assert.IsType(t, router.PopScreenMsg{}, msgs[0])
	assert.Equal(t, SavedMsg{Challenge: "two sum", Suggested: "map"}, msgs[1])
}

func TestEsc_Cancels(t *testing.T) {
	e := New("q", "")
	_, cmd := e.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestView_ShowsLabels(t *testing.T) {
	e := New("q", "")
	e.Init()
	out := e.View(80, 30)
	assert.Contains(t, out, "Challenge question")
	assert.Contains(t, out, "Suggested solution (optional)")
}
