package assist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aloud/internal/catalog"
	"github.com/abhisek/aloud/internal/llm"
)

func TestBuildPrompt_DistinctPerStyle(t *testing.T) {
	seen := map[string]catalog.Style{}
	for _, style := range []catalog.Style{catalog.StylePseudocode, catalog.StyleIterative, catalog.StyleBreakDebug, catalog.StyleCode} {
		p := BuildPrompt(Request{TaskName: "t", Challenge: "c", Style: style})
		key := p.System + p.Messages[0].Content
		prev, dup := seen[key]
		assert.False(t, dup, "%s duplicates %s", style, prev)
		seen[key] = style
	}
}

func TestBuildPrompt_UnknownStyleActsLikeCode(t *testing.T) {
	code := BuildPrompt(Request{TaskName: "t", Challenge: "c", Style: catalog.StyleCode})
	other := BuildPrompt(Request{TaskName: "t", Challenge: "c", Style: "mystery"})
	assert.Equal(t, code, other)
}

func TestBuildPrompt_Content(t *testing.T) {
	p := BuildPrompt(Request{
		TaskName:          "Function-code-translation Aloud",
		Challenge:         "  Reverse a linked list. ",
		SuggestedSolution: "iterate with prev/next",
		Style:             catalog.StyleCode,
	})
	require.Len(t, p.Messages, 1)
	assert.Equal(t, llm.RoleUser, p.Messages[0].Role)

	body := p.Messages[0].Content
	assert.Contains(t, body, "Task: Function-code-translation Aloud")
	assert.Contains(t, body, "Challenge Question:\nReverse a linked list.\n")
	assert.Contains(t, body, "Suggested Solution (optional):\niterate with prev/next")
	assert.Contains(t, p.System, "ONLY the clean final solution")
	assert.Positive(t, p.MaxTokens)
}

func TestBuildPrompt_NoSuggestion(t *testing.T) {
	p := BuildPrompt(Request{TaskName: "t", Challenge: "c", Style: catalog.StylePseudocode})
	assert.Contains(t, p.Messages[0].Content, "Suggested Solution (optional):\nNone provided")
	assert.Contains(t, p.Messages[0].Content, "No code syntax")
}

func TestBuildPrompt_IterativeAsksForComplexity(t *testing.T) {
	p := BuildPrompt(Request{TaskName: "t", Challenge: "c", Style: catalog.StyleIterative})
	assert.Contains(t, p.Messages[0].Content, "two further optimized alternatives")
	assert.Contains(t, p.Messages[0].Content, "Time Complexity:")
	assert.Contains(t, p.Messages[0].Content, "Space Complexity:")
}

func TestBuildPrompt_BreakDebugTwoLines(t *testing.T) {
	p := BuildPrompt(Request{TaskName: "t", Challenge: "c", Style: catalog.StyleBreakDebug})
	assert.Contains(t, p.Messages[0].Content, "exactly two lines")
	assert.Contains(t, p.Messages[0].Content, "Break:")
	assert.Contains(t, p.Messages[0].Content, "Debug:")
}
