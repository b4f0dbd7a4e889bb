package assist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TwoRegionsWithComplexity(t *testing.T) {
	raw := "Approach 1\n" +
		"```go\nfunc a() {}\n```\n" +
		"Time Complexity: O(n)\nSpace Complexity: O(1)\n\n" +
		"Approach 2\n" +
		"```python\ndef b(): pass\n```\n" +
		"Time Complexity: O(n)\nSpace Complexity: O(1)\n"

	reply := Parse(raw)
	require.Len(t, reply.Segments, 2)
	assert.Equal(t, "func a() {}", reply.Segments[0].Code)
	assert.Equal(t, "Time Complexity: O(n)\nSpace Complexity: O(1)", reply.Segments[0].Complexity)
	assert.Equal(t, "def b(): pass", reply.Segments[1].Code)
	assert.Equal(t, "Time Complexity: O(n)\nSpace Complexity: O(1)", reply.Segments[1].Complexity)
}

func TestParse_NoFencesFallsBackToWholeText(t *testing.T) {
	raw := "Break: pass an empty slice\nDebug: log the index before the loop"
	reply := Parse(raw)
	require.Len(t, reply.Segments, 1)
	assert.Equal(t, raw, reply.Segments[0].Code)
	assert.Empty(t, reply.Segments[0].Complexity)
}

func TestParse_EmptyInput(t *testing.T) {
	reply := Parse("")
	require.Len(t, reply.Segments, 1)
	assert.Equal(t, Segment{}, reply.Segments[0])
}

func TestParse_OpeningMarkerWithoutNewline(t *testing.T) {
	raw := "use ```inline``` code"
	reply := Parse(raw)
	require.Len(t, reply.Segments, 1)
	assert.Equal(t, raw, reply.Segments[0].Code)
}

func TestParse_UnclosedRegionEndsScan(t *testing.T) {
	raw := "```go\nfirst\n```\nthen\n```python\nnever closed"
	reply := Parse(raw)
	require.Len(t, reply.Segments, 1)
	assert.Equal(t, "first", reply.Segments[0].Code)
}

func TestParse_ContentTrimmedAndTagIgnored(t *testing.T) {
	reply := Parse("```javascript  \n\n   const x = 1;\n\n```")
	require.Len(t, reply.Segments, 1)
	assert.Equal(t, "const x = 1;", reply.Segments[0].Code)
}

func TestParse_EmptyRegion(t *testing.T) {
	reply := Parse("```\n```")
	require.Len(t, reply.Segments, 1)
	assert.Empty(t, reply.Segments[0].Code)
	assert.Empty(t, reply.Segments[0].Complexity)
}

func TestParse_ComplexityBoundedByNextRegion(t *testing.T) {
	raw := "```\none\n```\nno analysis here\n" +
		"```\ntwo\n```\nTime Complexity: O(n log n)\nSpace Complexity: O(n)"
	reply := Parse(raw)
	require.Len(t, reply.Segments, 2)
	assert.Empty(t, reply.Segments[0].Complexity)
	assert.Equal(t, "Time Complexity: O(n log n)\nSpace Complexity: O(n)", reply.Segments[1].Complexity)
}

func TestParse_TimeWithoutSpace(t *testing.T) {
	reply := Parse("```\ncode\n```\nTime Complexity: O(1)\nthat's all")
	require.Len(t, reply.Segments, 1)
	assert.Empty(t, reply.Segments[0].Complexity)
}

func TestParse_SpaceBeforeTimeIgnored(t *testing.T) {
	reply := Parse("```\ncode\n```\nSpace Complexity: O(1)\nTime Complexity: O(n)\n")
	require.Len(t, reply.Segments, 1)
	assert.Empty(t, reply.Segments[0].Complexity)
}

func TestParse_ComplexitySpanIncludesLinesBetween(t *testing.T) {
	raw := "```\ncode\n```\n\n  Time Complexity: O(n) for the scan\n  because every item is visited once\n  Space Complexity: O(1)\nTrailing prose."
	reply := Parse(raw)
	require.Len(t, reply.Segments, 1)
	assert.Equal(t,
		"Time Complexity: O(n) for the scan\n  because every item is visited once\n  Space Complexity: O(1)",
		reply.Segments[0].Complexity)
}

func TestParse_TabIndentedComplexity(t *testing.T) {
	raw := "```\ncode\n```\n\t Time Complexity: O(n)\n \tSpace Complexity: O(1)"
	reply := Parse(raw)
	require.Len(t, reply.Segments, 1)
	assert.Equal(t, "Time Complexity: O(n)\n \tSpace Complexity: O(1)", reply.Segments[0].Complexity)
}

func TestParse_PrefixMustStartLine(t *testing.T) {
	raw := "```\ncode\n```\nNote - Time Complexity: O(n)\nSpace Complexity: O(1)"
	reply := Parse(raw)
	require.Len(t, reply.Segments, 1)
	assert.Empty(t, reply.Segments[0].Complexity)
}

func TestParse_Deterministic(t *testing.T) {
	raw := "x\n```go\na\n```\nTime Complexity: O(1)\nSpace Complexity: O(1)"
	assert.Equal(t, Parse(raw), Parse(raw))
}

func TestParse_MetaMessageIsSingleSegment(t *testing.T) {
	reply := Parse(MetaMessage)
	require.Len(t, reply.Segments, 1)
	assert.Equal(t, MetaMessage, reply.Segments[0].Code)
}
