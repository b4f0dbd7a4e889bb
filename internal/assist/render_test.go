package assist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderHTML_EscapesMarkup(t *testing.T) {
	out := RenderHTML(Reply{Segments: []Segment{{
		Code:       `if a < b && c > "d" || e == 'f' {}`,
		Complexity: "Time Complexity: O(n) <fast>\nSpace Complexity: O(1)",
	}}})

	assert.Contains(t, out, `if a &lt; b &amp;&amp; c &gt; &#34;d&#34; || e == &#39;f&#39; {}`)
	assert.Contains(t, out, `Time Complexity: O(n) &lt;fast&gt;`)
	assert.NotContains(t, out, "<fast>")
}

func TestRenderHTML_OmitsEmptyBlocks(t *testing.T) {
	out := RenderHTML(Reply{Segments: []Segment{{Code: "only code"}}})
	assert.Contains(t, out, "<pre><code>only code</code></pre>")
	assert.NotContains(t, out, `class="complexity"`)

	out = RenderHTML(Reply{Segments: []Segment{{Complexity: "Time Complexity: O(1)\nSpace Complexity: O(1)"}}})
	assert.NotContains(t, out, "<pre>")
	assert.Contains(t, out, `class="complexity"`)
}

func TestRenderHTML_PreservesOrder(t *testing.T) {
	out := RenderHTML(Reply{Segments: []Segment{{Code: "first"}, {Code: "second"}}})
	assert.Less(t, indexOf(out, "first"), indexOf(out, "second"))
}

func TestRenderErrorHTML(t *testing.T) {
	out := RenderErrorHTML(&RequestError{Kind: KindTransport, Message: "<b>down</b>"})
	assert.Equal(t, `<div class="assist-error">&lt;b&gt;down&lt;/b&gt;</div>`, out)

	assert.Contains(t, RenderErrorHTML(errors.New("boom")), DefaultErrorMessage)
}

func TestRenderText(t *testing.T) {
	out := RenderText(Reply{Segments: []Segment{
		{Code: "a := 1", Complexity: "Time Complexity: O(1)\nSpace Complexity: O(1)"},
		{},
		{Code: "b := 2"},
	}})
	assert.Equal(t, "a := 1\n\nTime Complexity: O(1)\nSpace Complexity: O(1)\n\nb := 2", out)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
