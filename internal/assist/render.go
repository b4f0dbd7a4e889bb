package assist

import (
	"html"
	"strings"
)

// RenderHTML renders a reply as an HTML fragment. All text is escaped;
// empty code or complexity fields produce no block.
func RenderHTML(r Reply) string {
	var b strings.Builder
	b.WriteString(`<div class="assist-reply">`)
	for _, s := range r.Segments {
		b.WriteString(`<div class="assist-segment">`)
		if s.Code != "" {
			b.WriteString(`<pre><code>`)
			b.WriteString(html.EscapeString(s.Code))
			b.WriteString(`</code></pre>`)
		}
		if s.Complexity != "" {
			b.WriteString(`<div class="complexity">`)
			b.WriteString(html.EscapeString(s.Complexity))
			b.WriteString(`</div>`)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// RenderErrorHTML renders the user-visible message of err in place of a
// reply.
func RenderErrorHTML(err error) string {
	return `<div class="assist-error">` + html.EscapeString(UserMessage(err)) + `</div>`
}

// RenderText renders a reply for a terminal. Segments are separated by a
// blank line.
func RenderText(r Reply) string {
	var parts []string
	for _, s := range r.Segments {
		var lines []string
		if s.Code != "" {
			lines = append(lines, s.Code)
		}
		if s.Complexity != "" {
			lines = append(lines, s.Complexity)
		}
		if len(lines) > 0 {
			parts = append(parts, strings.Join(lines, "\n\n"))
		}
	}
	return strings.Join(parts, "\n\n")
}
