package assist

import "strings"

const (
	fence        = "```"
	timePrefix   = "Time Complexity:"
	spacePrefix  = "Space Complexity:"
	indentCutset = " \t"
)

// region is a fenced code block. start is the offset of the opening
// marker and end the offset just past the closing marker.
type region struct {
	start, end int
	code       string
}

// Parse splits a raw reply into segments. It never fails: a reply without
// fenced code yields a single segment holding the whole text.
//
// A fenced region is an opening marker, an optional language tag running
// to the end of that line, the content, and a closing marker. Each region
// is followed by a search window reaching to the next region's opening
// marker, in which the complexity block is a line starting with
// "Time Complexity:" up to the end of a later line starting with
// "Space Complexity:".
func Parse(raw string) Reply {
	regions := findRegions(raw)
	if len(regions) == 0 {
		return Reply{Segments: []Segment{{Code: raw}}}
	}

	segments := make([]Segment, len(regions))
	for i, r := range regions {
		limit := len(raw)
		if i+1 < len(regions) {
			limit = regions[i+1].start
		}
		segments[i] = Segment{
			Code:       r.code,
			Complexity: findComplexity(raw[r.end:limit]),
		}
	}
	return Reply{Segments: segments}
}

// findRegions is the first phase: locate delimiter pairs left to right.
// An opening marker without a newline or a closing marker ends the scan.
func findRegions(s string) []region {
	var out []region
	pos := 0
	for pos < len(s) {
		open := strings.Index(s[pos:], fence)
		if open < 0 {
			break
		}
		open += pos

		nl := strings.IndexByte(s[open+len(fence):], '\n')
		if nl < 0 {
			break
		}
		contentStart := open + len(fence) + nl + 1

		close := strings.Index(s[contentStart:], fence)
		if close < 0 {
			break
		}
		close += contentStart

		out = append(out, region{
			start: open,
			end:   close + len(fence),
			code:  strings.TrimSpace(s[contentStart:close]),
		})
		pos = close + len(fence)
	}
	return out
}

// findComplexity is the second phase: a bounded forward line scan of the
// window following one region.
func findComplexity(window string) string {
	timeStart := -1
	for lineStart := 0; lineStart <= len(window); {
		lineEnd := strings.IndexByte(window[lineStart:], '\n')
		if lineEnd < 0 {
			lineEnd = len(window)
		} else {
			lineEnd += lineStart
		}
		line := strings.TrimLeft(window[lineStart:lineEnd], indentCutset)

		switch {
		case timeStart < 0 && strings.HasPrefix(line, timePrefix):
			timeStart = lineStart
		case timeStart >= 0 && strings.HasPrefix(line, spacePrefix):
			return strings.TrimSpace(window[timeStart:lineEnd])
		}

		if lineEnd == len(window) {
			break
		}
		lineStart = lineEnd + 1
	}
	return ""
}
