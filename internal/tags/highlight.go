package tags

import "strings"

// Segment is a run of a suggestion label, matched or not.
type Segment struct {
	Text    string
	Matched bool
}

// Highlight splits name into runs around every non-overlapping,
// case-insensitive occurrence of the literal query.
func Highlight(name, query string) []Segment {
	if name == "" {
		return nil
	}
	q := []rune(query)
	if len(q) == 0 {
		return []Segment{{Text: name}}
	}
	runes := []rune(name)

	var segments []Segment
	start := 0
	for i := 0; i+len(q) <= len(runes); {
		window := string(runes[i : i+len(q)])
		if !strings.EqualFold(window, query) {
			i++
			continue
		}
		if i > start {
			segments = append(segments, Segment{Text: string(runes[start:i])})
		}
		segments = append(segments, Segment{Text: window, Matched: true})
		i += len(q)
		start = i
	}
	if start < len(runes) {
		segments = append(segments, Segment{Text: string(runes[start:])})
	}
	return segments
}
