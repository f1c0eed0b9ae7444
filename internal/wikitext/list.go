package wikitext

import "strings"

// ListItem is one line of a wiki list ("*", "#", ":" or ";" prefixed).
type ListItem struct {
	// Marker is the full prefix run, e.g. "#" or "#*:".
	Marker string
	Text   string
}

// Depth is the nesting depth of the item.
func (li ListItem) Depth() int { return len(li.Marker) }

// Ordered reports whether the item belongs to a numbered ("#") list.
func (li ListItem) Ordered() bool { return strings.HasPrefix(li.Marker, "#") }

// Kind is the last marker character: '#' or '*' for entries, ':' for
// indented examples, ';' for terms.
func (li ListItem) Kind() byte {
	if li.Marker == "" {
		return 0
	}
	return li.Marker[len(li.Marker)-1]
}

// ListItems returns every list line of body in order, at any depth.
func ListItems(body string) []ListItem {
	var out []ListItem
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		n := 0
		for n < len(line) && strings.IndexByte("*#:;", line[n]) >= 0 {
			n++
		}
		if n == 0 {
			continue
		}
		out = append(out, ListItem{Marker: line[:n], Text: strings.TrimSpace(line[n:])})
	}
	return out
}

// LeadingText returns the lines of body before its first list line, with
// blank lines dropped.
func LeadingText(body string) string {
	var lines []string
	for _, line := range strings.Split(body, "\n") {
		if line != "" && strings.IndexByte("*#:;", line[0]) >= 0 {
			break
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}
