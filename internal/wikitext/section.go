// Package wikitext scans MediaWiki markup: heading-nested sections, template
// occurrences, list items and a plain-text rendering.
package wikitext

import "strings"

// maxHeadingLevel is the deepest heading MediaWiki renders.
const maxHeadingLevel = 6

// Section is one heading-delimited span of a page.
// The root section has Level 0, an empty Title and Heading, and holds the
// page preamble in Body.
type Section struct {
	Title string
	Level int
	// Heading is the exact heading line, including its line break.
	Heading string
	// Body is the text after the heading line up to the next heading of any depth.
	Body     string
	Children []*Section
}

// Source reconstructs the exact source span covered by s and its subtree.
func (s *Section) Source() string {
	var b strings.Builder
	s.writeSource(&b)
	return b.String()
}

func (s *Section) writeSource(b *strings.Builder) {
	b.WriteString(s.Heading)
	b.WriteString(s.Body)
	for _, c := range s.Children {
		c.writeSource(b)
	}
}

// Walk visits s and every descendant in document order. Returning false from
// fn skips the subtree of that node.
func (s *Section) Walk(fn func(*Section) bool) {
	if !fn(s) {
		return
	}
	for _, c := range s.Children {
		c.Walk(fn)
	}
}

// Clone returns a deep copy of s.
func (s *Section) Clone() *Section {
	if s == nil {
		return nil
	}
	out := &Section{
		Title:   s.Title,
		Level:   s.Level,
		Heading: s.Heading,
		Body:    s.Body,
	}
	if len(s.Children) > 0 {
		out.Children = make([]*Section, len(s.Children))
		for i, c := range s.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// heading is one heading line located by scanHeadings.
type heading struct {
	start, end int // byte span of the heading line, end includes the line break
	level      int
	title      string
}

// ParseSections builds the heading tree of text. It never fails: skipped
// heading levels attach to the nearest shallower ancestor.
func ParseSections(text string) *Section {
	hs := scanHeadings(text)

	root := &Section{}
	if len(hs) == 0 {
		root.Body = text
		return root
	}
	root.Body = text[:hs[0].start]

	stack := []*Section{root}
	for i, h := range hs {
		bodyEnd := len(text)
		if i+1 < len(hs) {
			bodyEnd = hs[i+1].start
		}
		node := &Section{
			Title:   h.title,
			Level:   h.level,
			Heading: text[h.start:h.end],
			Body:    text[h.end:bodyEnd],
		}

		for len(stack) > 1 && stack[len(stack)-1].Level >= h.level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, node)
		stack = append(stack, node)
	}
	return root
}

// scanHeadings walks text line by line and returns every heading line in order.
func scanHeadings(text string) []heading {
	var out []heading
	pos := 0
	for pos < len(text) {
		end := strings.IndexByte(text[pos:], '\n')
		lineEnd := len(text)
		next := len(text)
		if end >= 0 {
			lineEnd = pos + end
			next = lineEnd + 1
		}
		if level, title, ok := parseHeadingLine(text[pos:lineEnd]); ok {
			out = append(out, heading{start: pos, end: next, level: level, title: title})
		}
		pos = next
	}
	return out
}

// parseHeadingLine reports whether line is a heading and returns its level and title.
func parseHeadingLine(line string) (int, string, bool) {
	line = strings.TrimRight(line, " \t\r")
	line = stripTrailingComment(line)
	if len(line) < 3 || line[0] != '=' || line[len(line)-1] != '=' {
		return 0, "", false
	}

	open := countRun(line, '=', false)
	closing := countRun(line, '=', true)
	level := min(open, closing, maxHeadingLevel)
	if len(line) <= 2*level {
		return 0, "", false
	}

	title := strings.TrimSpace(line[level : len(line)-level])
	return level, title, true
}

// stripTrailingComment removes "<!-- ... -->" blocks that follow the closing
// heading marker, e.g. "===Noun=== <!-- see talk -->".
func stripTrailingComment(line string) string {
	for strings.HasSuffix(line, "-->") {
		i := strings.LastIndex(line, "<!--")
		if i < 0 {
			return line
		}
		line = strings.TrimRight(line[:i], " \t")
	}
	return line
}

func countRun(s string, c byte, fromEnd bool) int {
	n := 0
	for n < len(s) {
		i := n
		if fromEnd {
			i = len(s) - 1 - n
		}
		if s[i] != c {
			break
		}
		n++
	}
	return n
}
