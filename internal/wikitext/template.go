package wikitext

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Template is one "{{name|arg|key=value}}" occurrence.
type Template struct {
	// Name is the canonical name, see CanonicalName.
	Name       string
	Positional []string
	Named      map[string]string
	// Raw is the exact source text including the braces.
	Raw string
	// Offset is the byte offset of Raw within the scanned text.
	Offset int
}

// Args merges positional arguments, keyed by their 1-based index, with the
// named ones. An explicit "2=" argument overrides the second positional value.
func (t Template) Args() map[string]string {
	out := make(map[string]string, len(t.Positional)+len(t.Named))
	for i, v := range t.Positional {
		out[strconv.Itoa(i+1)] = v
	}
	for k, v := range t.Named {
		out[k] = v
	}
	return out
}

// Arg returns the argument stored under key, positional or named.
func (t Template) Arg(key string) (string, bool) {
	if v, ok := t.Named[key]; ok {
		return v, true
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(t.Positional) {
		return t.Positional[n-1], true
	}
	return "", false
}

// CanonicalName lower-cases and trims a template name, treats underscores as
// spaces and drops "Template:" and "subst:" prefixes.
func CanonicalName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", " ")
	for _, p := range []string{"subst:", "safesubst:", "template:"} {
		name = strings.TrimSpace(strings.TrimPrefix(name, p))
	}
	return strings.Join(strings.Fields(name), " ")
}

type braceSpan struct {
	start, end int
}

type openBrace struct {
	start int
	param bool
}

// ParseTemplates returns every template in text, nested ones included, ordered
// by their opening position. Unbalanced braces are dropped silently.
func ParseTemplates(text string) []Template {
	spans := scanTemplateSpans(text)
	out := make([]Template, 0, len(spans))
	for _, sp := range spans {
		raw := text[sp.start:sp.end]
		t := parseTemplateBody(raw[2 : len(raw)-2])
		if t.Name == "" {
			continue
		}
		t.Raw = raw
		t.Offset = sp.start
		out = append(out, t)
	}
	return out
}

func scanTemplateSpans(text string) []braceSpan {
	var (
		spans []braceSpan
		stack []openBrace
	)
	i := 0
	for i < len(text) {
		switch {
		case strings.HasPrefix(text[i:], "<!--"):
			end := strings.Index(text[i+4:], "-->")
			if end < 0 {
				i = len(text)
				continue
			}
			i += 4 + end + 3
		case strings.HasPrefix(text[i:], "{{{"):
			stack = append(stack, openBrace{start: i, param: true})
			i += 3
		case strings.HasPrefix(text[i:], "{{"):
			stack = append(stack, openBrace{start: i})
			i += 2
		case strings.HasPrefix(text[i:], "}}"):
			if len(stack) == 0 {
				i += 2
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.param {
				if strings.HasPrefix(text[i:], "}}}") {
					i += 3
				} else {
					i += 2
				}
				continue
			}
			spans = append(spans, braceSpan{start: top.start, end: i + 2})
			i += 2
		default:
			i++
		}
	}
	slices.SortFunc(spans, func(a, b braceSpan) int { return cmp.Compare(a.start, b.start) })
	return spans
}

// parseTemplateBody parses the text between the outer braces.
func parseTemplateBody(inner string) Template {
	parts := splitTopLevel(inner, '|')
	t := Template{Name: CanonicalName(parts[0])}
	for _, part := range parts[1:] {
		if eq := indexTopLevel(part, '='); eq >= 0 {
			key := strings.TrimSpace(part[:eq])
			if key != "" {
				if t.Named == nil {
					t.Named = make(map[string]string)
				}
				t.Named[key] = strings.TrimSpace(part[eq+1:])
				continue
			}
		}
		t.Positional = append(t.Positional, strings.TrimSpace(part))
	}
	return t
}

// splitTopLevel splits s on sep, ignoring separators nested inside
// templates or wiki links.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth, last := 0, 0
	for i := 0; i < len(s); i++ {
		switch {
		case isPair(s, i, '{') || isPair(s, i, '['):
			depth++
			i++
		case (isPair(s, i, '}') || isPair(s, i, ']')) && depth > 0:
			depth--
			i++
		case s[i] == sep && depth == 0:
			parts = append(parts, s[last:i])
			last = i + 1
		}
	}
	return append(parts, s[last:])
}

func indexTopLevel(s string, c byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch {
		case isPair(s, i, '{') || isPair(s, i, '['):
			depth++
			i++
		case (isPair(s, i, '}') || isPair(s, i, ']')) && depth > 0:
			depth--
			i++
		case s[i] == c && depth == 0:
			return i
		}
	}
	return -1
}

func isPair(s string, i int, c byte) bool {
	return i+1 < len(s) && s[i] == c && s[i+1] == c
}
