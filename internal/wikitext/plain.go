package wikitext

import (
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	fileLinkRe = regexp.MustCompile(`(?i)\[\[\s*(?:category|file|image)\s*:[^\]]*\]\]`)
	wikiLinkRe = regexp.MustCompile(`\[\[([^|\]]*\|)?([^\]]*)\]\]`)
	extLinkRe  = regexp.MustCompile(`\[(?:https?:)?//[^\s\]]+\s*([^\]]*)\]`)
	emphasisRe = regexp.MustCompile(`'{2,}`)
)

// TemplateRenderer returns the inline text a template stands for, or "" to drop it.
type TemplateRenderer func(Template) string

// PlainText renders markup as readable text. Templates go through render
// (nil drops them all), links keep their label, HTML tags, comments and
// <ref> footnotes are removed and whitespace, including decoded &nbsp;,
// is collapsed to single spaces.
func PlainText(s string, render TemplateRenderer) string {
	if s == "" {
		return ""
	}
	s = stripHTML(s)
	s = replaceTemplates(s, render)
	s = fileLinkRe.ReplaceAllString(s, "")
	s = wikiLinkRe.ReplaceAllString(s, "$2")
	s = extLinkRe.ReplaceAllString(s, "$1")
	s = emphasisRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// replaceTemplates substitutes every outermost template with its rendering.
func replaceTemplates(s string, render TemplateRenderer) string {
	spans := scanTemplateSpans(s)
	if len(spans) == 0 {
		return s
	}
	var b strings.Builder
	last := 0
	for _, sp := range spans {
		if sp.start < last {
			continue
		}
		b.WriteString(s[last:sp.start])
		if render != nil {
			raw := s[sp.start:sp.end]
			t := parseTemplateBody(raw[2 : len(raw)-2])
			t.Raw = raw
			t.Offset = sp.start
			b.WriteString(render(t))
		}
		last = sp.end
	}
	b.WriteString(s[last:])
	return b.String()
}

// stripHTML keeps text content, dropping tags, comments and <ref> bodies.
func stripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	refDepth := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return b.String()
			}
			return s
		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == "ref" {
				refDepth++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "ref" && refDepth > 0 {
				refDepth--
			}
		case html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" && refDepth == 0 {
				b.WriteByte(' ')
			}
		case html.TextToken:
			if refDepth == 0 {
				b.Write(z.Text())
			}
		}
	}
}
