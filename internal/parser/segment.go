package parser

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/jqhoogland/open-dictionary/internal/domain"
	"github.com/jqhoogland/open-dictionary/internal/wikitext"
)

var numberedEtymologyRe = regexp.MustCompile(`^Etymology\s+([1-9][0-9]*)$`)

// preDefinitionTitles are language-level sections shared by every etymology.
var preDefinitionTitles = map[string]bool{
	"alternative forms": true,
	"description":       true,
	"glyph origin":      true,
	"pronunciation":     true,
}

type numbered struct {
	n    int
	node *wikitext.Section
}

// segment selects the level-2 section titled languageName and returns one
// section list per etymology.
func segment(root *wikitext.Section, languageName string, notices *domain.Notices) ([][]*wikitext.Section, error) {
	langNode := findLanguage(root, languageName)
	if langNode == nil {
		return nil, &domain.LanguageNotFoundError{Name: languageName}
	}

	var etymologies []numbered
	for _, c := range langNode.Children {
		if m := numberedEtymologyRe.FindStringSubmatch(strings.TrimSpace(c.Title)); m != nil {
			n, _ := strconv.Atoi(m[1])
			etymologies = append(etymologies, numbered{n: n, node: c})
		}
	}
	if len(etymologies) == 0 {
		return [][]*wikitext.Section{langNode.Children}, nil
	}

	var shared []*wikitext.Section
	for _, c := range langNode.Children {
		if numberedEtymologyRe.MatchString(strings.TrimSpace(c.Title)) {
			continue
		}
		if preDefinitionTitles[domain.NormalizeTitle(c.Title)] {
			shared = append(shared, c)
			continue
		}
		notices.Add(domain.NoticeUnhandledSection, c.Title, "language-level section outside numbered etymologies")
	}

	slices.SortStableFunc(etymologies, func(a, b numbered) int { return cmp.Compare(a.n, b.n) })

	out := make([][]*wikitext.Section, 0, len(etymologies))
	for _, e := range etymologies {
		list := slices.Clone(shared)
		list = append(list, etymologySections(e.node, notices)...)
		out = append(out, list)
	}
	return out, nil
}

func findLanguage(root *wikitext.Section, name string) *wikitext.Section {
	var found *wikitext.Section
	root.Walk(func(s *wikitext.Section) bool {
		if found != nil {
			return false
		}
		if s.Level == 2 && strings.TrimSpace(s.Title) == name {
			found = s
			return false
		}
		return true
	})
	return found
}

// etymologySections returns the sections of one numbered etymology, with its
// untitled preamble relabeled "Etymology".
func etymologySections(node *wikitext.Section, notices *domain.Notices) []*wikitext.Section {
	children := node.Children
	switch {
	case strings.TrimSpace(node.Body) != "":
		preamble := &wikitext.Section{Title: "Etymology", Level: node.Level, Body: node.Body}
		return append([]*wikitext.Section{preamble}, children...)
	case len(children) > 0 && strings.TrimSpace(children[0].Title) == "":
		first := children[0].Clone()
		first.Title = "Etymology"
		return append([]*wikitext.Section{first}, children[1:]...)
	default:
		notices.Add(domain.NoticeStructuralAssumption, node.Title, "numbered etymology has no preamble")
		return slices.Clone(children)
	}
}
