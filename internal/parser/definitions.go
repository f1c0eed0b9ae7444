package parser

import (
	"strings"

	"github.com/jqhoogland/open-dictionary/internal/domain"
	"github.com/jqhoogland/open-dictionary/internal/wikitext"
)

// senseBlock splits a section into its headline (the text before the first
// list item) and its numbered glosses. Subsections become nested blocks.
func (st *state) senseBlock(s *wikitext.Section, kind domain.BlockKind) domain.Block {
	lead := wikitext.LeadingText(s.Body)
	b := domain.Block{
		ID:       domain.TitleID(s.Title),
		Kind:     kind,
		Title:    s.Title,
		Category: domain.Classify(s.Title),
		Headline: st.plain(lead),
		Senses:   st.glosses(s.Body),
	}
	if head := st.records(lead); len(head) > 0 {
		b.Head = head
	}

	for _, c := range s.Children {
		childKind := domain.BlockSenses
		if kindOf(c.Title) == kindDefinitions {
			childKind = domain.BlockDefinitions
		}
		if sub := st.senseBlock(c, childKind); !sub.IsEmpty() {
			b.Subsections = append(b.Subsections, sub)
		}
	}
	return b
}

type glossNode struct {
	gloss domain.Gloss
	subs  []*glossNode
}

func (n *glossNode) build() domain.Gloss {
	g := n.gloss
	for _, s := range n.subs {
		g.Subsenses = append(g.Subsenses, s.build())
	}
	return g
}

// glosses builds the sense tree of a body. "#" opens a sense, "##" a
// subsense, and a trailing ":" or "*" ("#:", "#*", "##*:") attaches an
// example or quotation to the latest sense at that depth. "*" lists, as
// used by relation sections, are read the same way.
func (st *state) glosses(body string) []domain.Gloss {
	var (
		roots []*glossNode
		path  []*glossNode
	)
	for _, item := range wikitext.ListItems(body) {
		lead := item.Marker[0]
		if lead != '#' && lead != '*' {
			continue
		}
		depth := len(item.Marker) - len(strings.TrimLeft(item.Marker, string(lead)))
		g := st.gloss(item.Text)

		if depth == len(item.Marker) {
			if g.Text == "" && len(g.Links) == 0 {
				continue
			}
			n := &glossNode{gloss: g}
			parent := min(depth-1, len(path))
			if parent == 0 {
				roots = append(roots, n)
			} else {
				path[parent-1].subs = append(path[parent-1].subs, n)
			}
			path = append(path[:parent], n)
			continue
		}

		if len(path) == 0 {
			continue
		}
		target := path[min(depth, len(path))-1]
		target.gloss.Examples = append(target.gloss.Examples, g)
	}

	out := make([]domain.Gloss, 0, len(roots))
	for _, n := range roots {
		out = append(out, n.build())
	}
	return out
}

func (st *state) gloss(text string) domain.Gloss {
	return domain.Gloss{Text: st.plain(text), Links: st.records(text)}
}
