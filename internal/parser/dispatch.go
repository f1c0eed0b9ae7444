package parser

import (
	"strings"

	"github.com/jqhoogland/open-dictionary/internal/domain"
	"github.com/jqhoogland/open-dictionary/internal/wikitext"
)

type sectionKind int

const (
	kindDefault sectionKind = iota
	kindAltForms
	kindEtymology
	kindPronunciation
	kindDescription
	kindGlyphOrigin
	kindDefinitions
)

var kindByTitle = map[string]sectionKind{
	"alternative forms": kindAltForms,
	"etymology":         kindEtymology,
	"pronunciation":     kindPronunciation,
	"description":       kindDescription,
	"glyph origin":      kindGlyphOrigin,
}

func kindOf(title string) sectionKind {
	if k, ok := kindByTitle[domain.NormalizeTitle(title)]; ok {
		return k
	}
	if !domain.Classify(title).IsNone() {
		return kindDefinitions
	}
	return kindDefault
}

// dispatch routes a section to its handler. The value is one of
// []domain.AltForm, []domain.Record, [][]domain.Record, *domain.Prose or
// domain.Block depending on the kind.
func (st *state) dispatch(s *wikitext.Section) (sectionKind, any) {
	kind := kindOf(s.Title)
	switch kind {
	case kindAltForms:
		return kind, st.altForms(s)
	case kindEtymology:
		return kind, st.records(s.Body)
	case kindPronunciation:
		return kind, st.pronunciations(s)
	case kindDescription, kindGlyphOrigin:
		return kind, st.prose(s)
	case kindDefinitions:
		return kind, st.senseBlock(s, domain.BlockDefinitions)
	default:
		return kind, st.defaultBlock(s)
	}
}

var linkedWordIDs = []string{"link", "mention", "alternative_form"}

func (st *state) altForms(s *wikitext.Section) []domain.AltForm {
	var out []domain.AltForm
	for _, item := range wikitext.ListItems(s.Body) {
		recs := st.records(item.Text)
		form := domain.AltForm{Qualifiers: domain.FilterRecords(recs, "qualifier", "label")}
		if linked := domain.FilterRecords(recs, linkedWordIDs...); len(linked) > 0 {
			form.LinkedWord = linked[0]
		} else if txt := wikitext.PlainText(item.Text, nil); txt != "" {
			form.LinkedWord = domain.Record{domain.IDKey: "link", "lang": st.lang, "src": txt}
		}
		if form.LinkedWord == nil && len(form.Qualifiers) == 0 {
			continue
		}
		if form.Qualifiers == nil {
			form.Qualifiers = []domain.Record{}
		}
		out = append(out, form)
	}
	return out
}

func (st *state) pronunciations(s *wikitext.Section) [][]domain.Record {
	var out [][]domain.Record
	for _, item := range wikitext.ListItems(s.Body) {
		if recs := st.records(item.Text); len(recs) > 0 {
			out = append(out, recs)
		}
	}
	return out
}

func (st *state) prose(s *wikitext.Section) *domain.Prose {
	text := st.plain(s.Body)
	links := st.records(s.Body)
	if text == "" && len(links) == 0 {
		return nil
	}
	return &domain.Prose{Text: text, Links: links}
}

// defaultBlock keeps an unhandled section for diagnostics.
func (st *state) defaultBlock(s *wikitext.Section) domain.Block {
	cat := domain.Classify(s.Title)
	if cat.IsNone() {
		st.notices.Add(domain.NoticeClassificationMiss, s.Title, "")
	}
	st.notices.Add(domain.NoticeUnhandledSection, s.Title, "")

	b := domain.Block{
		ID:       domain.TitleID(s.Title),
		Kind:     domain.BlockSection,
		Title:    s.Title,
		Category: cat,
		Data:     strings.TrimSpace(s.Body),
	}
	if recs := st.records(s.Body); len(recs) > 0 {
		b.Linked = recs
	}
	for _, c := range s.Children {
		var sub domain.Block
		if kindOf(c.Title) == kindDefinitions {
			sub = st.senseBlock(c, domain.BlockDefinitions)
		} else {
			sub = st.defaultBlock(c)
		}
		if !sub.IsEmpty() {
			b.Subsections = append(b.Subsections, sub)
		}
	}
	return b
}

// records transforms every template in text, nested ones included. Templates
// without a rule are reported and skipped.
func (st *state) records(text string) []domain.Record {
	out := []domain.Record{}
	for _, t := range wikitext.ParseTemplates(text) {
		rec, ok := st.reg.Transform(t)
		if !ok {
			st.notices.Add(domain.NoticeUnmatchedTemplate, t.Name, "")
			continue
		}
		out = append(out, rec)
	}
	return out
}
