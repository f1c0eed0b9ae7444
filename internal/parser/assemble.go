package parser

import (
	"github.com/jqhoogland/open-dictionary/internal/domain"
	"github.com/jqhoogland/open-dictionary/internal/wikitext"
)

// assemble merges the dispatched sections of one etymology into an Entry.
// List slots concatenate in section order; prose slots keep the last value.
func (st *state) assemble(word string, sections []*wikitext.Section) domain.Entry {
	e := domain.Entry{
		Word:             word,
		LanguageCode:     st.lang,
		AlternativeForms: []domain.AltForm{},
		Etymology:        []domain.Record{},
		Pronunciations:   [][]domain.Record{},
		Definitions:      []domain.Block{},
	}

	for _, s := range sections {
		kind, v := st.dispatch(s)
		switch kind {
		case kindAltForms:
			e.AlternativeForms = append(e.AlternativeForms, v.([]domain.AltForm)...)
		case kindEtymology:
			e.Etymology = append(e.Etymology, v.([]domain.Record)...)
		case kindPronunciation:
			e.Pronunciations = append(e.Pronunciations, v.([][]domain.Record)...)
		case kindDescription:
			if p := v.(*domain.Prose); p != nil {
				e.Description = p
			}
		case kindGlyphOrigin:
			if p := v.(*domain.Prose); p != nil {
				e.GlyphOrigin = p
			}
		default:
			if b := v.(domain.Block); !b.IsEmpty() {
				e.Definitions = append(e.Definitions, b)
			}
		}
	}
	return e
}
