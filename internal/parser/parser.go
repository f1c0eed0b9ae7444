// Package parser turns the wikitext of one page into dictionary entries for
// a requested language, one entry per etymology.
package parser

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jqhoogland/open-dictionary/internal/domain"
	"github.com/jqhoogland/open-dictionary/internal/lang"
	"github.com/jqhoogland/open-dictionary/internal/templates"
	"github.com/jqhoogland/open-dictionary/internal/wikitext"
)

// Result is the outcome of parsing one page for one language.
type Result struct {
	Entries []domain.Entry  `json:"entries"`
	Notices []domain.Notice `json:"notices"`
}

// Parser is stateless and safe for concurrent use.
type Parser struct {
	log   *slog.Logger
	langs *lang.Table
	reg   *templates.Registry
}

// New creates a Parser. Nil langs or reg fall back to the built-in tables.
func New(logger *slog.Logger, langs *lang.Table, reg *templates.Registry) *Parser {
	if langs == nil {
		langs = lang.Default()
	}
	if reg == nil {
		reg = templates.Default()
	}
	return &Parser{
		log:   logger.With("component", "parser"),
		langs: langs,
		reg:   reg,
	}
}

// Languages returns the language table the parser resolves codes with.
func (p *Parser) Languages() *lang.Table { return p.langs }

// Parse extracts the entries of word for langCode from the page text.
// It fails only when langCode is unknown (ErrValidation) or the page has no
// section for the language (*domain.LanguageNotFoundError). Every other
// irregularity is reported through Result.Notices.
func (p *Parser) Parse(word, text, langCode string) (*Result, error) {
	name, err := p.langs.Name(langCode)
	if err != nil {
		return nil, domain.NewValidationError("lang", err.Error())
	}
	code, err := p.langs.Code(name)
	if err != nil {
		return nil, fmt.Errorf("parser: resolve code: %w", err)
	}

	st := &state{reg: p.reg, lang: code}
	root := wikitext.ParseSections(text)

	lists, err := segment(root, name, &st.notices)
	if err != nil {
		var lnf *domain.LanguageNotFoundError
		if errors.As(err, &lnf) {
			lnf.Word, lnf.Code = word, code
		}
		return nil, err
	}

	entries := make([]domain.Entry, 0, len(lists))
	for _, sections := range lists {
		entries = append(entries, st.assemble(word, sections))
	}

	notices := st.notices.List()
	if notices == nil {
		notices = []domain.Notice{}
	}
	p.log.Debug("page parsed",
		slog.String("word", word),
		slog.String("lang", code),
		slog.Int("entries", len(entries)),
		slog.Int("notices", len(notices)),
	)
	return &Result{Entries: entries, Notices: notices}, nil
}

// state is the per-call context shared by the section handlers.
type state struct {
	reg     *templates.Registry
	lang    string
	notices domain.Notices
}
