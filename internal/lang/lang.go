// Package lang maps Wiktionary language codes to the headings used for
// them on entry pages, and back.
package lang

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

//go:embed languages.yaml
var languagesYAML []byte

// ErrUnknownLanguage is returned for codes or names missing from the table.
var ErrUnknownLanguage = errors.New("unknown language")

// Table is a bidirectional code/name lookup. Lookups are case-insensitive.
// A Table is read-only after construction.
type Table struct {
	byCode map[string]string // folded code -> display name
	byName map[string]string // folded name -> code
}

// Default returns the table built from the embedded language list.
var Default = sync.OnceValue(func() *Table {
	t, err := Parse(languagesYAML)
	if err != nil {
		panic(fmt.Sprintf("lang: embedded table: %v", err))
	}
	return t
})

// Parse builds a Table from a YAML mapping of code to name.
func Parse(data []byte) (*Table, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("lang: decode: %w", err)
	}
	return New(raw)
}

// New builds a Table from a code to name mapping.
func New(codes map[string]string) (*Table, error) {
	t := &Table{
		byCode: make(map[string]string, len(codes)),
		byName: make(map[string]string, len(codes)),
	}
	for code, name := range codes {
		code, name = strings.TrimSpace(code), strings.TrimSpace(name)
		if code == "" || name == "" {
			return nil, fmt.Errorf("lang: empty code or name (%q: %q)", code, name)
		}
		fn := fold(name)
		if prev, dup := t.byName[fn]; dup {
			return nil, fmt.Errorf("lang: name %q used by %q and %q", name, prev, code)
		}
		t.byCode[fold(code)] = name
		t.byName[fn] = code
	}
	return t, nil
}

// Name returns the heading name for code, e.g. "nl" -> "Dutch".
func (t *Table) Name(code string) (string, error) {
	name, ok := t.byCode[fold(code)]
	if !ok {
		return "", fmt.Errorf("%w: code %q", ErrUnknownLanguage, code)
	}
	return name, nil
}

// Code returns the code for a heading name, e.g. "dutch" -> "nl".
func (t *Table) Code(name string) (string, error) {
	code, ok := t.byName[fold(name)]
	if !ok {
		return "", fmt.Errorf("%w: name %q", ErrUnknownLanguage, name)
	}
	return code, nil
}

// Len returns the number of languages.
func (t *Table) Len() int { return len(t.byCode) }

// fold builds a fresh Caser per call; Casers are not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
