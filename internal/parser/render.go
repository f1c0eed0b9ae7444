package parser

import (
	"fmt"
	"strings"

	"github.com/jqhoogland/open-dictionary/internal/wikitext"
)

// textKeys are the record fields whose value stands in for a template in
// running text, in order of preference.
var textKeys = []string{"alt", "src", "word", "value"}

func (st *state) plain(text string) string {
	return wikitext.PlainText(text, st.renderTemplate)
}

func (st *state) renderTemplate(t wikitext.Template) string {
	rec, ok := st.reg.Transform(t)
	if !ok {
		return ""
	}
	switch rec.ID() {
	case "gloss":
		if g := rec.String("gloss"); g != "" {
			return "(" + g + ")"
		}
		return ""
	case "qualifier":
		return parenthesize(rec["qualifiers"])
	case "label":
		return parenthesize(rec["labels"])
	}
	for _, k := range textKeys {
		if s := rec.String(k); s != "" {
			return wikitext.PlainText(s, st.renderTemplate)
		}
	}
	return ""
}

func parenthesize(v any) string {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return ""
	}
	parts := make([]string, 0, len(list))
	for _, el := range list {
		switch e := el.(type) {
		case string:
			parts = append(parts, e)
		case map[string]any:
			parts = append(parts, fmt.Sprint(e["value"]))
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
