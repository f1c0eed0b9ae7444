package templates

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jqhoogland/open-dictionary/internal/domain"
	"github.com/jqhoogland/open-dictionary/internal/wikitext"
)

func parseOne(t *testing.T, text string) wikitext.Template {
	t.Helper()
	ts := wikitext.ParseTemplates(text)
	require.Len(t, ts, 1, "expected one template in %q", text)
	return ts[0]
}

func transform(t *testing.T, text string) domain.Record {
	t.Helper()
	rec, ok := Default().Transform(parseOne(t, text))
	require.True(t, ok, "no rule for %q", text)
	return rec
}

func TestTransform_Affix(t *testing.T) {
	t.Parallel()

	got := transform(t, "{{affix|nl|huis|-je|pos2=diminutive}}")

	want := domain.Record{
		"@id":     "compound",
		"subtype": "affix",
		"lang":    "nl",
		"morphemes": []any{
			map[string]any{"value": "huis"},
			map[string]any{"value": "-je", "part_of_speech": "diminutive"},
		},
	}
	assert.Equal(t, want, got)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"@id":"compound","subtype":"affix","lang":"nl","morphemes":[{"value":"huis"},{"value":"-je","part_of_speech":"diminutive"}]}`,
		string(data))
}

func TestTransform_Mention(t *testing.T) {
	t.Parallel()

	got := transform(t, "{{m|en|hello|t=a standard greeting}}")

	assert.Equal(t, domain.Record{
		"@id":   "mention",
		"lang":  "en",
		"src":   "hello",
		"gloss": "a standard greeting",
	}, got)
}

func TestTransform_VariadicEncodingInvariance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
	}{
		{"positional vs value2", "{{affix|en|un|happy}}", "{{affix|en|un|value2=happy}}"},
		{"argument order", "{{affix|en|pos2=adj|un|happy}}", "{{affix|en|un|happy|pos2=adj}}"},
		{"explicit index", "{{affix|en|un|happy}}", "{{affix|en|3=happy|2=un}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, transform(t, tt.a), transform(t, tt.b))
		})
	}
}

func TestTransform_DirectGroupValues(t *testing.T) {
	t.Parallel()

	got := transform(t, "{{lb|en|informal|slang}}")
	assert.Equal(t, domain.Record{
		"@id":    "label",
		"lang":   "en",
		"labels": []any{"informal", "slang"},
	}, got)

	// A named field on a direct element promotes it to a map.
	got = transform(t, "{{q|rare|q1=x}}")
	assert.Equal(t, []any{map[string]any{"value": "rare", "q": "x"}}, got["qualifiers"])
}

func TestTransform_GroupsSortedWithGaps(t *testing.T) {
	t.Parallel()

	got := transform(t, "{{syn|en|a|q3=archaic|||tr1=x}}")
	assert.Equal(t, []any{
		map[string]any{"value": "a", "transliteration": "x"},
		map[string]any{"value": ""},
		map[string]any{"value": "", "qualifier": "archaic"},
	}, got["synonyms"])
}

func TestTransform_IgnoreAndEmpty(t *testing.T) {
	t.Parallel()

	got := transform(t, "{{l|en|word||gloss here|sort=w|nocat=1}}")
	assert.Equal(t, domain.Record{
		"@id":   "link",
		"lang":  "en",
		"src":   "word",
		"alt":   "",
		"gloss": "gloss here",
	}, got)
}

func TestTransform_EmptyValuesKept(t *testing.T) {
	t.Parallel()

	got := transform(t, "{{m|en|hello|t=}}")
	assert.Equal(t, domain.Record{
		"@id":   "mention",
		"lang":  "en",
		"src":   "hello",
		"gloss": "",
	}, got)

	got = transform(t, "{{affix|en|a||c}}")
	assert.Equal(t, []any{
		map[string]any{"value": "a"},
		map[string]any{"value": ""},
		map[string]any{"value": "c"},
	}, got["morphemes"])
}

func TestTransform_FieldTransforms(t *testing.T) {
	t.Parallel()

	got := transform(t, "{{compound|sa|a|b|type=bv}}")
	assert.Equal(t, "bahuvrihi", got["compound_type"])

	got = transform(t, "{{quote-book|en,fro|1605|coauthors=A; B|translators=C|title=T}}")
	assert.Equal(t, []string{"en", "fro"}, got["langs"])
	assert.Equal(t, []string{"A", "B"}, got["coauthors"])
	assert.Equal(t, []string{"C"}, got["translators"])
	assert.Equal(t, "1605", got["date"])
	assert.Equal(t, "book", got["source"])
	assert.Equal(t, "example", got.ID())

	got = transform(t, "{{head|en|adj|comparative|nicer}}")
	assert.Equal(t, "Adjective", got["part_of_speech"])
	assert.Equal(t, []any{"comparative", "nicer"}, got["inflections"])
}

func TestTransform_ExtrasOverrideComputed(t *testing.T) {
	t.Parallel()

	got := transform(t, "{{affix|en|a|b|subtype=other}}")
	assert.Equal(t, "affix", got["subtype"])
}

func TestTransform_TotalOverAllRules(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"", "|", "||||", "|a|b|c|d|e|f|g|h", "|1=|2=", "|x1=|y22=z|0=|q0=a",
		"|{{nested|a}}|[[link|x]]", "|=v|k=", "|t=a|t1=b|t99=c", "|5=five|2=two",
	}

	for _, rule := range Default().Rules() {
		for _, alias := range rule.Aliases() {
			for _, in := range inputs {
				tpl := wikitext.ParseTemplates("{{" + alias + in + "}}")[0]
				rec := rule.Transform(tpl)
				if rec.ID() != rule.Tag() {
					t.Fatalf("%s%s: @id = %q, want %q", alias, in, rec.ID(), rule.Tag())
				}
				if _, err := json.Marshal(rec); err != nil {
					t.Fatalf("%s%s: not serializable: %v", alias, in, err)
				}
			}
		}
	}
}

func TestFieldTransforms_WrongShape(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 42, SplitOn(",")(42))
	assert.Equal(t, []string{"x"}, LookupIn(CompoundTypes)([]string{"x"}))
}
