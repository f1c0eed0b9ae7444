package templates

// englishHeads maps en-* headword templates to the part of speech they introduce.
var englishHeads = []struct {
	pos     string
	aliases []string
}{
	{"Noun", []string{"en-noun"}},
	{"Proper noun", []string{"en-proper noun", "en-prop", "en-proper-noun"}},
	{"Verb", []string{"en-verb"}},
	{"Adjective", []string{"en-adj", "en-adjective"}},
	{"Adverb", []string{"en-adv", "en-adverb"}},
	{"Pronoun", []string{"en-pron", "en-pronoun"}},
	{"Preposition", []string{"en-prep", "en-preposition"}},
	{"Conjunction", []string{"en-con", "en-conj", "en-conjunction"}},
	{"Interjection", []string{"en-interj", "en-intj", "en-interjection"}},
	{"Determiner", []string{"en-det"}},
	{"Numeral", []string{"en-num"}},
	{"Phrase", []string{"en-phrase"}},
	{"Prefix", []string{"en-prefix"}},
	{"Suffix", []string{"en-suffix"}},
}

func headwordRules() []Rule {
	head := Derive(base,
		Tag("headword"),
		Aliases("head", "head-lite"),
		WithRename(map[string]string{"1": "lang", "2": "part_of_speech", "head": "headword"}),
		Variadic(3, "inflections", direct),
		Transforms(map[string]FieldTransform{"part_of_speech": LookupIn(AbbreviatedPOS)}),
	)

	english := Derive(base,
		Tag("headword"),
		WithRename(map[string]string{"head": "headword"}),
		Variadic(1, "forms", direct),
	)

	out := []Rule{head}
	for _, h := range englishHeads {
		out = append(out, Derive(english,
			Aliases(h.aliases...),
			Extras(map[string]any{"lang": "en", "part_of_speech": h.pos}),
		))
	}
	return out
}
