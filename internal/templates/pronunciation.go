package templates

// direct stores bare positional group values as plain strings.
var direct = map[string]string{"": ""}

func pronunciationRules() []Rule {
	dialect := Derive(base,
		Tag("dialect"),
		Aliases("accent", "a"),
		Variadic(1, "dialects", direct),
	)
	ipa := Derive(base,
		Tag("ipa"),
		Aliases("IPA"),
		Rename(map[string]string{"1": "lang"}),
		Variadic(2, "transcriptions", map[string]string{
			"":    "ipa",
			"a":   "accent",
			"q":   "qualifier",
			"qq":  "post_qualifier",
			"ref": "ref",
		}),
	)
	audio := Derive(base,
		Tag("audio"),
		Aliases("audio"),
		Rename(map[string]string{
			"1": "lang",
			"2": "file",
			"3": "caption",
			"a": "accent",
		}),
	)
	rhymes := Derive(base,
		Tag("rhymes"),
		Aliases("rhymes", "rhyme"),
		Rename(map[string]string{"1": "lang"}),
		Variadic(2, "rhymes", map[string]string{"": "rhyme", "s": "syllables"}),
	)
	homophones := Derive(base,
		Tag("homophone"),
		Aliases("homophones", "homophone", "hmp"),
		Rename(map[string]string{"1": "lang"}),
		Variadic(2, "homophones", merge(commonRename, map[string]string{
			"":   "value",
			"q":  "qualifier",
			"qq": "post_qualifier",
		})),
	)
	hyphenation := Derive(base,
		Tag("hyphenation"),
		Aliases("hyphenation", "hyph"),
		Rename(map[string]string{"1": "lang"}),
		Variadic(2, "syllables", direct),
	)
	return []Rule{dialect, ipa, audio, rhymes, homophones, hyphenation}
}
