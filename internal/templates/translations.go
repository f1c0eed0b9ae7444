package templates

func translationRules() []Rule {
	translation := Derive(base,
		Tag("translation"),
		Aliases("translation", "t", "t-check", "t+", "t+check", "tt", "tt+", "tt+check", "tt-check"),
		WithRename(map[string]string{"1": "lang", "2": "word"}),
		Variadic(3, "genders", direct),
	)
	noEquivalent := Derive(translation,
		Aliases("no equivalent translation"),
		Extras(map[string]any{"subtype": "no_equivalent_translation"}),
	)
	notUsed := Derive(translation,
		Aliases("not used"),
		Extras(map[string]any{"subtype": "not_used"}),
	)
	section := Derive(base,
		Tag("translation_section"),
		Aliases("trans-top", "checktrans-top", "trans-top-also"),
		Rename(map[string]string{"1": "gloss", "id": "sense"}),
	)
	return []Rule{translation, noEquivalent, notUsed, section}
}
