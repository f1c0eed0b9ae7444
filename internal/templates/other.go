package templates

func otherRules() []Rule {
	anagram := Derive(base,
		Tag("anagram"),
		Aliases("anagrams", "anagram"),
		Rename(map[string]string{"1": "lang", "a": "alphagram"}),
		Variadic(2, "anagrams", direct),
	)
	def := Derive(base,
		Tag("def"),
		Aliases("non-gloss definition", "non-gloss", "n-g", "ngd"),
		Rename(map[string]string{"1": "value"}),
	)
	alter := Derive(base,
		Tag("alternative_form"),
		Aliases("alter", "alt"),
		Rename(map[string]string{"1": "lang"}),
		Variadic(2, "forms", direct),
	)
	return []Rule{anagram, def, alter}
}

func fallbackRules() []Rule {
	transcription := Derive(base,
		Tag("transcription"),
		Aliases("pronunciation spelling of"),
		WithRename(map[string]string{"1": "lang", "2": "word", "3": "alt"}),
	)
	return []Rule{transcription}
}
