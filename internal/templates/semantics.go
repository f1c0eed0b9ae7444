package templates

var nymGroupRename = merge(commonRename, map[string]string{
	"":   "value",
	"q":  "qualifier",
	"qq": "post_qualifier",
	"g":  "gender",
})

func semanticRules() []Rule {
	qualifier := Derive(base,
		Tag("qualifier"),
		Aliases("qualifier", "qual", "i", "q", "qf"),
		Variadic(1, "qualifiers", direct),
	)
	label := Derive(base,
		Tag("label"),
		Aliases("label", "lb", "lbl"),
		Rename(map[string]string{"1": "lang"}),
		Variadic(2, "labels", direct),
	)
	gloss := Derive(base,
		Tag("gloss"),
		Aliases("gloss", "gl"),
		Rename(map[string]string{"1": "gloss"}),
	)
	sense := Derive(base,
		Tag("sense"),
		Aliases("sense", "s", "senseid", "senseno"),
		Rename(map[string]string{"1": "sense"}),
	)

	nym := Derive(base, Rename(map[string]string{"1": "lang"}))
	nymRule := func(tag string, aliases ...string) Rule {
		return Derive(nym, Tag(tag), Aliases(aliases...), Variadic(2, tag, nymGroupRename))
	}

	return []Rule{
		qualifier,
		label,
		gloss,
		sense,
		nymRule("synonyms", "synonyms", "syn"),
		nymRule("antonyms", "antonyms", "antonym", "ant"),
		nymRule("hypernyms", "hypernyms", "hypernym", "hyper"),
		nymRule("hyponyms", "hyponyms", "hyponym", "hypo"),
		nymRule("meronyms", "meronyms", "meronym", "mero"),
		nymRule("holonyms", "holonyms", "holonym", "holo"),
		nymRule("troponyms", "troponyms", "troponym", "tropo"),
		nymRule("coordinate_terms", "coordinate terms", "cot"),
		nymRule("collocations", "collocation", "coi", "co"),
	}
}
