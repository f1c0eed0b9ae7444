package templates

// derivationRename covers {{der|en|la|word|alt|gloss}}-shaped templates.
var derivationRename = merge(commonRename, map[string]string{
	"1": "lang",
	"2": "src_lang",
	"3": "src",
	"4": "alt",
	"5": "gloss",
	"g": "gender",
})

// wordRename covers {{clipping of|en|word|alt|gloss}}-shaped templates.
var wordRename = merge(commonRename, map[string]string{
	"1": "lang",
	"2": "word",
	"3": "alt",
	"4": "gloss",
	"g": "gender",
})

var morphemeRename = merge(commonRename, map[string]string{
	"":  "value",
	"g": "gender",
})

func etymologyRules() []Rule {
	derived := Derive(base,
		Tag("derived"),
		Aliases("derived", "der", "der+"),
		Rename(derivationRename),
	)
	inherited := Derive(derived, Tag("inherited"), Aliases("inherited", "inh", "inh+"))
	borrowed := Derive(derived, Tag("borrowed"), Aliases("borrowed", "bor", "bor+"))
	learned := Derive(borrowed, Tag("learned_borrowing"), Aliases("learned borrowing", "lbor", "lbor+"))
	semiLearned := Derive(borrowed, Tag("semi_learned_borrowing"), Aliases("semi-learned borrowing", "slbor", "slbor+"))
	orthographic := Derive(borrowed, Tag("orthographic_borrowing"), Aliases("orthographic borrowing", "obor", "obor+"))

	root := Derive(base,
		Tag("root"),
		Aliases("root"),
		Rename(map[string]string{"1": "lang", "2": "src_lang"}),
		Variadic(3, "roots", morphemeRename),
	)

	compound := Derive(base,
		Tag("compound"),
		Aliases("compound", "com"),
		WithRename(map[string]string{"1": "lang", "type": "compound_type"}),
		Variadic(2, "morphemes", morphemeRename),
		Transforms(map[string]FieldTransform{"compound_type": LookupIn(CompoundTypes)}),
	)
	subtype := func(name string, aliases ...string) Rule {
		return Derive(compound, Aliases(aliases...), Extras(map[string]any{"subtype": name}))
	}

	clipping := Derive(base,
		Tag("clipping"),
		Aliases("clipping of", "clipping"),
		Rename(wordRename),
	)
	shortFor := Derive(clipping,
		Tag("short_for"),
		Aliases("short for", "clipping"),
		WithIgnore("nodot", "dot"),
	)
	backFormation := Derive(clipping, Tag("back_formation"), Aliases("back-formation", "back-form", "bf"))

	doublet := Derive(base,
		Tag("doublet"),
		Aliases("doublet", "dbt"),
		Rename(map[string]string{"1": "lang"}),
		Variadic(2, "doublets", morphemeRename),
	)
	piecewise := Derive(doublet,
		Aliases("piecewise doublet"),
		Extras(map[string]any{"subtype": "piecewise"}),
	)

	onomatopoeic := Derive(base,
		Tag("onomatopoeic"),
		Aliases("onomatopoeic", "onom"),
		Rename(map[string]string{"1": "lang", "title": "alt"}),
	)

	calque := Derive(base,
		Tag("calque"),
		Aliases("calque", "cal", "clq"),
		Rename(derivationRename),
	)
	semanticLoan := Derive(calque,
		Aliases("semantic loan", "sl"),
		Extras(map[string]any{"subtype": "semantic_loan"}),
	)
	psm := Derive(calque,
		Aliases("phono-semantic matching", "psm"),
		Extras(map[string]any{"subtype": "phono_semantic_matching"}),
	)

	eponym := Derive(base,
		Tag("eponym"),
		Aliases("named-after"),
		WithRename(map[string]string{
			"1":      "lang",
			"2":      "person",
			"nat":    "nationality",
			"occ":    "occupation",
			"wplink": "wikipedia_link",
		}),
	)

	cognate := Derive(base,
		Tag("cognate"),
		Aliases("cognate", "cog"),
		Rename(wordRename),
	)
	noncognate := Derive(cognate, Tag("noncognate"), Aliases("noncognate", "noncog", "ncog", "nc"))

	rfe := Derive(base,
		Tag("rfe"),
		Aliases("rfe", "etystub"),
		Rename(map[string]string{"1": "lang", "2": "comment"}),
		WithIgnore("y", "m", "fragment", "section", "box", "noes"),
	)
	unknown := Derive(base,
		Tag("unknown"),
		Aliases("unknown", "unk"),
		Rename(map[string]string{"1": "lang", "title": "alt"}),
	)

	return []Rule{
		derived,
		inherited,
		borrowed,
		learned,
		semiLearned,
		orthographic,
		root,
		compound,
		subtype("prefix", "prefix", "pre"),
		subtype("confix", "confix", "con"),
		subtype("suffix", "suffix", "suf"),
		subtype("affix", "affix", "af"),
		subtype("blend", "blend"),
		subtype("interfix", "interfix", "inter"),
		clipping,
		shortFor,
		backFormation,
		doublet,
		piecewise,
		onomatopoeic,
		calque,
		semanticLoan,
		psm,
		eponym,
		cognate,
		noncognate,
		rfe,
		unknown,
	}
}
