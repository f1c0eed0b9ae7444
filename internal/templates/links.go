package templates

var linkRename = merge(commonRename, map[string]string{
	"1": "lang",
	"2": "src",
	"3": "alt",
	"4": "gloss",
	"g": "gender",
})

func linkRules() []Rule {
	link := Derive(base,
		Tag("link"),
		Aliases("l", "link", "l-self", "ll"),
		Rename(linkRename),
	)
	mention := Derive(link,
		Tag("mention"),
		Aliases("m", "mention", "m-self", "langname-mention"),
	)
	return []Rule{link, mention}
}
