package templates

// creatorRename holds the bibliographic arguments shared by quote-* templates.
var creatorRename = map[string]string{
	"1":           "langs",
	"author":      "author",
	"last":        "last",
	"first":       "first",
	"authorlink":  "author_url",
	"coauthors":   "coauthors",
	"title":       "title",
	"trans-title": "trans_title",
	"url":         "url",
	"urls":        "urls",
	"archiveurl":  "archive_url",
	"archivedate": "archive_date",
	"accessdate":  "access_date",
	"format":      "format",
	"publisher":   "publisher",
	"year":        "year",
	"month":       "month",
	"date":        "date",
	"location":    "location",
	"text":        "text",
	"passage":     "passage",
	"worklang":    "work_lang",
	"termlang":    "term_lang",
	"t":           "gloss",
	"translation": "gloss",
	"footer":      "footer",
}

// writtenRename holds locators of printed works.
var writtenRename = map[string]string{
	"quotee":    "quotee",
	"line":      "line",
	"lines":     "lines",
	"page":      "page",
	"pages":     "pages",
	"pageurl":   "page_url",
	"column":    "column",
	"columns":   "columns",
	"columnurl": "column_url",
	"isbn":      "isbn",
	"issn":      "issn",
	"lccn":      "lccn",
	"oclc":      "oclc",
}

var bookRename = map[string]string{
	"2":             "date",
	"3":             "author",
	"4":             "title",
	"5":             "url",
	"6":             "page",
	"7":             "passage",
	"8":             "gloss",
	"mainauthor":    "main_author",
	"trans":         "translators",
	"translator":    "translators",
	"translators":   "translators",
	"editor":        "editors",
	"editors":       "editors",
	"chapter":       "chapter",
	"entry":         "entry",
	"trans-chapter": "trans_chapter",
	"chapterurl":    "chapter_url",
	"series":        "series",
	"seriesvolume":  "series_volume",
	"edition":       "edition",
	"origdate":      "orig_date",
	"origyear":      "orig_year",
	"volume":        "volume",
	"issue":         "issue",
	"number":        "number",
	"section":       "section",
	"doi":           "doi",
	"newversion":    "new_version",
	"2ndauthor":     "second_author",
}

var quoteTransforms = map[string]FieldTransform{
	"langs":       SplitOn(","),
	"coauthors":   SplitOn(";"),
	"translators": SplitOn(";"),
	"editors":     SplitOn(";"),
}

func sentenceRules() []Rule {
	example := Derive(base,
		Tag("example"),
		Aliases("ux", "eg", "uxi"),
		WithRename(map[string]string{
			"1":  "lang",
			"2":  "value",
			"3":  "gloss",
			"4":  "transliteration",
			"q":  "qualifier",
			"qq": "post_qualifier",
		}),
		Ignore("inline", "noenum", "nocat", "sort"),
	)
	quote := Derive(example,
		Aliases("quote", "q"),
		Extras(map[string]any{"subtype": "quote"}),
	)
	sourced := Derive(quote,
		Aliases("blockquote", "sourced-quote", "sourcedq"),
		Rename(map[string]string{"1": "text", "2": "author", "3": "title"}),
	)

	book := Derive(quote,
		Aliases("quote-book", "cite-book"),
		Rename(merge(commonRename, creatorRename, writtenRename, bookRename)),
		Transforms(quoteTransforms),
		WithIgnore("brackets", "indent"),
		Extras(map[string]any{"subtype": "quote", "source": "book"}),
	)
	journal := Derive(book,
		Aliases("quote-journal", "cite-journal"),
		WithRename(map[string]string{"4": "title", "5": "journal", "journal": "journal", "work": "journal"}),
		Extras(map[string]any{"subtype": "quote", "source": "journal"}),
	)
	web := Derive(book,
		Aliases("quote-web", "cite-web"),
		WithRename(map[string]string{"site": "site", "work": "site"}),
		Extras(map[string]any{"subtype": "quote", "source": "web"}),
	)
	av := Derive(book,
		Aliases("quote-av"),
		Rename(merge(commonRename, creatorRename, map[string]string{
			"director":      "directors",
			"directors":     "directors",
			"actor":         "actors",
			"role":          "roles",
			"roles":         "roles",
			"speaker":       "speaker",
			"episode":       "episode",
			"trans-episode": "trans_episode",
			"medium":        "medium",
			"season":        "season",
			"number":        "episode_number",
			"network":       "network",
			"time":          "time",
			"at":            "at",
		})),
		Extras(map[string]any{"subtype": "quote", "source": "av"}),
	)
	hansard := Derive(book,
		Aliases("quote-hansard"),
		Rename(merge(commonRename, creatorRename, writtenRename, map[string]string{
			"speaker": "speaker",
			"report":  "report",
			"house":   "house",
		})),
		Extras(map[string]any{"subtype": "quote", "source": "hansard"}),
	)
	cite := Derive(av,
		Tag("cite"),
		Aliases("cite-av"),
		WithRename(map[string]string{"text_block": "text_block", "passage_block": "passage_block"}),
	)

	return []Rule{quote, example, sourced, book, journal, web, av, hansard, cite}
}
