package domain

import (
	"encoding/json"
	"fmt"
)

// Category is the class of a section heading. CategoryNone serializes as null.
type Category string

const (
	CategoryNone         Category = ""
	CategoryPartOfSpeech Category = "partOfSpeech"
	CategoryMorpheme     Category = "morpheme"
	CategorySymbol       Category = "symbol"
	CategoryPhrase       Category = "phrase"
	CategoryHan          Category = "han"
	CategoryOther        Category = "other"
)

func (c Category) String() string { return string(c) }

// IsNone reports whether the heading matched no category.
func (c Category) IsNone() bool { return c == CategoryNone }

func (c Category) MarshalJSON() ([]byte, error) {
	if c == CategoryNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(c))
}

func (c *Category) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = CategoryNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	*c = Category(s)
	return nil
}

// Heading sets per category. The sets are disjoint.
var (
	partOfSpeechHeadings = []string{
		"Adjective", "Adverb", "Ambiposition", "Article", "Circumposition",
		"Classifier", "Conjunction", "Contraction", "Counter", "Determiner",
		"Ideophone", "Interjection", "Noun", "Numeral", "Participle",
		"Particle", "Postposition", "Preposition", "Pronoun", "Proper noun", "Verb",
	}
	morphemeHeadings = []string{
		"Affix", "Circumfix", "Combining form", "Infix", "Interfix", "Prefix", "Root", "Suffix",
	}
	symbolHeadings = []string{
		"Diacritical mark", "Letter", "Ligature", "Number", "Punctuation mark", "Syllable", "Symbol",
	}
	phraseHeadings = []string{"Idiom", "Phrase", "Prepositional phrase", "Proverb"}
	hanHeadings    = []string{"Han character", "Hanzi", "Kanji", "Hanja"}
	otherHeadings  = []string{"Romanization", "Logogram", "Determinative"}
)

// categoryByTitle maps a normalized heading to its category. Read-only after init.
var categoryByTitle = buildCategoryTable()

func buildCategoryTable() map[string]Category {
	groups := []struct {
		cat    Category
		titles []string
	}{
		{CategoryPartOfSpeech, partOfSpeechHeadings},
		{CategoryMorpheme, morphemeHeadings},
		{CategorySymbol, symbolHeadings},
		{CategoryPhrase, phraseHeadings},
		{CategoryHan, hanHeadings},
		{CategoryOther, otherHeadings},
	}
	out := make(map[string]Category)
	for _, g := range groups {
		for _, t := range g.titles {
			key := NormalizeTitle(t)
			if prev, dup := out[key]; dup {
				panic(fmt.Sprintf("domain: heading %q in both %s and %s", t, prev, g.cat))
			}
			out[key] = g.cat
		}
	}
	return out
}

// Classify returns the category of a section heading, or CategoryNone.
func Classify(title string) Category {
	return categoryByTitle[NormalizeTitle(title)]
}
