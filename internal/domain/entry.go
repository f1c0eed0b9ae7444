package domain

import "encoding/json"

// Entry is the structured record for one word, one language and one etymology.
type Entry struct {
	Word             string     `json:"word"`
	LanguageCode     string     `json:"languageCode"`
	AlternativeForms []AltForm  `json:"alternativeForms"`
	Etymology        []Record   `json:"etymology"`
	Pronunciations   [][]Record `json:"pronunciations"`
	Description      *Prose     `json:"description"`
	GlyphOrigin      *Prose     `json:"glyphOrigin"`
	Definitions      []Block    `json:"definitions"`
}

// AltForm is one line of an "Alternative forms" section.
type AltForm struct {
	LinkedWord Record   `json:"linkedWord"`
	Qualifiers []Record `json:"qualifiers"`
}

// Prose is a free-text section rendered as plain text.
type Prose struct {
	Text  string   `json:"text"`
	Links []Record `json:"links"`
}

// BlockKind tells the shape of a Block.
type BlockKind string

const (
	// BlockDefinitions is a classified heading such as "Noun".
	BlockDefinitions BlockKind = "definitions"
	// BlockSenses is an unclassified subsection of a definitions block.
	BlockSenses BlockKind = "senses"
	// BlockSection is the default, diagnostic rendering of a section.
	BlockSection BlockKind = "section"
)

// Block is one element of Entry.Definitions.
type Block struct {
	ID       string    `json:"@id"`
	Kind     BlockKind `json:"kind"`
	Title    string    `json:"title"`
	Category Category  `json:"category"`

	Headline string   `json:"headline,omitempty"`
	Head     []Record `json:"head,omitempty"`
	Senses   []Gloss  `json:"senses,omitempty"`

	// Linked and Data are always present on BlockSection blocks.
	Linked []Record `json:"linked,omitempty"`
	Data   string   `json:"data,omitempty"`

	Subsections []Block `json:"subsections,omitempty"`
}

func (b Block) MarshalJSON() ([]byte, error) {
	type plain Block
	if b.Kind != BlockSection {
		return json.Marshal(plain(b))
	}
	linked := b.Linked
	if linked == nil {
		linked = []Record{}
	}
	return json.Marshal(struct {
		plain
		Linked []Record `json:"linked"`
		Data   string   `json:"data"`
	}{plain(b), linked, b.Data})
}

// IsEmpty reports whether the block carries no content.
func (b Block) IsEmpty() bool {
	return b.Headline == "" && len(b.Head) == 0 && len(b.Senses) == 0 &&
		len(b.Linked) == 0 && b.Data == "" && len(b.Subsections) == 0
}

// Gloss is one numbered sense line.
type Gloss struct {
	Text      string   `json:"text"`
	Links     []Record `json:"links"`
	Examples  []Gloss  `json:"examples,omitempty"`
	Subsenses []Gloss  `json:"subsenses,omitempty"`
}
