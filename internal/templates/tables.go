package templates

// commonIgnore lists formatting and categorization arguments that never
// carry content.
var commonIgnore = []string{
	"accel", "nocap", "notext", "nocat", "sort",
	"accel-form", "accel-translit", "accel-lemma", "accel-lemma-translit",
	"accel-gender", "accel-nostore",
}

var commonRename = map[string]string{
	"lang":  "lang",
	"alt":   "alt",
	"t":     "gloss",
	"gloss": "gloss",
	"sc":    "script",
	"tr":    "transliteration",
	"ts":    "transcription",
	"pos":   "part_of_speech",
	"lit":   "literal_translation",
	"id":    "sense",
}

// CompoundTypes expands the "type" argument of compound templates.
var CompoundTypes = map[string]string{
	"allit": "alliterative",
	"ant":   "antonymous",
	"bahu":  "bahuvrihi",
	"bv":    "bahuvrihi",
	"coord": "coordinative",
	"desc":  "descriptive",
	"det":   "determinative",
	"dva":   "dvandva",
	"endo":  "endocentric",
	"exo":   "exocentric",
	"karma": "karmadharaya",
	"kd":    "karmadharaya",
	"rhy":   "rhyming",
	"syn":   "synonymous",
	"tat":   "tatpurusa",
	"tp":    "tatpurusa",
}

// AbbreviatedPOS expands part-of-speech abbreviations used by headword templates.
var AbbreviatedPOS = map[string]string{
	"adj":         "Adjective",
	"adv":         "Adverb",
	"con":         "Conjunction",
	"det":         "Determiner",
	"interj":      "Interjection",
	"noun":        "Noun",
	"num":         "Numeral",
	"part":        "Particle",
	"postp":       "Postposition",
	"prep":        "Preposition",
	"pron":        "Pronoun",
	"proper noun": "Proper noun",
	"verb":        "Verb",
}

// base is the prototype every built-in rule derives from.
var base = NewRule(
	Ignore(commonIgnore...),
	Rename(commonRename),
)
