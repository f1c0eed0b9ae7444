package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText prepares text for storage and comparison:
//   - applies Unicode NFC composition
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses runs of whitespace into one space
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = norm.NFC.String(strings.ToLower(text))
	return strings.Join(strings.Fields(text), " ")
}

// NormalizeTitle normalizes a section heading for handler and category lookup.
func NormalizeTitle(title string) string {
	return NormalizeText(title)
}

// TitleID turns a section heading into a record id: "Proper noun" -> "proper_noun".
func TitleID(title string) string {
	return strings.ReplaceAll(NormalizeTitle(title), " ", "_")
}

// NormalizeWord prepares a page title for cache keys. Wiki titles are
// case-sensitive, so only whitespace and composition are normalized.
func NormalizeWord(word string) string {
	word = norm.NFC.String(strings.TrimSpace(word))
	return strings.Join(strings.Fields(word), " ")
}
