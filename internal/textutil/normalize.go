package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

var foldCaser = cases.Fold()

// Fold lowercases a string using Unicode case folding so that comparisons
// behave the same for "HECK", "Heck", and "heck" in any script.
func Fold(value string) string {
	return foldCaser.String(strings.TrimSpace(value))
}

// NormalizeWord prepares a transcript word for matching: surrounding
// whitespace and punctuation are stripped, then the remainder is case folded.
// Interior punctuation (apostrophes in contractions) is preserved.
func NormalizeWord(word string) string {
	trimmed := strings.TrimFunc(word, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
	return Fold(trimmed)
}

// NormalizePhrase splits a target phrase into normalized words. Empty tokens
// are dropped so doubled spaces in a word list entry do not break matching.
func NormalizePhrase(phrase string) []string {
	fields := strings.Fields(phrase)
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		if normalized := NormalizeWord(field); normalized != "" {
			words = append(words, normalized)
		}
	}
	return words
}
