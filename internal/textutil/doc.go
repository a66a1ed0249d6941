// Package textutil provides text normalization for word matching.
//
// Transcript words arrive with attached punctuation and arbitrary casing
// ("Heck," vs "heck"). Matching against a word list requires a canonical
// form: punctuation-trimmed and Unicode case-folded. The original surface
// form is always preserved for display; normalization is only ever applied
// to the comparison copy.
package textutil
