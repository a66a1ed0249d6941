package segment

import (
	"strings"

	"scrub/internal/textutil"
	"scrub/internal/transcribe"
)

// ContextWindow is how many transcript words before and after a match are
// joined into the record's context column.
const ContextWindow = 5

// MatchWords scans the transcript for the given target phrases and returns
// one record per occurrence, ordered by start time.
//
// Matching is case-insensitive and punctuation-insensitive on the transcript
// side: "Heck," matches the target "heck". Multi-word phrases match only a
// contiguous run of transcript words in the phrase's order. Overlapping
// matches are kept as separate records; merging is the reviewer's call.
func MatchWords(transcript transcribe.Transcript, phrases []string) ReviewSet {
	targets := make([][]string, 0, len(phrases))
	labels := make([]string, 0, len(phrases))
	for _, phrase := range phrases {
		normalized := textutil.NormalizePhrase(phrase)
		if len(normalized) == 0 {
			continue
		}
		targets = append(targets, normalized)
		labels = append(labels, strings.Join(normalized, " "))
	}
	if len(targets) == 0 || transcript.Empty() {
		return nil
	}

	normalizedWords := make([]string, len(transcript.Words))
	for i, word := range transcript.Words {
		normalizedWords[i] = textutil.NormalizeWord(word.Text)
	}

	var records ReviewSet
	for i := range transcript.Words {
		for t, target := range targets {
			if !phraseMatchesAt(normalizedWords, i, target) {
				continue
			}
			last := i + len(target) - 1
			records = append(records, MatchRecord{
				TimeInterval: TimeInterval{
					Start: transcript.Words[i].Start,
					End:   transcript.Words[last].End,
				},
				Label:      labels[t],
				Confidence: -1,
				Context:    contextAround(transcript, i, last),
			})
		}
	}
	records.SortByStart()
	return records
}

func phraseMatchesAt(words []string, start int, target []string) bool {
	if start+len(target) > len(words) {
		return false
	}
	for offset, targetWord := range target {
		if words[start+offset] != targetWord {
			return false
		}
	}
	return true
}

// contextAround joins the surface forms of ContextWindow words on each side
// of the matched span.
func contextAround(transcript transcribe.Transcript, first, last int) string {
	lo := first - ContextWindow
	if lo < 0 {
		lo = 0
	}
	hi := last + ContextWindow + 1
	if hi > len(transcript.Words) {
		hi = len(transcript.Words)
	}
	parts := make([]string, 0, hi-lo)
	for _, word := range transcript.Words[lo:hi] {
		if trimmed := strings.TrimSpace(word.Text); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}
