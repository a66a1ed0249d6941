package transcribe

import "strings"

// Word is a single transcribed word with its time bounds in seconds.
type Word struct {
	Text  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Transcript is the ordered word-level output of one transcription run.
// It exists only for the duration of an analysis; the review CSV is the
// durable artifact.
type Transcript struct {
	Words []Word
}

// Empty reports whether no words were transcribed.
func (t Transcript) Empty() bool {
	return len(t.Words) == 0
}

// Duration returns the end bound of the last word, in seconds.
func (t Transcript) Duration() float64 {
	if len(t.Words) == 0 {
		return 0
	}
	return t.Words[len(t.Words)-1].End
}

// Text joins the surface forms of all words with single spaces.
func (t Transcript) Text() string {
	parts := make([]string, 0, len(t.Words))
	for _, word := range t.Words {
		if trimmed := strings.TrimSpace(word.Text); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}
