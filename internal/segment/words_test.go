package segment

import (
	"testing"

	"scrub/internal/transcribe"
)

func wordsTranscript(words ...transcribe.Word) transcribe.Transcript {
	return transcribe.Transcript{Words: words}
}

func TestMatchWordsCaseInsensitive(t *testing.T) {
	transcript := wordsTranscript(
		transcribe.Word{Text: "What", Start: 0, End: 0.3},
		transcribe.Word{Text: "the", Start: 0.3, End: 0.5},
		transcribe.Word{Text: "HECK,", Start: 0.5, End: 0.9},
	)

	for _, target := range []string{"heck", "Heck", "HECK"} {
		records := MatchWords(transcript, []string{target})
		if len(records) != 1 {
			t.Fatalf("target %q: expected 1 match, got %d", target, len(records))
		}
		if records[0].Label != "heck" {
			t.Fatalf("target %q: unexpected label %q", target, records[0].Label)
		}
		if records[0].Start != 0.5 || records[0].End != 0.9 {
			t.Fatalf("target %q: unexpected bounds [%g, %g)", target, records[0].Start, records[0].End)
		}
	}
}

func TestMatchWordsMultiWordPhrase(t *testing.T) {
	adjacent := wordsTranscript(
		transcribe.Word{Text: "about", Start: 0, End: 0.4},
		transcribe.Word{Text: "outdoor", Start: 0.4, End: 0.9},
		transcribe.Word{Text: "survival", Start: 0.9, End: 1.5},
		transcribe.Word{Text: "skills", Start: 1.5, End: 2.0},
	)
	records := MatchWords(adjacent, []string{"outdoor survival"})
	if len(records) != 1 {
		t.Fatalf("expected 1 phrase match, got %d", len(records))
	}
	if records[0].Start != 0.4 || records[0].End != 1.5 {
		t.Fatalf("phrase bounds should span first to last word, got [%g, %g)", records[0].Start, records[0].End)
	}

	separated := wordsTranscript(
		transcribe.Word{Text: "outdoor", Start: 0, End: 0.5},
		transcribe.Word{Text: "cooking", Start: 0.5, End: 1.0},
		transcribe.Word{Text: "survival", Start: 1.0, End: 1.6},
	)
	if got := MatchWords(separated, []string{"outdoor survival"}); len(got) != 0 {
		t.Fatalf("non-adjacent words must not match, got %d records", len(got))
	}
}

func TestMatchWordsContextWindow(t *testing.T) {
	words := make([]transcribe.Word, 0, 13)
	texts := []string{"a", "b", "c", "d", "e", "f", "heck", "g", "h", "i", "j", "k", "l"}
	for i, text := range texts {
		words = append(words, transcribe.Word{Text: text, Start: float64(i), End: float64(i) + 0.5})
	}
	records := MatchWords(wordsTranscript(words...), []string{"heck"})
	if len(records) != 1 {
		t.Fatalf("expected 1 match, got %d", len(records))
	}
	want := "b c d e f heck g h i j k"
	if records[0].Context != want {
		t.Fatalf("context = %q, want %q", records[0].Context, want)
	}
}

func TestMatchWordsClampsContextAtEdges(t *testing.T) {
	records := MatchWords(wordsTranscript(
		transcribe.Word{Text: "heck", Start: 0, End: 0.4},
		transcribe.Word{Text: "yeah", Start: 0.4, End: 0.8},
	), []string{"heck"})
	if len(records) != 1 {
		t.Fatalf("expected 1 match, got %d", len(records))
	}
	if records[0].Context != "heck yeah" {
		t.Fatalf("unexpected context %q", records[0].Context)
	}
}

func TestMatchWordsOrderedAndStable(t *testing.T) {
	transcript := wordsTranscript(
		transcribe.Word{Text: "darn", Start: 5, End: 5.4},
		transcribe.Word{Text: "heck", Start: 1, End: 1.4},
		transcribe.Word{Text: "darn", Start: 1, End: 1.4},
	)
	records := MatchWords(transcript, []string{"heck", "darn"})
	if len(records) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(records))
	}
	if records[0].Start != 1 || records[1].Start != 1 || records[2].Start != 5 {
		t.Fatalf("records not ordered by start: %+v", records)
	}
	// Equal starts keep transcript order: "heck" was scanned before the
	// co-located "darn".
	if records[0].Label != "heck" || records[1].Label != "darn" {
		t.Fatalf("tie not stable: %q then %q", records[0].Label, records[1].Label)
	}
}

func TestMatchWordsNoMerging(t *testing.T) {
	transcript := wordsTranscript(
		transcribe.Word{Text: "heck", Start: 1.0, End: 1.4},
		transcribe.Word{Text: "heck", Start: 1.4, End: 1.8},
	)
	records := MatchWords(transcript, []string{"heck"})
	if len(records) != 2 {
		t.Fatalf("adjacent matches must stay separate rows, got %d", len(records))
	}
}
