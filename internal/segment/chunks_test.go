package segment

import (
	"fmt"
	"testing"

	"scrub/internal/transcribe"
)

// evenTranscript builds words of one second each covering [0, total).
func evenTranscript(total int) transcribe.Transcript {
	var transcript transcribe.Transcript
	for i := 0; i < total; i++ {
		transcript.Words = append(transcript.Words, transcribe.Word{
			Text:  fmt.Sprintf("w%d", i),
			Start: float64(i),
			End:   float64(i + 1),
		})
	}
	return transcript
}

func TestChunksCoverDurationContiguously(t *testing.T) {
	transcript := evenTranscript(200)
	chunks := Chunks(transcript, 90)
	if len(chunks) != 3 {
		t.Fatalf("200s at 90s chunks: expected 3 chunks, got %d", len(chunks))
	}
	if chunks[0].Start != 0 {
		t.Fatalf("first chunk starts at %g", chunks[0].Start)
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].Start != chunks[i-1].End {
			t.Fatalf("chunk %d not contiguous: prev end %g, start %g", i, chunks[i-1].End, chunks[i].Start)
		}
	}
	last := chunks[len(chunks)-1]
	if last.End != transcript.Duration() {
		t.Fatalf("last chunk ends at %g, transcript duration %g", last.End, transcript.Duration())
	}
	for _, chunk := range chunks {
		if chunk.End > transcript.Duration() {
			t.Fatalf("chunk end %g exceeds duration %g", chunk.End, transcript.Duration())
		}
	}
}

func TestChunksShortTranscriptIsOneChunk(t *testing.T) {
	chunks := Chunks(evenTranscript(30), 90)
	if len(chunks) != 1 {
		t.Fatalf("expected single chunk, got %d", len(chunks))
	}
	if chunks[0].Start != 0 || chunks[0].End != 30 {
		t.Fatalf("unexpected bounds [%g, %g)", chunks[0].Start, chunks[0].End)
	}
}

func TestChunksEmptyTranscript(t *testing.T) {
	if got := Chunks(transcribe.Transcript{}, 90); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestChunksTextJoinsWords(t *testing.T) {
	chunks := Chunks(evenTranscript(3), 90)
	if len(chunks) != 1 {
		t.Fatalf("expected single chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "w0 w1 w2" {
		t.Fatalf("unexpected text %q", chunks[0].Text)
	}
}
