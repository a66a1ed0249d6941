package segment

import (
	"strings"

	"scrub/internal/transcribe"
)

// DefaultChunkSeconds is the topic-classification chunk length.
const DefaultChunkSeconds = 90.0

// Chunk is a bounded-duration slice of the transcript used as the unit of
// topic classification.
type Chunk struct {
	TimeInterval
	Text string
}

// Chunks partitions the transcript into contiguous chunks of roughly
// chunkSeconds duration, breaking at word boundaries. A chunk closes on the
// first word whose end extends past the chunk duration, and the next chunk
// starts exactly where it ended, so chunk bounds are contiguous and
// non-overlapping and never exceed the transcript's total duration.
func Chunks(transcript transcribe.Transcript, chunkSeconds float64) []Chunk {
	if transcript.Empty() {
		return nil
	}
	if chunkSeconds <= 0 {
		chunkSeconds = DefaultChunkSeconds
	}

	var chunks []Chunk
	var parts []string
	chunkStart := transcript.Words[0].Start

	for _, word := range transcript.Words {
		if trimmed := strings.TrimSpace(word.Text); trimmed != "" {
			parts = append(parts, trimmed)
		}
		if word.End-chunkStart > chunkSeconds {
			chunks = append(chunks, Chunk{
				TimeInterval: TimeInterval{Start: chunkStart, End: word.End},
				Text:         strings.Join(parts, " "),
			})
			parts = parts[:0]
			chunkStart = word.End
		}
	}

	if len(parts) > 0 {
		chunks = append(chunks, Chunk{
			TimeInterval: TimeInterval{Start: chunkStart, End: transcript.Duration()},
			Text:         strings.Join(parts, " "),
		})
	}
	return chunks
}
