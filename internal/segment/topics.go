package segment

import (
	"context"
	"fmt"

	"scrub/internal/transcribe"
)

// Score is one (topic, score) pair from the classifier, score in [0, 1].
type Score struct {
	Label string
	Value float64
}

// Classifier scores a text against candidate topic labels, best first.
type Classifier interface {
	Classify(ctx context.Context, text string, labels []string) ([]Score, error)
}

// DefaultConfidenceFloor is the minimum best-topic score (0-1) a chunk must
// reach before a record is emitted.
const DefaultConfidenceFloor = 0.70

// TopicOptions controls topic extraction.
type TopicOptions struct {
	// ChunkSeconds is the chunk duration; DefaultChunkSeconds when zero.
	ChunkSeconds float64
	// ConfidenceFloor is the 0-1 cutoff; DefaultConfidenceFloor when zero.
	ConfidenceFloor float64
	// Progress, when set, receives (done, total) after each classified chunk.
	Progress func(done, total int)
}

// MatchTopics chunks the transcript and classifies every chunk against the
// topic list. Chunks whose best score clears the floor produce one record
// each, with the confidence scaled to 0-100 and the chunk's full text as
// context. Chunk order is start order, so the result is already sorted.
func MatchTopics(ctx context.Context, transcript transcribe.Transcript, topics []string, classifier Classifier, opts TopicOptions) (ReviewSet, error) {
	if len(topics) == 0 {
		return nil, fmt.Errorf("match topics: no topics given")
	}
	floor := opts.ConfidenceFloor
	if floor <= 0 {
		floor = DefaultConfidenceFloor
	}

	chunks := Chunks(transcript, opts.ChunkSeconds)
	var records ReviewSet
	for done, chunk := range chunks {
		scores, err := classifier.Classify(ctx, chunk.Text, topics)
		if err != nil {
			return nil, fmt.Errorf("classify chunk at %s: %w", chunk.HMS(), err)
		}
		if len(scores) == 0 {
			return nil, fmt.Errorf("classify chunk at %s: empty result", chunk.HMS())
		}
		best := scores[0]
		if best.Value >= floor {
			records = append(records, MatchRecord{
				TimeInterval: chunk.TimeInterval,
				Label:        best.Label,
				Confidence:   best.Value * 100,
				Context:      chunk.Text,
			})
		}
		if opts.Progress != nil {
			opts.Progress(done+1, len(chunks))
		}
	}
	return records, nil
}
