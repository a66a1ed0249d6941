package segment

import (
	"fmt"
	"sort"
)

// TimeInterval is a half-open time range in seconds within the source media.
type TimeInterval struct {
	Start float64
	End   float64
}

// Valid reports whether the interval satisfies 0 <= start < end.
func (i TimeInterval) Valid() bool {
	return i.Start >= 0 && i.Start < i.End
}

// Duration returns the interval length in seconds.
func (i TimeInterval) Duration() float64 {
	return i.End - i.Start
}

// HMS formats the interval start as HH:MM:SS, truncated to whole seconds.
func (i TimeInterval) HMS() string {
	return FormatHMS(i.Start)
}

// FormatHMS converts seconds into an HH:MM:SS string, truncating fractions.
func FormatHMS(seconds float64) string {
	total := int(seconds)
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// MatchRecord is one detected interval of interest. Records are immutable
// once created: the extractor emits them and the review store round-trips
// them, but nothing in the pipeline edits a field after emission.
type MatchRecord struct {
	TimeInterval
	// Label is the matched phrase or winning topic.
	Label string
	// Confidence is a 0-100 score; negative means not applicable (word mode).
	Confidence float64
	// Context is surrounding transcript text for reviewer orientation.
	Context string
}

// ReviewSet is the ordered list of match records exchanged between the
// analysis and editing stages. It is the single source of truth passed
// through the review file; the human may delete rows between write and read
// but the pipeline never edits rows in place.
type ReviewSet []MatchRecord

// SortByStart orders the set by start ascending, preserving the original
// order of records with equal starts.
func (rs ReviewSet) SortByStart() {
	sort.SliceStable(rs, func(a, b int) bool {
		return rs[a].Start < rs[b].Start
	})
}

// Validate checks every record's interval invariant.
func (rs ReviewSet) Validate() error {
	for idx, record := range rs {
		if !record.Valid() {
			return fmt.Errorf("record %d (%q): invalid interval [%g, %g)", idx+1, record.Label, record.Start, record.End)
		}
	}
	return nil
}
