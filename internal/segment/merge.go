package segment

import (
	"sort"
	"strings"
)

// Detection is a single-point model hit at one sampled timestamp, used by
// frame-based detectors that produce instants rather than ranges.
type Detection struct {
	Timestamp float64
	Label     string
	Score     float64
}

// MergeDetections clusters point detections into padded time ranges. Hits
// within gapSeconds of the running cluster extend it; anything further
// starts a new cluster. Each resulting range is widened by padSeconds on
// both sides, clamped to [0, maxEnd], and labeled with the sorted union of
// the cluster's labels joined by "|".
func MergeDetections(detections []Detection, gapSeconds, padSeconds, maxEnd float64) ReviewSet {
	if len(detections) == 0 {
		return nil
	}
	sorted := append([]Detection(nil), detections...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Timestamp < sorted[b].Timestamp
	})

	var records ReviewSet
	start := sorted[0].Timestamp
	end := start
	labels := map[string]struct{}{sorted[0].Label: {}}
	best := sorted[0].Score

	flush := func() {
		lo := start - padSeconds
		if lo < 0 {
			lo = 0
		}
		hi := end + padSeconds
		if maxEnd > 0 && hi > maxEnd {
			hi = maxEnd
		}
		if hi <= lo {
			hi = lo + padSeconds
		}
		records = append(records, MatchRecord{
			TimeInterval: TimeInterval{Start: lo, End: hi},
			Label:        joinLabels(labels),
			Confidence:   best * 100,
		})
	}

	for _, det := range sorted[1:] {
		if det.Timestamp-end <= gapSeconds {
			end = det.Timestamp
			labels[det.Label] = struct{}{}
			if det.Score > best {
				best = det.Score
			}
			continue
		}
		flush()
		start = det.Timestamp
		end = start
		labels = map[string]struct{}{det.Label: {}}
		best = det.Score
	}
	flush()
	return records
}

func joinLabels(set map[string]struct{}) string {
	labels := make([]string, 0, len(set))
	for label := range set {
		if label != "" {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return strings.Join(labels, "|")
}
