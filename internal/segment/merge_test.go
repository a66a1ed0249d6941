package segment

import "testing"

func TestMergeDetectionsClustersNearbyHits(t *testing.T) {
	detections := []Detection{
		{Timestamp: 10.0, Label: "exposed", Score: 0.6},
		{Timestamp: 11.0, Label: "exposed", Score: 0.8},
		{Timestamp: 12.0, Label: "partial", Score: 0.7},
		{Timestamp: 30.0, Label: "exposed", Score: 0.9},
	}
	records := MergeDetections(detections, 1.5, 0.5, 60)
	if len(records) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(records))
	}
	first := records[0]
	if first.Start != 9.5 || first.End != 12.5 {
		t.Fatalf("unexpected first range [%g, %g)", first.Start, first.End)
	}
	if first.Label != "exposed|partial" {
		t.Fatalf("unexpected label %q", first.Label)
	}
	if first.Confidence != 80 {
		t.Fatalf("confidence should be the cluster maximum, got %g", first.Confidence)
	}
}

func TestMergeDetectionsClampsToMediaBounds(t *testing.T) {
	records := MergeDetections([]Detection{
		{Timestamp: 0.2, Label: "exposed", Score: 0.9},
		{Timestamp: 59.9, Label: "exposed", Score: 0.9},
	}, 1.0, 0.5, 60)
	if len(records) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(records))
	}
	if records[0].Start != 0 {
		t.Fatalf("start should clamp to 0, got %g", records[0].Start)
	}
	if records[1].End != 60 {
		t.Fatalf("end should clamp to duration, got %g", records[1].End)
	}
}

func TestMergeDetectionsSortsUnorderedInput(t *testing.T) {
	records := MergeDetections([]Detection{
		{Timestamp: 40, Label: "b", Score: 0.9},
		{Timestamp: 10, Label: "a", Score: 0.9},
	}, 1.0, 0.5, 0)
	if len(records) != 2 || records[0].Start >= records[1].Start {
		t.Fatalf("ranges not ordered: %+v", records)
	}
}
