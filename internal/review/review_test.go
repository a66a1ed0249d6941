package review

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scrub/internal/segment"
	"scrub/internal/services"
)

func TestWordRoundTrip(t *testing.T) {
	records := segment.ReviewSet{
		{
			TimeInterval: segment.TimeInterval{Start: 12.0, End: 12.4},
			Label:        "heck",
			Confidence:   -1,
			Context:      "said what the heck again",
		},
		{
			TimeInterval: segment.TimeInterval{Start: 75.25, End: 76.0},
			Label:        "darn",
			Confidence:   -1,
			Context:      "well, darn it",
		},
	}
	path := filepath.Join(t.TempDir(), "review.csv")
	if err := WriteWords(records, path); err != nil {
		t.Fatalf("WriteWords: %v", err)
	}

	got, schema, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if schema != SchemaWord {
		t.Fatalf("expected word schema, got %v", schema)
	}
	if len(got) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(got))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Fatalf("record %d mismatch:\n got %+v\nwant %+v", i, got[i], records[i])
		}
	}
}

func TestWordFileFormat(t *testing.T) {
	records := segment.ReviewSet{{
		TimeInterval: segment.TimeInterval{Start: 12.0, End: 12.4},
		Label:        "heck",
		Confidence:   -1,
		Context:      "what the heck was that",
	}}
	path := filepath.Join(t.TempDir(), "review.csv")
	if err := WriteWords(records, path); err != nil {
		t.Fatalf("WriteWords: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "start,hms_timestamp,end,word,context" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "12.0,00:00:12,12.4,heck,what the heck was that" {
		t.Fatalf("unexpected row %q", lines[1])
	}
}

func TestTopicRoundTrip(t *testing.T) {
	records := segment.ReviewSet{{
		TimeInterval: segment.TimeInterval{Start: 90.5, End: 181.0},
		Label:        "hunting",
		Confidence:   85.12,
		Context:      "they tracked the deer through the, uh, snow",
	}}
	path := filepath.Join(t.TempDir(), "review_topics.csv")
	if err := WriteTopics(records, path); err != nil {
		t.Fatalf("WriteTopics: %v", err)
	}

	got, schema, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if schema != SchemaTopic {
		t.Fatalf("expected topic schema, got %v", schema)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0] != records[0] {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got[0], records[0])
	}
}

func TestTopicConfidenceRendersAsPercent(t *testing.T) {
	records := segment.ReviewSet{{
		TimeInterval: segment.TimeInterval{Start: 0, End: 90},
		Label:        "hunting",
		Confidence:   85.118,
		Context:      "text",
	}}
	path := filepath.Join(t.TempDir(), "review_topics.csv")
	if err := WriteTopics(records, path); err != nil {
		t.Fatalf("WriteTopics: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "85.12%") {
		t.Fatalf("expected percentage column, got:\n%s", data)
	}
}

func TestReadRejectsMalformedNumericRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "review.csv")
	contents := "start,hms_timestamp,end,word,context\n" +
		"12.0,00:00:12,12.4,heck,fine row\n" +
		"oops,00:00:20,21.0,darn,bad row\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := Read(path)
	if !errors.Is(err, services.ErrReviewParse) {
		t.Fatalf("expected review parse kind, got %v", err)
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Fatalf("error should name the offending row: %v", err)
	}
}

func TestReadRejectsInvertedInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "review.csv")
	contents := "start,hms_timestamp,end,word,context\n" +
		"12.4,00:00:12,12.0,heck,inverted\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Read(path); !errors.Is(err, services.ErrReviewParse) {
		t.Fatalf("expected review parse kind, got %v", err)
	}
}

func TestReadRejectsUnknownHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "review.csv")
	if err := os.WriteFile(path, []byte("a,b,c\n1,2,3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Read(path); !errors.Is(err, services.ErrReviewParse) {
		t.Fatalf("expected review parse kind, got %v", err)
	}
}

func TestReadMissingFileIsInputNotFound(t *testing.T) {
	_, _, err := Read(filepath.Join(t.TempDir(), "absent.csv"))
	if !errors.Is(err, services.ErrInputNotFound) {
		t.Fatalf("expected input not found kind, got %v", err)
	}
}

func TestReadSortsHumanReorderedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "review.csv")
	contents := "start,hms_timestamp,end,word,context\n" +
		"50.0,00:00:50,51.0,darn,later\n" +
		"12.0,00:00:12,12.4,heck,earlier\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	records, _, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if records[0].Label != "heck" || records[1].Label != "darn" {
		t.Fatalf("records not sorted by start: %+v", records)
	}
}
