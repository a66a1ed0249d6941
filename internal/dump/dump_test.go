package dump

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scrub/internal/services"
	"scrub/internal/transcribe"
)

func TestWriteThenParseRoundTrip(t *testing.T) {
	transcript := transcribe.Transcript{Words: []transcribe.Word{
		{Text: "what", Start: 10.0, End: 10.3},
		{Text: "the", Start: 10.4, End: 10.6},
		{Text: "heck", Start: 12.0, End: 12.4},
	}}
	path := filepath.Join(t.TempDir(), "transcription_dump.txt")
	if err := Write(transcript, "input.m4b", path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "Full Transcription for: input.m4b\n") {
		t.Fatalf("missing header: %q", text[:50])
	}
	if !strings.Contains(text, "[00:00:12] (Start: 12.00, End: 12.40) heck") {
		t.Fatalf("missing word line:\n%s", text)
	}

	parsed, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed.Words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(parsed.Words))
	}
	if parsed.Words[2].Text != "heck" || parsed.Words[2].Start != 12.0 || parsed.Words[2].End != 12.4 {
		t.Fatalf("unexpected parsed word: %+v", parsed.Words[2])
	}
}

func TestParseSkipsNonWordLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.txt")
	contents := "Full Transcription for: x.mp3\n" +
		"========================================\n\n" +
		"[00:00:01] (Start: 1.00, End: 1.50) hello\n" +
		"garbage line\n" +
		"[00:00:02] (Start: 2.00, End: 2.50) world\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	parsed, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed.Words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(parsed.Words))
	}
}

func TestParseEmptyDumpIsAnalysisFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.txt")
	if err := os.WriteFile(path, []byte("nothing here\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Parse(path); !errors.Is(err, services.ErrAnalysis) {
		t.Fatalf("expected analysis failure kind, got %v", err)
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "absent.txt"))
	if !errors.Is(err, services.ErrInputNotFound) {
		t.Fatalf("expected input not found kind, got %v", err)
	}
}

func TestWriteEmptyTranscriptNote(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.txt")
	if err := Write(transcribe.Transcript{}, "silent.mp3", path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "No words were transcribed") {
		t.Fatalf("missing empty note:\n%s", data)
	}
}
