package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := fmt.Sprintf(`
[paths]
work_dir = %q
cache_dir = %q
log_dir = %q
`, filepath.Join(dir, "work"), filepath.Join(dir, "cache"), filepath.Join(dir, "logs"))
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseDumpProducesReviewCSV(t *testing.T) {
	cfgPath := writeTestConfig(t)
	dir := t.TempDir()

	dumpPath := filepath.Join(dir, "transcription.txt")
	dumpBody := strings.Join([]string{
		"Full Transcription for: episode.mp3",
		strings.Repeat("=", 40),
		"",
		"[00:00:11] (Start: 11.50, End: 11.90) what",
		"[00:00:11] (Start: 11.90, End: 12.00) the",
		"[00:00:12] (Start: 12.00, End: 12.40) heck",
		"[00:00:12] (Start: 12.40, End: 12.70) was",
		"[00:00:12] (Start: 12.70, End: 13.00) that",
		"",
	}, "\n")
	if err := os.WriteFile(dumpPath, []byte(dumpBody), 0o644); err != nil {
		t.Fatalf("write dump: %v", err)
	}

	listPath := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(listPath, []byte("# banned\nheck\n"), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}

	outPath := filepath.Join(dir, "review.csv")
	output, err := runCommand(t, "--config", cfgPath, "parse-dump", dumpPath, listPath, "-o", outPath)
	if err != nil {
		t.Fatalf("parse-dump failed: %v\n%s", err, output)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read review csv: %v", err)
	}
	csv := string(data)
	if !strings.Contains(csv, "start,hms_timestamp,end,word,context") {
		t.Fatalf("missing word-mode header:\n%s", csv)
	}
	if !strings.Contains(csv, "12.0,00:00:12,12.4,heck,") {
		t.Fatalf("missing match row:\n%s", csv)
	}
}

func TestParseDumpNoMatchesWritesNothing(t *testing.T) {
	cfgPath := writeTestConfig(t)
	dir := t.TempDir()

	dumpPath := filepath.Join(dir, "transcription.txt")
	if err := os.WriteFile(dumpPath, []byte("[00:00:01] (Start: 1.00, End: 1.50) hello\n"), 0o644); err != nil {
		t.Fatalf("write dump: %v", err)
	}
	listPath := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(listPath, []byte("heck\n"), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}

	outPath := filepath.Join(dir, "review.csv")
	output, err := runCommand(t, "--config", cfgPath, "parse-dump", dumpPath, listPath, "-o", outPath)
	if err != nil {
		t.Fatalf("parse-dump failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "No matches found") {
		t.Fatalf("expected no-match notice, got:\n%s", output)
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Fatalf("review file should not exist, stat err = %v", err)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	output, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v\n%s", err, output)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[whisperx]") {
		t.Fatalf("sample missing whisperx section:\n%s", data)
	}

	// refuses to overwrite without the flag
	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error for existing config")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
}

func TestTopicsRejectsZeroConfidenceFloor(t *testing.T) {
	cfgPath := writeTestConfig(t)
	_, err := runCommand(t, "--config", cfgPath, "topics", "media.mp3", "topics.txt", "--confidence-floor", "0")
	if err == nil {
		t.Fatal("expected error for zero confidence floor")
	}
	if !strings.Contains(err.Error(), "confidence-floor") {
		t.Fatalf("error should name the flag: %v", err)
	}
}

func TestEditRejectsMissingArgs(t *testing.T) {
	cfgPath := writeTestConfig(t)
	if _, err := runCommand(t, "--config", cfgPath, "edit", "only-one-arg"); err == nil {
		t.Fatal("expected usage error")
	}
}

func TestUnknownCommandFails(t *testing.T) {
	cfgPath := writeTestConfig(t)
	if _, err := runCommand(t, "--config", cfgPath, "frobnicate"); err == nil {
		t.Fatal("expected error for unknown command")
	}
}
