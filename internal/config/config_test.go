package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Analysis.ChunkSeconds != 90.0 {
		t.Fatalf("chunk_seconds default = %v", cfg.Analysis.ChunkSeconds)
	}
	if cfg.Analysis.ConfidenceFloor != 0.70 {
		t.Fatalf("confidence_floor default = %v", cfg.Analysis.ConfidenceFloor)
	}
	if !cfg.Cache.Enabled {
		t.Fatal("cache should default to enabled")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatalf("exists = true for missing file %s", path)
	}
	if cfg.WhisperX.Model != "large-v3" {
		t.Fatalf("model default = %q", cfg.WhisperX.Model)
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[analysis]
chunk_seconds = 45.0
confidence_floor = 0.9

[editor]
blur_strength = 40

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("exists = false for present file")
	}
	if cfg.Analysis.ChunkSeconds != 45.0 || cfg.Analysis.ConfidenceFloor != 0.9 {
		t.Fatalf("analysis overrides not applied: %+v", cfg.Analysis)
	}
	if cfg.Editor.BlurStrength != 40 {
		t.Fatalf("blur_strength = %d", cfg.Editor.BlurStrength)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging overrides not applied: %+v", cfg.Logging)
	}
	// untouched sections keep defaults
	if cfg.Classifier.TimeoutSeconds != 60 {
		t.Fatalf("classifier timeout = %d", cfg.Classifier.TimeoutSeconds)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"negative chunk", "[analysis]\nchunk_seconds = -1.0\n"},
		{"floor above one", "[analysis]\nconfidence_floor = 1.5\n"},
		// zero would silently become the default downstream
		{"floor zero", "[analysis]\nconfidence_floor = 0.0\n"},
		{"unknown vad", "[whisperx]\nvad_method = \"magic\"\n"},
		{"unknown log format", "[logging]\nformat = \"xml\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestClassifierTokenFromEnvironment(t *testing.T) {
	t.Setenv("HF_API_TOKEN", "env-token")
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Classifier.APIToken != "env-token" {
		t.Fatalf("api token = %q", cfg.Classifier.APIToken)
	}
}

func TestPyannoteRequiresToken(t *testing.T) {
	t.Setenv("HUGGING_FACE_HUB_TOKEN", "")
	t.Setenv("HF_TOKEN", "")
	cfg := Default()
	cfg.WhisperX.VADMethod = "pyannote"
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for pyannote without token")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("sample file not detected")
	}
	if cfg.Analysis.ChunkSeconds != 90.0 {
		t.Fatalf("sample chunk_seconds = %v", cfg.Analysis.ChunkSeconds)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err := ExpandPath("~/x/y")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if !strings.HasPrefix(got, home) {
		t.Fatalf("expanded path %q does not start with home %q", got, home)
	}
}
