package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"scrub/internal/services"
)

// Transcriber converts a media file into a word-level Transcript. The CLI
// depends on this interface so tests can substitute a stub without WhisperX
// or ffmpeg present.
type Transcriber interface {
	Transcribe(ctx context.Context, mediaPath string) (Transcript, error)
}

// Service runs WhisperX through uvx and parses its word-aligned JSON output.
type Service struct {
	cfg           Config
	ffmpegBinary  string
	workDir       string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a WhisperX service with the given configuration.
// workDir holds the intermediate WAV and the WhisperX output files; when
// empty a per-run temp directory is used.
func NewService(cfg Config, ffmpegBinary, workDir string) *Service {
	if ffmpegBinary == "" {
		ffmpegBinary = FFmpegCommand
	}
	return &Service{
		cfg:          cfg,
		ffmpegBinary: ffmpegBinary,
		workDir:      workDir,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging and cache keys.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// Transcribe extracts the audio stream to a mono 16kHz WAV, transcribes it
// with word timestamps, and flattens the result into a Transcript.
func (s *Service) Transcribe(ctx context.Context, mediaPath string) (Transcript, error) {
	var transcript Transcript

	if strings.TrimSpace(mediaPath) == "" {
		return transcript, services.Wrap(services.ErrInputNotFound, "transcribe", "run", "media path required", nil)
	}

	workDir := s.workDir
	if workDir == "" {
		dir, err := os.MkdirTemp("", "scrub-transcribe-*")
		if err != nil {
			return transcript, fmt.Errorf("transcribe: temp dir: %w", err)
		}
		defer os.RemoveAll(dir)
		workDir = dir
	} else if err := os.MkdirAll(workDir, 0o755); err != nil {
		return transcript, fmt.Errorf("transcribe: ensure work dir: %w", err)
	}

	wavPath := filepath.Join(workDir, "audio.wav")
	if err := s.extractAudio(ctx, mediaPath, wavPath); err != nil {
		return transcript, services.Wrap(services.ErrUnsupportedMedia, "transcribe", "extract audio", "", err)
	}

	args := s.buildArgs(wavPath, workDir)
	if err := s.run(ctx, UVXCommand, args...); err != nil {
		return transcript, services.Wrap(services.ErrAnalysis, "transcribe", "whisperx", "", err)
	}

	jsonPath := filepath.Join(workDir, strings.TrimSuffix(filepath.Base(wavPath), filepath.Ext(wavPath))+".json")
	transcript, err := LoadTranscript(jsonPath)
	if err != nil {
		return transcript, services.Wrap(services.ErrAnalysis, "transcribe", "parse output", "", err)
	}
	if transcript.Empty() {
		return transcript, services.Wrap(services.ErrAnalysis, "transcribe", "whisperx", "no words transcribed", nil)
	}
	return transcript, nil
}

func (s *Service) extractAudio(ctx context.Context, source, dest string) error {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
	return s.run(ctx, s.ffmpegBinary, args...)
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	// Torch 2.6 changed torch.load default to weights_only=true, breaking
	// WhisperX/pyannote. Force legacy behavior so checkpoints load.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// buildArgs constructs the uvx command arguments for WhisperX.
func (s *Service) buildArgs(source, outputDir string) []string {
	args := make([]string, 0, 24)

	if s.cfg.CUDAEnabled {
		args = append(args,
			"--index-url", CUDAIndexURL,
			"--extra-index-url", PypiIndexURL,
		)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	model := s.cfg.Model
	if model == "" {
		model = DefaultModel
	}

	args = append(args,
		"whisperx",
		source,
		"--model", model,
		"--batch_size", BatchSize,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--segment_resolution", SegmentResolution,
		"--chunk_size", ChunkSize,
		"--temperature", Temperature,
	)

	vadMethod := s.cfg.VADMethod
	if vadMethod == "" {
		vadMethod = VADMethodSilero
	}
	args = append(args, "--vad_method", vadMethod)
	if vadMethod == VADMethodPyannote && s.cfg.HFToken != "" {
		args = append(args, "--hf_token", s.cfg.HFToken)
	}

	if s.cfg.CUDAEnabled {
		args = append(args, "--device", CUDADevice)
	} else {
		args = append(args, "--device", CPUDevice, "--compute_type", CPUComputeType)
	}

	return args
}

// Segment is one aligned segment from WhisperX JSON output.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Words []Word  `json:"words"`
}

type whisperXPayload struct {
	Segments []Segment `json:"segments"`
}

// LoadTranscript reads a WhisperX JSON file and flattens its segments into
// an ordered word list. Words without timing (numerals WhisperX could not
// align) inherit the previous word's end bound so intervals stay monotonic.
func LoadTranscript(jsonPath string) (Transcript, error) {
	var transcript Transcript
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return transcript, err
	}
	var payload whisperXPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return transcript, fmt.Errorf("parse whisperx json: %w", err)
	}

	var lastEnd float64
	for _, segment := range payload.Segments {
		for _, word := range segment.Words {
			if strings.TrimSpace(word.Text) == "" {
				continue
			}
			if word.End <= 0 && word.Start <= 0 {
				word.Start = lastEnd
				word.End = lastEnd
			}
			if word.End < word.Start {
				word.End = word.Start
			}
			lastEnd = word.End
			transcript.Words = append(transcript.Words, word)
		}
	}
	return transcript, nil
}
