package detect

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"scrub/internal/segment"
	"scrub/internal/services"
)

// Defaults for frame scanning.
const (
	DefaultFrameInterval = 1.0
	DefaultThreshold     = 0.5
	DefaultPadSeconds    = 0.5
)

// defaultUnsafeClasses are the detector classes that trigger a blur range.
var defaultUnsafeClasses = []string{
	"BUTTS",
	"FEMALE_BREAST",
	"FEMALE_GENITALIA",
	"MALE_GENITALIA",
	"ANUS",
}

// Config captures runtime settings for the external frame detector.
type Config struct {
	// Command is the detector binary. It receives frame image paths as
	// arguments and prints one JSON object per frame on stdout.
	Command string
	// FrameInterval is seconds between sampled frames.
	FrameInterval float64
	// Threshold is the minimum detection score (0-1) to count a hit.
	Threshold float64
	// UnsafeClasses overrides the default class filter when non-empty.
	UnsafeClasses []string
	// FFmpegBinary extracts the sample frames ("ffmpeg" when empty).
	FFmpegBinary string
}

// Scanner samples video frames and runs an external nudity detector over
// them, merging per-frame hits into blur ranges.
type Scanner struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewScanner creates a scanner for the given configuration.
func NewScanner(cfg Config) *Scanner {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = DefaultFrameInterval
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if strings.TrimSpace(cfg.FFmpegBinary) == "" {
		cfg.FFmpegBinary = "ffmpeg"
	}
	if len(cfg.UnsafeClasses) == 0 {
		cfg.UnsafeClasses = defaultUnsafeClasses
	}
	return &Scanner{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing). The runner
// returns the command's stdout.
func (s *Scanner) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) ([]byte, error)) {
	s.commandRunner = runner
}

// frameResult is one line of detector output: the frame file it examined
// and everything it found there.
type frameResult struct {
	File       string      `json:"file"`
	Detections []detection `json:"detections"`
}

type detection struct {
	Class string  `json:"class"`
	Score float64 `json:"score"`
}

// Scan samples the video at the configured interval, runs the detector over
// all sampled frames in one invocation, and merges qualifying hits into
// padded blur ranges clamped to durationSeconds.
func (s *Scanner) Scan(ctx context.Context, videoPath string, durationSeconds float64, progress func(done, total int)) (segment.ReviewSet, error) {
	if strings.TrimSpace(s.cfg.Command) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "detect", "scan", "detector.command is not configured", nil)
	}

	frameDir, err := os.MkdirTemp("", "scrub-frames-*")
	if err != nil {
		return nil, fmt.Errorf("detect: temp dir: %w", err)
	}
	defer os.RemoveAll(frameDir)

	if err := s.sampleFrames(ctx, videoPath, frameDir); err != nil {
		return nil, services.Wrap(services.ErrUnsupportedMedia, "detect", "sample frames", "", err)
	}

	frames, err := sortedFramePaths(frameDir)
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, services.Wrap(services.ErrAnalysis, "detect", "sample frames", "no frames extracted", nil)
	}
	if progress != nil {
		progress(0, len(frames))
	}

	output, err := s.run(ctx, s.cfg.Command, frames...)
	if err != nil {
		return nil, services.Wrap(services.ErrAnalysis, "detect", "detector", "", err)
	}

	detections, err := s.parseDetections(output)
	if err != nil {
		return nil, services.Wrap(services.ErrAnalysis, "detect", "parse detector output", "", err)
	}
	if progress != nil {
		progress(len(frames), len(frames))
	}

	gap := s.cfg.FrameInterval * 1.5
	return segment.MergeDetections(detections, gap, DefaultPadSeconds, durationSeconds), nil
}

// sampleFrames writes one JPEG per interval as frame_000001.jpg onward.
func (s *Scanner) sampleFrames(ctx context.Context, videoPath, frameDir string) error {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-vf", fmt.Sprintf("fps=1/%s", strconv.FormatFloat(s.cfg.FrameInterval, 'f', -1, 64)),
		"-q:v", "3",
		filepath.Join(frameDir, "frame_%06d.jpg"),
	}
	_, err := s.run(ctx, s.cfg.FFmpegBinary, args...)
	return err
}

func (s *Scanner) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

func sortedFramePaths(frameDir string) ([]string, error) {
	entries, err := os.ReadDir(frameDir)
	if err != nil {
		return nil, fmt.Errorf("detect: read frame dir: %w", err)
	}
	var frames []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "frame_") && strings.HasSuffix(entry.Name(), ".jpg") {
			frames = append(frames, filepath.Join(frameDir, entry.Name()))
		}
	}
	sort.Strings(frames)
	return frames, nil
}

// parseDetections reads JSONL detector output and converts qualifying hits
// into timestamped detections. The frame's timestamp is derived from its
// sequence number and the sampling interval.
func (s *Scanner) parseDetections(output []byte) ([]segment.Detection, error) {
	unsafe := make(map[string]struct{}, len(s.cfg.UnsafeClasses))
	for _, class := range s.cfg.UnsafeClasses {
		unsafe[strings.ToUpper(class)] = struct{}{}
	}

	var detections []segment.Detection
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var result frameResult
		if err := json.Unmarshal([]byte(line), &result); err != nil {
			return nil, fmt.Errorf("line %q: %w", line, err)
		}
		timestamp, err := frameTimestamp(result.File, s.cfg.FrameInterval)
		if err != nil {
			return nil, err
		}
		for _, det := range result.Detections {
			if det.Score < s.cfg.Threshold {
				continue
			}
			if _, ok := unsafe[strings.ToUpper(det.Class)]; !ok {
				continue
			}
			detections = append(detections, segment.Detection{
				Timestamp: timestamp,
				Label:     strings.ToUpper(det.Class),
				Score:     det.Score,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return detections, nil
}

// frameTimestamp maps frame_000003.jpg at a 1s interval to t=2.0: ffmpeg's
// fps filter emits the first sampled frame as number one.
func frameTimestamp(framePath string, interval float64) (float64, error) {
	base := filepath.Base(framePath)
	numeric := strings.TrimSuffix(strings.TrimPrefix(base, "frame_"), ".jpg")
	n, err := strconv.Atoi(numeric)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("unexpected frame name %q", base)
	}
	return float64(n-1) * interval, nil
}
