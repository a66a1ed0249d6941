package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"scrub/internal/fileutil"
	"scrub/internal/segment"
	"scrub/internal/services"
)

// Mode selects how referenced intervals are obscured.
type Mode int

const (
	// ModeAudio replaces the samples inside each interval with silence,
	// leaving duration and everything outside the intervals untouched.
	ModeAudio Mode = iota
	// ModeVideo blurs the full frame for each interval, copying audio as-is.
	ModeVideo
)

// DefaultBlurStrength is the boxblur luma radius for video mode.
const DefaultBlurStrength = 20

// DefaultAudioBitrate is used when re-encoding the muted audio stream.
const DefaultAudioBitrate = "128k"

// ErrNoIntervals is returned when the review set is empty; no output file
// is produced in that case.
var ErrNoIntervals = errors.New("no intervals to apply")

// Options configures one edit run.
type Options struct {
	Mode         Mode
	BlurStrength int
	AudioBitrate string
	FFmpegBinary string
	// OutputPath overrides the default <stem>_edited<ext> destination.
	OutputPath string
}

// Editor applies approved review intervals to a media file through a single
// ffmpeg invocation. ffmpeg streams the container itself, so multi-gigabyte
// inputs never pass through this process's memory; that streaming behavior
// is the reason an external tool is used instead of an in-process audio
// library.
type Editor struct {
	ffmpegBinary  string
	commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// New creates an editor using the given ffmpeg binary ("ffmpeg" when empty).
func New(ffmpegBinary string) *Editor {
	if strings.TrimSpace(ffmpegBinary) == "" {
		ffmpegBinary = "ffmpeg"
	}
	return &Editor{ffmpegBinary: ffmpegBinary}
}

// WithCommandRunner sets a custom command runner (for testing). The runner
// returns the tool's combined diagnostic output.
func (e *Editor) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) ([]byte, error)) {
	e.commandRunner = runner
}

// DefaultOutputPath derives the non-clobbering default destination for an
// input file: <stem>_edited<ext>, counter-suffixed if that already exists.
func DefaultOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(inputPath, ext)
	return fileutil.UniquePath(stem + "_edited" + ext)
}

// Apply runs the edit and returns the final output path. All intervals are
// passed to ffmpeg in one filter chain: one invocation means one decode and
// one encode pass regardless of how many intervals there are. Overlapping
// intervals are safe because muting and blurring are idempotent.
//
// The output is written to a temporary sibling path and renamed into place
// only after ffmpeg exits cleanly, so a failed run never leaves a partial
// file at the final path.
func (e *Editor) Apply(ctx context.Context, mediaPath string, records segment.ReviewSet, opts Options) (string, error) {
	if _, err := os.Stat(mediaPath); err != nil {
		return "", services.Wrap(services.ErrInputNotFound, "editor", "apply", mediaPath, nil)
	}
	if len(records) == 0 {
		return "", ErrNoIntervals
	}
	if err := records.Validate(); err != nil {
		return "", services.Wrap(services.ErrReviewParse, "editor", "apply", "", err)
	}

	outputPath := opts.OutputPath
	if strings.TrimSpace(outputPath) == "" {
		outputPath = DefaultOutputPath(mediaPath)
	}
	if samePath(mediaPath, outputPath) {
		return "", services.Wrap(services.ErrConfiguration, "editor", "apply", "output path equals input path", nil)
	}

	if err := checkFreeSpace(mediaPath, filepath.Dir(outputPath)); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "editor", "apply", "", err)
	}

	// The temp file keeps the real extension so ffmpeg can infer the container.
	ext := filepath.Ext(outputPath)
	tempPath := strings.TrimSuffix(outputPath, ext) + "_partial-" + uuid.NewString()[:8] + ext

	args := buildArgs(mediaPath, records, tempPath, opts)
	binary := opts.FFmpegBinary
	if strings.TrimSpace(binary) == "" {
		binary = e.ffmpegBinary
	}

	output, err := e.run(ctx, binary, args...)
	if err != nil {
		_ = os.Remove(tempPath)
		return "", services.Wrap(services.ErrEditorTool, "editor", "apply",
			strings.TrimSpace(string(output)), err)
	}

	if err := fileutil.ReplaceFile(tempPath, outputPath); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("editor: move output into place: %w", err)
	}
	return outputPath, nil
}

func (e *Editor) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if e.commandRunner != nil {
		return e.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	return cmd.CombinedOutput()
}

func buildArgs(mediaPath string, records segment.ReviewSet, tempPath string, opts Options) []string {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", mediaPath,
	}
	switch opts.Mode {
	case ModeVideo:
		strength := opts.BlurStrength
		if strength <= 0 {
			strength = DefaultBlurStrength
		}
		args = append(args,
			"-vf", blurFilter(records, strength),
			"-c:a", "copy",
		)
	default:
		bitrate := opts.AudioBitrate
		if strings.TrimSpace(bitrate) == "" {
			bitrate = DefaultAudioBitrate
		}
		args = append(args,
			"-map", "0:a",
			"-map_metadata", "0",
			"-af", muteFilter(records),
			"-c:a", codecForExtension(filepath.Ext(tempPath)),
			"-b:a", bitrate,
		)
	}
	return append(args, tempPath)
}

// muteFilter emits one volume filter per interval, chained with commas:
// volume=enable='between(t,S,E)':volume=0,...
func muteFilter(records segment.ReviewSet) string {
	parts := make([]string, len(records))
	for i, record := range records {
		parts[i] = fmt.Sprintf("volume=enable='between(t,%s,%s)':volume=0",
			formatTime(record.Start), formatTime(record.End))
	}
	return strings.Join(parts, ",")
}

// blurFilter emits a single boxblur whose enable expression ORs every
// interval together: between(t,s1,e1)+between(t,s2,e2)+...
func blurFilter(records segment.ReviewSet, strength int) string {
	enables := make([]string, len(records))
	for i, record := range records {
		enables[i] = fmt.Sprintf("between(t,%s,%s)", formatTime(record.Start), formatTime(record.End))
	}
	return fmt.Sprintf("boxblur=%d:1:enable='%s'", strength, strings.Join(enables, "+"))
}

func formatTime(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

// codecForExtension picks the audio codec from the output container.
func codecForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".mp3":
		return "libmp3lame"
	case ".m4b", ".m4a", ".mp4":
		return "aac"
	default:
		return "aac"
	}
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
