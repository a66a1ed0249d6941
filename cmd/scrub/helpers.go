package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/progress"

	"scrub/internal/config"
	"scrub/internal/logging"
	"scrub/internal/media/ffprobe"
	"scrub/internal/services"
	"scrub/internal/transcache"
	"scrub/internal/transcribe"
)

// runContext annotates the command context with a correlation id and the
// media file under processing.
func runContext(ctx context.Context, mediaPath string) context.Context {
	ctx = services.WithRunID(ctx, uuid.NewString()[:8])
	return services.WithMedia(ctx, mediaPath)
}

// inspectInput stats and probes the input file. needAudio and needVideo
// assert the stream kinds the command requires.
func inspectInput(ctx context.Context, mediaPath string, needAudio, needVideo bool) (ffprobe.Result, error) {
	if _, err := os.Stat(mediaPath); err != nil {
		return ffprobe.Result{}, services.Wrap(services.ErrInputNotFound, "cli", "inspect input", mediaPath, err)
	}
	result, err := ffprobe.Inspect(ctx, "ffprobe", mediaPath)
	if err != nil {
		return ffprobe.Result{}, services.Wrap(services.ErrUnsupportedMedia, "cli", "inspect input", mediaPath, err)
	}
	if needAudio && !result.HasAudio() {
		return ffprobe.Result{}, services.Wrap(services.ErrUnsupportedMedia, "cli", "inspect input", fmt.Sprintf("%s has no audio stream", mediaPath), nil)
	}
	if needVideo && !result.HasVideo() {
		return ffprobe.Result{}, services.Wrap(services.ErrUnsupportedMedia, "cli", "inspect input", fmt.Sprintf("%s has no video stream", mediaPath), nil)
	}
	return result, nil
}

func transcriberFor(cfg *config.Config) *transcribe.Service {
	return transcribe.NewService(transcribe.Config{
		Model:       cfg.WhisperX.Model,
		CUDAEnabled: cfg.WhisperX.CUDAEnabled,
		VADMethod:   cfg.WhisperX.VADMethod,
		HFToken:     cfg.WhisperX.HFToken,
	}, cfg.Editor.FFmpegBinary, cfg.Paths.WorkDir)
}

// loadTranscript returns the media file's word-level transcript, consulting
// the cache first when enabled. Cache failures are logged and transcription
// proceeds without the cache.
func loadTranscript(ctx context.Context, cfg *config.Config, logger *slog.Logger, mediaPath string, useCache bool) (transcribe.Transcript, error) {
	svc := transcriberFor(cfg)
	log := logging.WithContext(ctx, logger).With(logging.FieldComponent, "transcribe")

	if !useCache || !cfg.Cache.Enabled {
		return svc.Transcribe(ctx, mediaPath)
	}

	fingerprint, err := transcache.Fingerprint(mediaPath)
	if err != nil {
		return transcribe.Transcript{}, services.Wrap(services.ErrInputNotFound, "transcribe", "fingerprint", mediaPath, err)
	}

	store, err := transcache.Open(cfg.Paths.CacheDir)
	if err != nil {
		log.Warn("transcript cache unavailable", "error", err)
		return svc.Transcribe(ctx, mediaPath)
	}
	defer store.Close()

	cached, err := store.Get(ctx, fingerprint, svc.Model())
	if err == nil {
		log.Info("using cached transcript", "model", svc.Model(), "words", len(cached.Words))
		return cached, nil
	}
	if !errors.Is(err, transcache.ErrMiss) {
		log.Warn("transcript cache read failed", "error", err)
	}

	started := time.Now()
	transcript, err := svc.Transcribe(ctx, mediaPath)
	if err != nil {
		return transcribe.Transcript{}, err
	}
	log.Info("transcription complete", "model", svc.Model(), "words", len(transcript.Words), "elapsed", time.Since(started).Round(time.Second))

	if err := store.Put(ctx, fingerprint, svc.Model(), transcript); err != nil {
		log.Warn("transcript cache write failed", "error", err)
	}
	return transcript, nil
}

// progressFunc returns a (done, total) callback rendering an interactive
// progress bar when stderr is a terminal, plus a finish func that stops the
// renderer. Both are no-ops otherwise.
func progressFunc(label string) (func(done, total int), func()) {
	if !shouldColorize(os.Stderr) {
		return func(int, int) {}, func() {}
	}

	pw := progress.NewWriter()
	pw.SetOutputWriter(os.Stderr)
	pw.SetUpdateFrequency(200 * time.Millisecond)
	pw.SetTrackerLength(30)
	pw.Style().Visibility.ETA = true

	var tracker *progress.Tracker
	update := func(done, total int) {
		if tracker == nil {
			tracker = &progress.Tracker{Message: label, Total: int64(total)}
			pw.AppendTracker(tracker)
			go pw.Render()
		}
		tracker.SetValue(int64(done))
	}
	finish := func() {
		if tracker == nil {
			return
		}
		tracker.MarkAsDone()
		pw.Stop()
		for pw.IsRenderInProgress() {
			time.Sleep(10 * time.Millisecond)
		}
	}
	return update, finish
}
