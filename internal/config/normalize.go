package config

import (
	"fmt"
	"os"
	"strings"

	"scrub/internal/transcribe"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeWhisperX()
	c.normalizeClassifier()
	c.normalizeEditor()
	c.normalizeDetector()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeWhisperX() {
	c.WhisperX.Model = strings.TrimSpace(c.WhisperX.Model)
	if c.WhisperX.Model == "" {
		c.WhisperX.Model = transcribe.DefaultModel
	}
	c.WhisperX.VADMethod = strings.ToLower(strings.TrimSpace(c.WhisperX.VADMethod))
	if c.WhisperX.VADMethod == "" {
		c.WhisperX.VADMethod = transcribe.VADMethodSilero
	}
	c.WhisperX.HFToken = strings.TrimSpace(c.WhisperX.HFToken)
	if c.WhisperX.HFToken == "" {
		if value, ok := os.LookupEnv("HUGGING_FACE_HUB_TOKEN"); ok {
			c.WhisperX.HFToken = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("HF_TOKEN"); ok {
			c.WhisperX.HFToken = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeClassifier() {
	c.Classifier.BaseURL = strings.TrimSpace(c.Classifier.BaseURL)
	c.Classifier.APIToken = strings.TrimSpace(c.Classifier.APIToken)
	if c.Classifier.APIToken == "" {
		if value, ok := os.LookupEnv("HF_API_TOKEN"); ok {
			c.Classifier.APIToken = strings.TrimSpace(value)
		}
	}
	if c.Classifier.TimeoutSeconds <= 0 {
		c.Classifier.TimeoutSeconds = defaultClassifierTimeoutSeconds
	}
}

func (c *Config) normalizeEditor() {
	c.Editor.AudioBitrate = strings.TrimSpace(c.Editor.AudioBitrate)
	c.Editor.FFmpegBinary = strings.TrimSpace(c.Editor.FFmpegBinary)
	if c.Editor.FFmpegBinary == "" {
		c.Editor.FFmpegBinary = defaultFFmpegBinary
	}
}

func (c *Config) normalizeDetector() {
	c.Detector.Command = strings.TrimSpace(c.Detector.Command)
	if c.Detector.FrameInterval <= 0 {
		c.Detector.FrameInterval = defaultFrameInterval
	}
	if c.Detector.Threshold <= 0 {
		c.Detector.Threshold = defaultDetectorThreshold
	}
	for i, class := range c.Detector.UnsafeClasses {
		c.Detector.UnsafeClasses[i] = strings.ToUpper(strings.TrimSpace(class))
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
