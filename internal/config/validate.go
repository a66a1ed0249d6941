package config

import (
	"errors"
	"fmt"

	"scrub/internal/transcribe"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateWhisperX(); err != nil {
		return err
	}
	if err := c.validateClassifier(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateEditor(); err != nil {
		return err
	}
	if err := c.validateDetector(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateWhisperX() error {
	switch c.WhisperX.VADMethod {
	case transcribe.VADMethodSilero, transcribe.VADMethodPyannote:
	default:
		return fmt.Errorf("whisperx.vad_method must be %q or %q", transcribe.VADMethodSilero, transcribe.VADMethodPyannote)
	}
	if c.WhisperX.VADMethod == transcribe.VADMethodPyannote && c.WhisperX.HFToken == "" {
		return errors.New("whisperx.hf_token is required for the pyannote VAD method. Set HUGGING_FACE_HUB_TOKEN or edit the config")
	}
	return nil
}

func (c *Config) validateClassifier() error {
	if c.Classifier.TimeoutSeconds <= 0 {
		return errors.New("classifier.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.ChunkSeconds <= 0 {
		return errors.New("analysis.chunk_seconds must be positive")
	}
	// Zero would be silently promoted to the default downstream, so reject
	// it here instead of accepting a value that cannot take effect.
	if c.Analysis.ConfidenceFloor <= 0 || c.Analysis.ConfidenceFloor > 1 {
		return errors.New("analysis.confidence_floor must be greater than 0 and at most 1")
	}
	return nil
}

func (c *Config) validateEditor() error {
	if c.Editor.BlurStrength < 0 {
		return errors.New("editor.blur_strength must not be negative")
	}
	return nil
}

func (c *Config) validateDetector() error {
	if c.Detector.FrameInterval <= 0 {
		return errors.New("detector.frame_interval must be positive")
	}
	if c.Detector.Threshold <= 0 || c.Detector.Threshold > 1 {
		return errors.New("detector.threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}
