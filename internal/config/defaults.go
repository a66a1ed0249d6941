package config

import (
	"scrub/internal/classify"
	"scrub/internal/editor"
	"scrub/internal/transcribe"
)

const (
	defaultWorkDir                  = "~/.local/share/scrub/work"
	defaultCacheDir                 = "~/.cache/scrub"
	defaultLogDir                   = "~/.local/share/scrub/logs"
	defaultLogFormat                = "console"
	defaultLogLevel                 = "info"
	defaultClassifierTimeoutSeconds = 60
	defaultChunkSeconds             = 90.0
	defaultConfidenceFloor          = 0.70
	defaultFrameInterval            = 1.0
	defaultDetectorThreshold        = 0.5
	defaultFFmpegBinary             = "ffmpeg"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:  defaultWorkDir,
			CacheDir: defaultCacheDir,
			LogDir:   defaultLogDir,
		},
		WhisperX: WhisperX{
			Model:     transcribe.DefaultModel,
			VADMethod: transcribe.VADMethodSilero,
		},
		Classifier: Classifier{
			BaseURL:        classify.DefaultBaseURL,
			TimeoutSeconds: defaultClassifierTimeoutSeconds,
		},
		Analysis: Analysis{
			ChunkSeconds:    defaultChunkSeconds,
			ConfidenceFloor: defaultConfidenceFloor,
		},
		Editor: Editor{
			AudioBitrate: editor.DefaultAudioBitrate,
			BlurStrength: editor.DefaultBlurStrength,
			FFmpegBinary: defaultFFmpegBinary,
		},
		Detector: Detector{
			FrameInterval: defaultFrameInterval,
			Threshold:     defaultDetectorThreshold,
		},
		Cache: Cache{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
