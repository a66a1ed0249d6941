// Package transcribe wraps WhisperX speech recognition behind a narrow
// Transcriber interface.
//
// The service extracts the audio stream with ffmpeg, runs WhisperX through
// uvx with word-level alignment enabled, and parses the resulting JSON into
// an ordered word list. Everything downstream treats the model as a black
// box; only the Transcript contract matters.
package transcribe
