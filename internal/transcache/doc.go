// Package transcache persists word-level transcripts in a local SQLite
// database keyed by media fingerprint and model name.
//
// Transcription is the slowest step of an analysis run by a wide margin.
// The same audiobook is commonly analyzed more than once (word pass, then
// topic pass, then again with an adjusted list), so caching the transcript
// turns every run after the first into seconds of CSV work.
package transcache
