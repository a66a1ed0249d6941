// Package ffprobe wraps ffprobe JSON inspection of media containers.
//
// The pipeline uses it to confirm an input actually carries the stream kind
// an operation needs (audio for transcription, video for blurring) before
// handing the file to a model or a long re-encode.
package ffprobe
