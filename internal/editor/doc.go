// Package editor applies approved review intervals to media files through
// ffmpeg.
//
// Audio intervals are muted with per-interval volume filters; video
// intervals are blurred with a single boxblur gated by a combined enable
// expression. Either way the whole review set goes into one ffmpeg
// invocation so a multi-gigabyte file is decoded and re-encoded exactly
// once, and output lands at the final path only after a clean exit.
package editor
