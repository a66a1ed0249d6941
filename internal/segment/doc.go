// Package segment converts model output into the canonical list of time
// ranges the rest of the pipeline operates on.
//
// Two matching modes produce MatchRecords: word mode scans word-level
// transcription timestamps for banned phrases, topic mode classifies
// fixed-duration transcript chunks against a topic list. Frame-based
// detectors feed point hits through MergeDetections instead. All three
// converge on the same ReviewSet shape, which the review store serializes
// for human approval.
package segment
