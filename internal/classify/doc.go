// Package classify wraps an external zero-shot text classification endpoint.
//
// Zero-shot classification scores arbitrary label strings against input text
// without topic-specific training. The pipeline only depends on the
// (label, score) contract, so any endpoint speaking the Hugging Face
// inference shape works; everything about the model itself is opaque.
package classify
