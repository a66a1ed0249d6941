package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds for pipeline failures. Every unrecoverable error
// reported by a command wraps exactly one of these so main can classify it
// without string matching.
var (
	// ErrInputNotFound marks a missing media, word-list, or review file.
	// Reported before any model or external tool is invoked.
	ErrInputNotFound = errors.New("input not found")
	// ErrUnsupportedMedia marks input the transcription adapter cannot decode.
	ErrUnsupportedMedia = errors.New("unsupported media")
	// ErrAnalysis marks a model call that errored or produced nothing usable.
	ErrAnalysis = errors.New("analysis failure")
	// ErrReviewParse marks a malformed review CSV. The whole read is rejected;
	// there is no best-effort row recovery.
	ErrReviewParse = errors.New("review parse error")
	// ErrEditorTool marks a non-zero exit from the external media tool.
	ErrEditorTool = errors.New("editor tool failure")
	// ErrConfiguration marks unusable configuration or a missing external binary.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided kind for later classification. The kind should be one
// of the exported sentinel errors above.
func Wrap(kind error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if kind == nil {
		kind = ErrAnalysis
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", kind, detail, err)
	}
	return fmt.Errorf("%w: %s", kind, detail)
}

// ExitCode maps an error to the process exit code the CLI should use.
// All failures are single-shot batch failures; the codes exist so wrapper
// scripts can distinguish operator mistakes from tool breakage.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInputNotFound), errors.Is(err, ErrConfiguration):
		return 2
	case errors.Is(err, ErrReviewParse):
		return 3
	case errors.Is(err, ErrUnsupportedMedia), errors.Is(err, ErrAnalysis):
		return 4
	case errors.Is(err, ErrEditorTool):
		return 5
	default:
		return 1
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
