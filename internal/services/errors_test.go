package services

import (
	"errors"
	"testing"
)

func TestWrapTagsKind(t *testing.T) {
	err := Wrap(ErrEditorTool, "editor", "apply", "ffmpeg exited", errors.New("exit status 1"))
	if !errors.Is(err, ErrEditorTool) {
		t.Fatalf("expected editor tool kind, got %v", err)
	}
	want := "editor tool failure: editor: apply: ffmpeg exited: exit status 1"
	if err.Error() != want {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapNilKindDefaultsToAnalysis(t *testing.T) {
	err := Wrap(nil, "transcribe", "run", "", nil)
	if !errors.Is(err, ErrAnalysis) {
		t.Fatalf("expected analysis kind, got %v", err)
	}
}

func TestExitCodes(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{Wrap(ErrInputNotFound, "cli", "analyze", "missing", nil), 2},
		{Wrap(ErrConfiguration, "cli", "startup", "ffmpeg not found", nil), 2},
		{Wrap(ErrReviewParse, "review", "read", "row 3", nil), 3},
		{Wrap(ErrUnsupportedMedia, "transcribe", "decode", "", nil), 4},
		{Wrap(ErrAnalysis, "classify", "request", "", nil), 4},
		{Wrap(ErrEditorTool, "editor", "apply", "", nil), 5},
		{errors.New("unclassified"), 1},
	}
	for _, tc := range cases {
		if got := ExitCode(tc.err); got != tc.want {
			t.Fatalf("ExitCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
