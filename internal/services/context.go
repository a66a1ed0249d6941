package services

import "context"

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	componentKey contextKey = "component"
	mediaKey     contextKey = "media"
)

// WithRunID annotates context with the correlation identifier for one
// command invocation.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the correlation identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithComponent annotates context with the pipeline component name.
func WithComponent(ctx context.Context, component string) context.Context {
	if component == "" {
		return ctx
	}
	return context.WithValue(ctx, componentKey, component)
}

// ComponentFromContext returns the component name if present.
func ComponentFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(componentKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithMedia annotates context with the media file being processed.
func WithMedia(ctx context.Context, path string) context.Context {
	if path == "" {
		return ctx
	}
	return context.WithValue(ctx, mediaKey, path)
}

// MediaFromContext returns the media path if present.
func MediaFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(mediaKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
