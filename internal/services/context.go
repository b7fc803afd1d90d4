package services

import "context"

type contextKey string

const (
	runIDKey contextKey = "run_id"
	stageKey contextKey = "stage"
	mediaKey contextKey = "media"
)

// WithRunID annotates context with the run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the workflow stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(stageKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithMedia annotates context with the media reference being processed.
func WithMedia(ctx context.Context, media string) context.Context {
	if media == "" {
		return ctx
	}
	return context.WithValue(ctx, mediaKey, media)
}

// MediaFromContext returns the media reference if present.
func MediaFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(mediaKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
