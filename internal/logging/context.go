package logging

import (
	"context"
	"log/slog"

	"subfix/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for the per-invocation run identifier.
	FieldRunID = "run_id"
	// FieldStage is the standardized structured logging key for workflow stage names.
	FieldStage = "stage"
	// FieldMedia is the standardized structured logging key for the media reference being processed.
	FieldMedia = "media"
	// FieldRuleIndex is the 1-based position of a rule in its table.
	FieldRuleIndex = "rule_index"
	// FieldRulePattern is the regex pattern of a rule.
	FieldRulePattern = "rule_pattern"
	// FieldLineIndex is the 0-based position of a caption line.
	FieldLineIndex = "line_index"
	// FieldTranscriptID is the transcription service's transcript identifier.
	FieldTranscriptID = "transcript_id"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint carries the suggested next step for the operator.
	FieldErrorHint = "error_hint"
	// FieldErrorKind carries services.Kind of a failure.
	FieldErrorKind = "error_kind"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldDecisionType, FieldDecisionResult, and FieldDecisionReason describe
	// one engine decision.
	FieldDecisionType   = "decision_type"
	FieldDecisionResult = "decision_result"
	FieldDecisionReason = "decision_reason"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStage, stage))
	}
	if media, ok := services.MediaFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldMedia, media))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
