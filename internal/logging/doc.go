// Package logging assembles structured slog loggers and formatting helpers used
// across subfix.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so workflow code can automatically
// tag log lines with run IDs, stages, and media references. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the tool. Logs default to stderr so
// they never interleave with the interactive prompt on stdout.
package logging
