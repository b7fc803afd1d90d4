// Package services defines shared utilities consumed by the workflow and the
// external integrations (AssemblyAI, the transcript cache, the prompt).
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, and media identifiers
//     for logging.
//   - Structured error markers plus the Wrap helper so the CLI can tell
//     configuration mistakes from remote failures.
//
// Use these helpers when wiring new logic so error handling and observability
// stay uniform across the tool.
package services
