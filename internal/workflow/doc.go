// Package workflow orchestrates one caption fixup session.
//
// Runner.Run takes a media reference through the whole pipeline: load the
// rule table and boost words, take the per-media run lock, transcribe (or
// reuse a cached transcript), write the untouched original, run the
// interactive rule engine, and write the fixed captions. Runner.Apply runs the
// same engine over an existing SRT file without transcription.
//
// The original artifact is written before the engine starts, so a session the
// operator abandons still leaves the paid-for transcript on disk.
package workflow
