// Package main hosts the subfix CLI entrypoint and command graph.
//
// The Cobra command tree maps terminal invocations onto the workflow runner
// (run, apply), rule inspection, preflight checks, and configuration
// scaffolding. Configuration resolution and logger construction live in the
// shared command context so subcommands only deal with their own flags and
// output.
package main
