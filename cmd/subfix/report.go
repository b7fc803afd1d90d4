package main

import (
	"fmt"
	"io"
	"strings"

	"subfix/internal/preflight"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

type checkStatus int

const (
	checkOK checkStatus = iota
	checkWarn
	checkFail
)

func statusOf(r preflight.Result) checkStatus {
	switch {
	case !r.Passed:
		return checkFail
	case r.Warning:
		return checkWarn
	default:
		return checkOK
	}
}

func (s checkStatus) tag() string {
	switch s {
	case checkFail:
		return "[FAIL]"
	case checkWarn:
		return "[WARN]"
	default:
		return "[ OK ]"
	}
}

func (s checkStatus) color() string {
	switch s {
	case checkFail:
		return ansiRed
	case checkWarn:
		return ansiYellow
	default:
		return ansiGreen
	}
}

// writeCheckReport prints one aligned line per result under a title and
// returns how many checks failed.
func writeCheckReport(w io.Writer, title string, results []preflight.Result, colorize bool) int {
	header := strings.TrimSpace(title)
	if colorize {
		header = ansiBold + header + ansiReset
	}
	fmt.Fprintln(w, header)

	width := 0
	for _, r := range results {
		width = max(width, len(r.Name)+1)
	}

	failed := 0
	for _, r := range results {
		status := statusOf(r)
		if status == checkFail {
			failed++
		}
		tag := status.tag()
		if colorize {
			tag = status.color() + tag + ansiReset
		}
		line := fmt.Sprintf("  %s %-*s", tag, width, r.Name+":")
		if r.Detail != "" {
			line += " " + r.Detail
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	return failed
}
