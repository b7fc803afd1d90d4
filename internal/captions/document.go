package captions

import "strings"

// Split breaks caption text into lines on "\n". Index, timestamp, and blank
// lines are kept so that Join(Split(s)) == s.
func Split(text string) []string {
	return strings.Split(text, "\n")
}

// Join is the inverse of Split.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}
