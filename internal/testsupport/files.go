package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes content to dir/name, creating dir as needed, and returns
// the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteRules writes a rule table with the standard header. Each row is
// "match,replace,flags" already CSV-encoded.
func WriteRules(t testing.TB, dir string, rows ...string) string {
	t.Helper()
	return WriteFile(t, dir, "rules.csv", "match,replace,flags\n"+strings.Join(rows, "\n")+"\n")
}

// ReadFile returns the contents of path or fails the test.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// SampleSRT is a two-cue caption document with a common transcription slip.
const SampleSRT = "1\n00:00:00,000 --> 00:00:02,000\nI teh best\n\n2\n00:00:02,500 --> 00:00:04,000\nhello world\n"
