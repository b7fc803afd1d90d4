// Package boostwords loads the optional vocabulary hints passed to the
// transcription service.
//
// The list is normalized rather than passed through verbatim: each line is
// trimmed, a leading byte-order mark is dropped, blank lines are skipped, and
// entries that differ only by case folding (Straße and STRASSE) collapse to
// the first spelling seen. Words are otherwise not interpreted.
package boostwords

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"

	"subfix/internal/services"
)

// LoadFile reads one boost word or phrase per line from path.
func LoadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "boostwords", "open", path, err)
	}
	defer file.Close()
	return Load(file)
}

// Load trims each line, skips blanks, and drops case-insensitive duplicates
// while keeping the first spelling seen.
func Load(r io.Reader) ([]string, error) {
	fold := cases.Fold()
	seen := make(map[string]struct{})
	var words []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if word == "" {
			continue
		}
		key := fold.String(word)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "boostwords", "read", "", err)
	}
	return words, nil
}
