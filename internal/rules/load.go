package rules

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"subfix/internal/services"
)

// Column names of the rule table header.
const (
	ColumnMatch   = "match"
	ColumnReplace = "replace"
	ColumnFlags   = "flags"
)

const utf8BOM = "\ufeff"

// LoadFile reads the rule table at path.
func LoadFile(path string) ([]Rule, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "rules", "open", path, err)
	}
	defer file.Close()

	rules, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("rules: %s: %w", path, err)
	}
	return rules, nil
}

// Load parses a rule table. The first record is the header; the match and
// replace columns are required, flags is optional. A missing or non-numeric
// flags value becomes 0. Blank rows are skipped and short rows read missing
// cells as empty.
func Load(r io.Reader) ([]Rule, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, services.Wrap(services.ErrConfiguration, "rules", "parse", "rule table is empty", nil)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "rules", "parse header", "", err)
	}

	columns, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var rules []Rule
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "rules", "parse row", "", err)
		}
		if blankRecord(record) {
			continue
		}
		rules = append(rules, Rule{
			Index:       len(rules) + 1,
			Pattern:     cell(record, columns[ColumnMatch]),
			Replacement: cell(record, columns[ColumnReplace]),
			Flags:       parseFlags(cell(record, columns[ColumnFlags])),
		})
	}
	return rules, nil
}

func indexColumns(header []string) (map[string]int, error) {
	columns := map[string]int{ColumnMatch: -1, ColumnReplace: -1, ColumnFlags: -1}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		if idx, ok := columns[name]; ok && idx == -1 {
			columns[name] = i
		}
	}
	var missing []string
	for _, required := range []string{ColumnMatch, ColumnReplace} {
		if columns[required] == -1 {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, services.Wrap(services.ErrConfiguration, "rules", "parse header",
			fmt.Sprintf("missing column(s) %s; header must name match,replace,flags", strings.Join(missing, ", ")), nil)
	}
	return columns, nil
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

func blankRecord(record []string) bool {
	for _, value := range record {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

func parseFlags(value string) int {
	flags, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || flags < 0 {
		return 0
	}
	return flags
}
