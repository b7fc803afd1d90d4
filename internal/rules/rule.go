package rules

import "fmt"

// Rule is one automated correction: a regex pattern, a replacement template,
// and the regex option bitmask. Rules are immutable once loaded.
type Rule struct {
	// Index is the 1-based position of the rule in its table.
	Index       int
	Pattern     string
	Replacement string
	Flags       int
}

// String renders the rule the way the confirmation prompt announces it.
func (r Rule) String() string {
	return fmt.Sprintf("%s -> %s (flag: %d)", r.Pattern, r.Replacement, r.Flags)
}
