package fixup

import "subfix/internal/rules"

// RuleStats counts what happened to one rule during a run.
type RuleStats struct {
	Rule     rules.Rule
	Matched  int
	Accepted int
	Rejected int
	Edited   int
	// Errored counts every line the rule was skipped on because it is invalid.
	Errored int
}

// Stats summarises a run.
type Stats struct {
	Lines        int
	ChangedLines int
	Rules        []RuleStats
}

// Totals sums the per-rule counters.
func (s Stats) Totals() RuleStats {
	var total RuleStats
	for _, rs := range s.Rules {
		total.Matched += rs.Matched
		total.Accepted += rs.Accepted
		total.Rejected += rs.Rejected
		total.Edited += rs.Edited
		total.Errored += rs.Errored
	}
	return total
}

// InvalidRules returns the rules that were skipped at least once.
func (s Stats) InvalidRules() []rules.Rule {
	var invalid []rules.Rule
	for _, rs := range s.Rules {
		if rs.Errored > 0 {
			invalid = append(invalid, rs.Rule)
		}
	}
	return invalid
}
