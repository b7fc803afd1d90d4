package fixup

import (
	"context"
	"fmt"
	"log/slog"

	"subfix/internal/logging"
	"subfix/internal/rules"
)

// Option configures ApplyRules.
type Option func(*engine)

// WithLogger routes decision and skip logging to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithReporter receives a report every time an invalid rule is skipped.
func WithReporter(reporter Reporter) Option {
	return func(e *engine) {
		e.reporter = reporter
	}
}

type compiledRule struct {
	compiled *rules.Compiled
	err      error
	warned   bool
}

type engine struct {
	logger   *slog.Logger
	reporter Reporter
	confirm  Confirmer
	rules    []compiledRule
	stats    Stats
}

// ApplyRules runs every rule over every line and returns the fixed lines.
// The only error path is a failed confirmation, in which case no lines are
// returned and stats reflect the work done so far.
func ApplyRules(ctx context.Context, lines []string, table []rules.Rule, confirmer Confirmer, opts ...Option) ([]string, Stats, error) {
	if confirmer == nil {
		return nil, Stats{}, fmt.Errorf("fixup: confirmer is required")
	}
	e := &engine{
		logger:  logging.NewNop(),
		confirm: confirmer,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.NewComponentLogger(logging.WithContext(ctx, e.logger), "fixup")
	e.compile(table)
	e.stats.Lines = len(lines)

	fixed := make([]string, 0, len(lines))
	for idx, line := range lines {
		result, err := e.fixLine(ctx, idx, line)
		if err != nil {
			return nil, e.stats, err
		}
		if result != line {
			e.stats.ChangedLines++
		}
		fixed = append(fixed, result)
	}

	totals := e.stats.Totals()
	e.logger.Debug("rule application finished",
		logging.Int("lines", e.stats.Lines),
		logging.Int("changed_lines", e.stats.ChangedLines),
		logging.Int("matched", totals.Matched),
		logging.Int("accepted", totals.Accepted),
		logging.Int("rejected", totals.Rejected),
		logging.Int("edited", totals.Edited),
		logging.Int("errored", totals.Errored),
	)
	return fixed, e.stats, nil
}

func (e *engine) compile(table []rules.Rule) {
	e.rules = make([]compiledRule, len(table))
	e.stats.Rules = make([]RuleStats, len(table))
	for i, rule := range table {
		compiled, err := rules.Compile(rule)
		e.rules[i] = compiledRule{compiled: compiled, err: err}
		e.stats.Rules[i].Rule = rule
	}
}

func (e *engine) fixLine(ctx context.Context, idx int, line string) (string, error) {
	current := line
	for i := range e.rules {
		cr := &e.rules[i]
		stats := &e.stats.Rules[i]
		rule := stats.Rule

		if cr.err != nil {
			stats.Errored++
			e.skipInvalid(cr, rule, idx)
			continue
		}

		suggested, matched, err := cr.compiled.Apply(current)
		if err != nil {
			cr.err = err
			stats.Errored++
			e.skipInvalid(cr, rule, idx)
			continue
		}
		if !matched {
			continue
		}
		stats.Matched++

		if err := ctx.Err(); err != nil {
			return "", err
		}
		decision, err := e.confirm.Confirm(ctx, Proposal{
			Rule:      rule,
			LineIndex: idx,
			Line:      current,
			Suggested: suggested,
		})
		if err != nil {
			return "", fmt.Errorf("fixup: confirm rule %d on line %d: %w", rule.Index, idx+1, err)
		}

		next, reason := current, ""
		switch {
		case decision.Kind == DecisionEdit && decision.Text != "":
			next = decision.Text
			stats.Edited++
			reason = "operator supplied text"
		case decision.Kind == DecisionEdit:
			stats.Rejected++
			reason = "empty edit keeps line"
		case decision.Kind == DecisionReject:
			stats.Rejected++
			reason = "operator rejected"
		default:
			next = suggested
			stats.Accepted++
			reason = "operator accepted"
		}

		attrs := logging.DecisionAttrs("rule_application", decision.Kind.String(), reason)
		attrs = append(attrs, logging.RuleAttrs(rule.Index, rule.Pattern)...)
		attrs = append(attrs,
			logging.Int(logging.FieldLineIndex, idx),
			logging.Bool("changed", next != current),
		)
		e.logger.Debug("rule decision", logging.Args(attrs...)...)
		current = next
	}
	return current, nil
}

// skipInvalid tells the operator about the rule on every line it is skipped.
// The log carries one warning per rule; repeats go to debug.
func (e *engine) skipInvalid(cr *compiledRule, rule rules.Rule, idx int) {
	if e.reporter != nil {
		e.reporter.ReportInvalidRule(rule, cr.err)
	}
	if cr.warned {
		e.logger.Debug("skipping invalid rule",
			logging.Int(logging.FieldRuleIndex, rule.Index),
			logging.Int(logging.FieldLineIndex, idx),
		)
		return
	}
	cr.warned = true
	attrs := append(logging.RuleAttrs(rule.Index, rule.Pattern),
		logging.Int(logging.FieldLineIndex, idx),
		logging.Error(cr.err),
		logging.String(logging.FieldErrorHint, "fix the pattern or replacement in the rule table"),
		logging.String(logging.FieldImpact, "rule is skipped on this and every later line"),
	)
	logging.WarnWithContext(e.logger, "invalid rule skipped", "rule_invalid", attrs...)
}
