package rules

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// MatchTimeout bounds a single match or replace call. The engine backtracks,
// so a pathological pattern fails with an error instead of hanging the
// session.
const MatchTimeout = 2 * time.Second

// Compiled is a rule whose pattern and replacement have been translated and
// validated. It is safe for concurrent use.
type Compiled struct {
	Rule
	re       *regexp2.Regexp
	template string
}

// CompileError reports a rule that cannot be used. The rule is skipped by the
// fixup engine.
type CompileError struct {
	Rule Rule
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("rule %d (%s): %v", e.Rule.Index, e.Rule.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Compile validates and translates a rule.
func Compile(rule Rule) (*Compiled, error) {
	source, groups, err := translatePattern(rule.Pattern, rule.Flags)
	if err != nil {
		return nil, &CompileError{Rule: rule, Err: err}
	}
	re, err := regexp2.Compile(source, regexp2.None)
	if err != nil {
		return nil, &CompileError{Rule: rule, Err: err}
	}
	re.MatchTimeout = MatchTimeout
	template, err := translateTemplate(rule.Replacement, groups)
	if err != nil {
		return nil, &CompileError{Rule: rule, Err: err}
	}
	return &Compiled{Rule: rule, re: re, template: template}, nil
}

// Match reports whether the rule pattern occurs anywhere in line.
func (c *Compiled) Match(line string) (bool, error) {
	matched, err := c.re.MatchString(line)
	if err != nil {
		return false, fmt.Errorf("match rule %d: %w", c.Index, err)
	}
	return matched, nil
}

// Replace substitutes every non-overlapping match in line.
func (c *Compiled) Replace(line string) (string, error) {
	replaced, err := c.re.Replace(line, c.template, -1, -1)
	if err != nil {
		return line, fmt.Errorf("replace rule %d: %w", c.Index, err)
	}
	return replaced, nil
}

// Apply returns the substituted line and whether the pattern matched at all.
func (c *Compiled) Apply(line string) (string, bool, error) {
	matched, err := c.Match(line)
	if err != nil || !matched {
		return line, false, err
	}
	replaced, err := c.Replace(line)
	if err != nil {
		return line, false, err
	}
	return replaced, true, nil
}

// Source returns the translated pattern handed to the regex engine.
func (c *Compiled) Source() string { return c.re.String() }
