package fixup

import (
	"context"

	"subfix/internal/rules"
)

// DecisionKind identifies the operator's answer to a proposal.
type DecisionKind int

const (
	DecisionAccept DecisionKind = iota
	DecisionReject
	DecisionEdit
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionAccept:
		return "accept"
	case DecisionReject:
		return "reject"
	case DecisionEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Decision is the result of one confirmation. Text is only meaningful for
// DecisionEdit.
type Decision struct {
	Kind DecisionKind
	Text string
}

// Accept takes the suggested line.
func Accept() Decision { return Decision{Kind: DecisionAccept} }

// Reject keeps the line as it was before the rule.
func Reject() Decision { return Decision{Kind: DecisionReject} }

// Edit replaces the line with text. Empty text behaves like Reject.
func Edit(text string) Decision { return Decision{Kind: DecisionEdit, Text: text} }

// Proposal is a single suggested change awaiting confirmation.
type Proposal struct {
	Rule rules.Rule
	// LineIndex is the 0-based position of the line in the document.
	LineIndex int
	Line      string
	Suggested string
}

// Confirmer asks the operator about a proposal. Returning an error aborts the
// run; implementations return one when input is exhausted or ctx is done.
type Confirmer interface {
	Confirm(ctx context.Context, proposal Proposal) (Decision, error)
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context, proposal Proposal) (Decision, error)

func (f ConfirmerFunc) Confirm(ctx context.Context, proposal Proposal) (Decision, error) {
	return f(ctx, proposal)
}

// Reporter is told about rules that cannot be used.
type Reporter interface {
	ReportInvalidRule(rule rules.Rule, err error)
}
