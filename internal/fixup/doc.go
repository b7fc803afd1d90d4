// Package fixup applies an ordered rule table to caption lines under
// operator control.
//
// ApplyRules walks every line and, within a line, every rule in table order.
// Each rule sees the line as left by the rules before it. A rule that matches
// produces a Proposal, and the injected Confirmer decides whether the
// suggestion is accepted, rejected, or replaced by hand-edited text. Rules
// whose pattern or template cannot be compiled, or that fail while matching,
// are reported on every line they are skipped; they never stop the run.
//
// The output always has the same number of lines as the input, in the same
// order. The input slice is not modified.
package fixup
