// Package prompt implements the interactive confirmation used by the fixup
// engine on a terminal.
//
// Each proposal is announced with the rule, the existing line, and the
// suggested line, followed by a [Yne] prompt. An empty answer accepts, an
// answer starting with n rejects, and an answer starting with e asks for the
// replacement line. Colour output follows prompt.color and NO_COLOR; an
// optional inline diff highlights what the rule would change.
package prompt
