// Package rules loads the ordered correction table that drives caption fixup.
//
// A rule table is a CSV file with the named columns match, replace, and flags.
// Each row becomes one Rule, and row order is application order. Patterns,
// flag bitmasks, and replacement templates use the conventions operators
// already use in existing tables: flags are the integer regex
// option bits (2 = ignore case, 8 = multiline, 16 = dot-all, 64 = verbose) and
// templates reference groups as \1 or \g<name>. Compile translates both for
// a backtracking engine, so back-references and lookaround work, and \w, \d,
// \s and \b match Unicode text unless the ASCII bit (256) is set.
//
// Loading and compiling are separate steps. A table that cannot be read or
// parsed is fatal, but a single rule whose pattern fails to compile is not: the
// engine reports it and moves on.
package rules
