package rules

import (
	"fmt"
	"strings"
)

// Regex option bits accepted in the flags column. The values match the
// option constants of the scripting tools the rule tables were first written
// for, so existing tables keep working.
const (
	FlagTemplate   = 1
	FlagIgnoreCase = 2
	FlagLocale     = 4
	FlagMultiline  = 8
	FlagDotAll     = 16
	FlagUnicode    = 32
	FlagVerbose    = 64
	FlagDebug      = 128
	FlagASCII      = 256

	knownFlags = FlagTemplate | FlagIgnoreCase | FlagLocale | FlagMultiline |
		FlagDotAll | FlagUnicode | FlagVerbose | FlagDebug | FlagASCII
)

// translatePattern applies the flag bitmask to pattern and returns the
// source handed to the regex engine together with its capturing groups.
// Shorthand classes (\w, \d, \s, \b) are Unicode-aware unless FlagASCII is
// set, in which case they are rewritten to their ASCII forms. Locale, debug
// and template bits are accepted and ignored; unknown bits are an error.
func translatePattern(pattern string, flags int) (string, groupIndex, error) {
	if flags&^knownFlags != 0 {
		return "", groupIndex{}, fmt.Errorf("unsupported regex flag bits %#x", flags&^knownFlags)
	}
	if flags&FlagASCII != 0 && flags&FlagUnicode != 0 {
		return "", groupIndex{}, fmt.Errorf("ASCII and UNICODE flags are incompatible")
	}
	if flags&FlagVerbose != 0 {
		pattern = stripVerbose(pattern)
	}
	source, groups, err := rewritePattern(pattern, flags&FlagASCII != 0)
	if err != nil {
		return "", groupIndex{}, err
	}

	var inline strings.Builder
	if flags&FlagIgnoreCase != 0 {
		inline.WriteByte('i')
	}
	if flags&FlagMultiline != 0 {
		inline.WriteByte('m')
	}
	if flags&FlagDotAll != 0 {
		inline.WriteByte('s')
	}
	if inline.Len() == 0 {
		return source, groups, nil
	}
	return "(?" + inline.String() + ")" + source, groups, nil
}

// stripVerbose removes insignificant whitespace and #-comments from a
// verbose-mode pattern. Escaped characters and character classes are kept
// verbatim.
func stripVerbose(pattern string) string {
	var out strings.Builder
	out.Grow(len(pattern))

	runes := []rune(pattern)
	inClass := false
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\':
			out.WriteRune(r)
			if i+1 < len(runes) {
				i++
				out.WriteRune(runes[i])
			}
		case inClass:
			out.WriteRune(r)
			if r == ']' {
				inClass = false
			}
		case r == '[':
			inClass = true
			out.WriteRune(r)
			// A ']' directly after '[' or '[^' is a literal member.
			if i+1 < len(runes) && runes[i+1] == '^' {
				i++
				out.WriteRune(runes[i])
			}
			if i+1 < len(runes) && runes[i+1] == ']' {
				i++
				out.WriteRune(runes[i])
			}
		case r == '#':
			for i+1 < len(runes) && runes[i+1] != '\n' {
				i++
			}
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v':
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}
