package rules

import (
	"fmt"
	"strconv"
	"strings"
)

// groupIndex records capturing groups in the order their opening parenthesis
// appears, which is the numbering replacement templates use.
type groupIndex struct {
	count int
	names map[string]int
}

func (g groupIndex) byName(name string) (int, bool) {
	n, ok := g.names[name]
	return n, ok
}

const asciiWordClass = `[A-Za-z0-9_]`

// asciiShorthands replaces Unicode-aware shorthands outside a character class
// when FlagASCII is set.
var asciiShorthands = map[rune]string{
	'w': asciiWordClass,
	'W': `[^A-Za-z0-9_]`,
	'd': `[0-9]`,
	'D': `[^0-9]`,
	's': `[ \t\n\r\f\v]`,
	'S': `[^ \t\n\r\f\v]`,
	'b': `(?:(?<=` + asciiWordClass + `)(?!` + asciiWordClass + `)|(?<!` + asciiWordClass + `)(?=` + asciiWordClass + `))`,
	'B': `(?:(?<=` + asciiWordClass + `)(?=` + asciiWordClass + `)|(?<!` + asciiWordClass + `)(?!` + asciiWordClass + `))`,
}

// asciiClassMembers is the same rewrite inside a character class.
var asciiClassMembers = map[rune]string{
	'w': `A-Za-z0-9_`,
	'd': `0-9`,
	's': ` \t\n\r\f\v`,
}

// rewritePattern turns named groups into plain capturing groups so numbering
// stays left to right, resolves (?P=name) back-references to numbers, maps
// \Z to an absolute end-of-input anchor, and applies the ASCII shorthand
// rewrite when ascii is set.
func rewritePattern(pattern string, ascii bool) (string, groupIndex, error) {
	groups := groupIndex{names: make(map[string]int)}
	var out strings.Builder
	out.Grow(len(pattern))

	runes := []rune(pattern)
	inClass := false
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\':
			if i+1 >= len(runes) {
				return "", groups, fmt.Errorf("bad escape (end of pattern) at position %d", i)
			}
			i++
			if err := writePatternEscape(&out, runes[i], inClass, ascii); err != nil {
				return "", groups, err
			}
		case inClass:
			out.WriteRune(r)
			if r == ']' {
				inClass = false
			}
		case r == '[':
			inClass = true
			out.WriteRune(r)
			if i+1 < len(runes) && runes[i+1] == '^' {
				i++
				out.WriteRune(runes[i])
			}
			if i+1 < len(runes) && runes[i+1] == ']' {
				i++
				out.WriteRune(runes[i])
			}
		case r == '(':
			end, err := rewriteGroup(&out, runes, i, &groups)
			if err != nil {
				return "", groups, err
			}
			i = end
		default:
			out.WriteRune(r)
		}
	}
	return out.String(), groups, nil
}

func writePatternEscape(out *strings.Builder, next rune, inClass, ascii bool) error {
	if ascii {
		if inClass {
			if members, ok := asciiClassMembers[next]; ok {
				out.WriteString(members)
				return nil
			}
			if next == 'W' || next == 'D' || next == 'S' {
				return fmt.Errorf(`\%c inside a character class is not supported with the ASCII flag`, next)
			}
		} else if replacement, ok := asciiShorthands[next]; ok {
			out.WriteString(replacement)
			return nil
		}
	}
	if next == 'Z' && !inClass {
		out.WriteString(`\z`)
		return nil
	}
	out.WriteRune('\\')
	out.WriteRune(next)
	return nil
}

// rewriteGroup handles the group opened at runes[start] and returns the index
// of the last rune it consumed.
func rewriteGroup(out *strings.Builder, runes []rune, start int, groups *groupIndex) (int, error) {
	rest := string(runes[start+1:])
	switch {
	case strings.HasPrefix(rest, "?P<"):
		return openNamedGroup(out, runes, start, start+4, groups)
	case strings.HasPrefix(rest, "?<") && !strings.HasPrefix(rest, "?<=") && !strings.HasPrefix(rest, "?<!"):
		return openNamedGroup(out, runes, start, start+3, groups)
	case strings.HasPrefix(rest, "?P="):
		end := indexRune(runes, start+4, ')')
		if end < 0 {
			return 0, fmt.Errorf("missing ), unterminated name at position %d", start)
		}
		name := string(runes[start+4 : end])
		n, ok := groups.byName(name)
		if !ok {
			return 0, fmt.Errorf("unknown group name %q at position %d", name, start)
		}
		out.WriteString(`(?:\` + strconv.Itoa(n) + `)`)
		return end, nil
	case strings.HasPrefix(rest, "?#"):
		end := indexRune(runes, start+2, ')')
		if end < 0 {
			return 0, fmt.Errorf("missing ), unterminated comment at position %d", start)
		}
		return end, nil
	case strings.HasPrefix(rest, "?"):
		out.WriteRune('(')
		return start, nil
	default:
		groups.count++
		out.WriteRune('(')
		return start, nil
	}
}

func openNamedGroup(out *strings.Builder, runes []rune, start, nameStart int, groups *groupIndex) (int, error) {
	end := indexRune(runes, nameStart, '>')
	if end < 0 {
		return 0, fmt.Errorf("missing >, unterminated name at position %d", start)
	}
	name := string(runes[nameStart:end])
	if !isGroupName(name) {
		return 0, fmt.Errorf("bad character in group name %q at position %d", name, start)
	}
	if _, dup := groups.names[name]; dup {
		return 0, fmt.Errorf("redefinition of group name %q at position %d", name, start)
	}
	groups.count++
	groups.names[name] = groups.count
	out.WriteRune('(')
	return end, nil
}

func indexRune(runes []rune, from int, target rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}

func isGroupName(name string) bool {
	if name == "" || isDigit([]rune(name)[0]) {
		return false
	}
	for _, r := range name {
		if r != '_' && !isDigit(r) && !isASCIILetter(r) {
			return false
		}
	}
	return true
}
