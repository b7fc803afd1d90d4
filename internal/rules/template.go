package rules

import (
	"fmt"
	"strconv"
	"strings"
)

var templateEscapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'f':  '\f',
	'v':  '\v',
	'a':  '\a',
	'b':  '\b',
	'\\': '\\',
}

// translateTemplate converts a backslash-style replacement template (\1,
// \g<1>, \g<name>, \n) into the ${n} substitution syntax of the regex
// engine. Group references are checked against groups so a rule that names a
// missing group fails up front instead of silently expanding to nothing.
func translateTemplate(template string, groups groupIndex) (string, error) {
	var out strings.Builder
	out.Grow(len(template) + 8)

	runes := []rune(template)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '$' {
			out.WriteString("$$")
			continue
		}
		if r != '\\' {
			out.WriteRune(r)
			continue
		}
		if i+1 >= len(runes) {
			return "", fmt.Errorf("bad escape (end of template) at position %d", i)
		}
		i++
		next := runes[i]
		switch {
		case next == 'g':
			end, ref, err := parseNamedReference(runes, i+1, groups)
			if err != nil {
				return "", err
			}
			out.WriteString(ref)
			i = end
		case next == '0':
			value, end := parseOctal(runes, i, 3)
			writeLiteral(&out, value)
			i = end
		case next >= '1' && next <= '9':
			if isOctalRun(runes, i, 3) {
				value, end := parseOctal(runes, i, 3)
				writeLiteral(&out, value)
				i = end
				continue
			}
			digits := string(next)
			if i+1 < len(runes) && isDigit(runes[i+1]) {
				i++
				digits += string(runes[i])
			}
			ref, err := groupByNumber(digits, groups)
			if err != nil {
				return "", err
			}
			out.WriteString(ref)
		default:
			if escaped, ok := templateEscapes[next]; ok {
				out.WriteRune(escaped)
				continue
			}
			if isASCIILetter(next) {
				return "", fmt.Errorf("bad escape \\%c at position %d", next, i-1)
			}
			// Other unknown escapes are left alone, backslash included.
			out.WriteRune('\\')
			if next == '$' {
				out.WriteString("$$")
			} else {
				out.WriteRune(next)
			}
		}
	}
	return out.String(), nil
}

func parseNamedReference(runes []rune, start int, groups groupIndex) (int, string, error) {
	if start >= len(runes) || runes[start] != '<' {
		return 0, "", fmt.Errorf("missing < after \\g at position %d", start-2)
	}
	end := start + 1
	for end < len(runes) && runes[end] != '>' {
		end++
	}
	if end >= len(runes) {
		return 0, "", fmt.Errorf("missing > in group reference at position %d", start-2)
	}
	name := string(runes[start+1 : end])
	if name == "" {
		return 0, "", fmt.Errorf("missing group name at position %d", start-2)
	}
	if allDigits(name) {
		ref, err := groupByNumber(name, groups)
		return end, ref, err
	}
	n, ok := groups.byName(name)
	if !ok {
		return 0, "", fmt.Errorf("unknown group name %q", name)
	}
	return end, "${" + strconv.Itoa(n) + "}", nil
}

func groupByNumber(digits string, groups groupIndex) (string, error) {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return "", fmt.Errorf("invalid group reference %q", digits)
	}
	if n > groups.count {
		return "", fmt.Errorf("invalid group reference %d", n)
	}
	return "${" + strconv.Itoa(n) + "}", nil
}

func writeLiteral(out *strings.Builder, r rune) {
	if r == '$' {
		out.WriteString("$$")
		return
	}
	out.WriteRune(r)
}

func parseOctal(runes []rune, start, maxDigits int) (rune, int) {
	var value rune
	end := start
	for end < len(runes) && end-start < maxDigits && runes[end] >= '0' && runes[end] <= '7' {
		value = value*8 + (runes[end] - '0')
		end++
	}
	return value, end - 1
}

func isOctalRun(runes []rune, start, n int) bool {
	if start+n > len(runes) {
		return false
	}
	for _, r := range runes[start : start+n] {
		if r < '0' || r > '7' {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}
	return s != ""
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
