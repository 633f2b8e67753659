package urlmap

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// defaultGroupPattern matches a single path segment.
const defaultGroupPattern = "[^/]+"

// templateToPattern translates the brace form "/book/{id:int}/{detail}"
// into an anchored named-group expression. Text outside braces is literal.
func templateToPattern(tpl string) (string, error) {
	idxs, err := braceIndices(tpl)
	if err != nil {
		return "", err
	}

	var (
		pattern bytes.Buffer
		names   []string
		end     int
	)

	pattern.WriteByte('^')

	for i := 0; i < len(idxs); i += 2 {
		raw := tpl[end:idxs[i]]
		end = idxs[i+1]

		name, patt, hasPattern := strings.Cut(tpl[idxs[i]+1:end-1], ":")
		if name == "" {
			return "", fmt.Errorf("%w in %q from %q", ErrUnnamedGroup, tpl[idxs[i]:end], tpl)
		}
		if hasPattern {
			patt = expandMacro(patt)
		} else {
			patt = defaultGroupPattern
		}

		fmt.Fprintf(&pattern, "%s(?P<%s>%s)", regexp.QuoteMeta(raw), name, patt)
		names = append(names, name)
	}

	pattern.WriteString(regexp.QuoteMeta(tpl[end:]))
	pattern.WriteByte('$')

	if err := checkDuplicateGroups(names); err != nil {
		return "", err
	}

	return pattern.String(), nil
}

// braceIndices returns the start and end+1 indices of each top-level
// {...} pair in s. Returns an error if braces are unbalanced.
func braceIndices(s string) ([]int, error) {
	var (
		idxs  []int
		level int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if level++; level == 1 {
				idxs = append(idxs, i)
			}
		case '}':
			if level--; level == 0 {
				idxs = append(idxs, i+1)
			} else if level < 0 {
				return nil, fmt.Errorf("%w: unbalanced braces in %q", ErrInvalidPattern, s)
			}
		}
	}
	if level != 0 {
		return nil, fmt.Errorf("%w: unbalanced braces in %q", ErrInvalidPattern, s)
	}
	return idxs, nil
}

// checkDuplicateGroups returns an error if any group name is repeated.
func checkDuplicateGroups(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return fmt.Errorf("%w %q", ErrDuplicateGroup, n)
		}
		seen[n] = true
	}
	return nil
}
