package urlmap

import (
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"
)

// pattern is a compiled rule pattern together with what reverse
// resolution needs to render a path from group values.
type pattern struct {
	// raw is the pattern as configured (or as translated from a template).
	raw string
	// regexp matches a whole path.
	regexp *regexp.Regexp
	// names are the named groups in declaration order.
	names []string
	// index maps a group name to its 1-based position in regexp.
	index map[string]int
	// tree is the parsed expression used for rendering.
	tree *syntax.Regexp
	// reversible is false when some mandatory part of the expression has
	// no literal form, e.g. an unnamed `\d+`.
	reversible bool
}

// compilePattern compiles raw into a whole-path matcher and derives its
// group index. The expression is anchored at both ends. Compiled patterns
// are shared through the pattern cache.
func compilePattern(raw string) (*pattern, error) {
	if raw == "" {
		return nil, ErrEmptyPattern
	}
	return cachedPattern(raw, buildPattern)
}

func buildPattern(raw string) (*pattern, error) {
	// raw must parse on its own; a stray ")" would otherwise close the
	// anchoring group and leave an unanchored branch behind.
	if _, err := syntax.Parse(raw, syntax.Perl); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	expr := "^(?:" + raw + ")$"

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	var names []string
	index := make(map[string]int)
	for i, name := range re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w %q", ErrDuplicateGroup, name)
		}
		index[name] = i
		names = append(names, name)
	}

	tree, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	p := &pattern{
		raw:    raw,
		regexp: re,
		names:  names,
		index:  index,
		tree:   tree,
	}

	probe := make(map[string]string, len(names))
	for _, name := range names {
		probe[name] = ""
	}
	_, p.reversible = (&renderer{values: probe}).render(tree)

	return p, nil
}

// captures returns the values of the participating named groups when path
// matches, keyed by group name.
func (p *pattern) captures(path string) (map[string]string, bool) {
	loc := p.regexp.FindStringSubmatchIndex(path)
	if loc == nil {
		return nil, false
	}
	out := make(map[string]string, len(p.names))
	for _, name := range p.names {
		i := p.index[name]
		if loc[2*i] < 0 {
			continue
		}
		out[name] = path[loc[2*i]:loc[2*i+1]]
	}
	return out, true
}

// render builds a path from group values. Groups listed in omit may be left
// out when they sit in an optional part of the expression.
func (p *pattern) render(values map[string]string, omit map[string]bool) (string, bool) {
	if !p.reversible {
		return "", false
	}
	return (&renderer{values: values, omit: omit}).render(p.tree)
}

// verify reports whether path matches and captures exactly the substituted
// values. A group that does not participate must be omittable.
func (p *pattern) verify(path string, values map[string]string, omit map[string]bool) bool {
	got, ok := p.captures(path)
	if !ok {
		return false
	}
	for _, name := range p.names {
		v, captured := got[name]
		want, provided := values[name]
		switch {
		case captured && (!provided || v != want):
			return false
		case !captured && provided && !omit[name]:
			return false
		}
	}
	return true
}

// renderer walks a parsed expression and produces the shortest literal
// text it matches given the group values.
type renderer struct {
	values map[string]string
	omit   map[string]bool
}

func (r *renderer) render(re *syntax.Regexp) (string, bool) {
	switch re.Op {
	case syntax.OpEmptyMatch, syntax.OpBeginLine, syntax.OpEndLine,
		syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return "", true

	case syntax.OpLiteral:
		return string(re.Rune), true

	case syntax.OpCharClass:
		// A class of exactly one rune, e.g. [/].
		if len(re.Rune) == 2 && re.Rune[0] == re.Rune[1] {
			return string(re.Rune[0]), true
		}
		return "", false

	case syntax.OpCapture:
		if re.Name != "" {
			v, ok := r.values[re.Name]
			return v, ok
		}
		return r.render(re.Sub[0])

	case syntax.OpConcat:
		var b strings.Builder
		for _, sub := range re.Sub {
			s, ok := r.render(sub)
			if !ok {
				return "", false
			}
			b.WriteString(s)
		}
		return b.String(), true

	case syntax.OpAlternate:
		return r.alternate(re.Sub)

	case syntax.OpQuest, syntax.OpStar:
		return r.optional(re.Sub[0])

	case syntax.OpPlus:
		return r.render(re.Sub[0])

	case syntax.OpRepeat:
		if re.Min <= 0 {
			return r.optional(re.Sub[0])
		}
		s, ok := r.render(re.Sub[0])
		if !ok {
			return "", false
		}
		return strings.Repeat(s, re.Min), true
	}

	// OpAnyChar, OpAnyCharNotNL and multi-rune classes have no single
	// literal form.
	return "", false
}

// alternate renders the first branch that shows the most wanted groups.
func (r *renderer) alternate(subs []*syntax.Regexp) (string, bool) {
	var (
		best     string
		bestWant = -1
	)
	for _, sub := range subs {
		s, ok := r.render(sub)
		if !ok {
			continue
		}
		if n := r.wanted(sub); n > bestWant {
			best, bestWant = s, n
		}
	}
	return best, bestWant >= 0
}

// optional renders re only when it carries a group whose value must be
// shown; otherwise the part is dropped.
func (r *renderer) optional(re *syntax.Regexp) (string, bool) {
	if r.wanted(re) == 0 {
		return "", true
	}
	if s, ok := r.render(re); ok {
		return s, true
	}
	return "", true
}

// wanted counts the named groups in re that have a value which cannot be
// omitted.
func (r *renderer) wanted(re *syntax.Regexp) int {
	n := 0
	if re.Op == syntax.OpCapture && re.Name != "" {
		if _, ok := r.values[re.Name]; ok && !r.omit[re.Name] {
			n++
		}
	}
	for _, sub := range re.Sub {
		n += r.wanted(sub)
	}
	return n
}
