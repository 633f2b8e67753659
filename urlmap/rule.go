package urlmap

// Rule is one compiled mapping between a path pattern and a parameter
// policy. All fields, derived ones included, are computed by newRule and
// never change afterwards, so a Rule may be shared by any number of
// goroutines.
type Rule struct {
	pattern  *pattern
	implicit Pairs
	override Pairs
	ignore   map[string]struct{}
	ignored  []string
	relevant []string
}

// newRule compiles a rule definition. Policy pairs are copied so the rule
// never aliases the loader's memory.
func newRule(def RuleDefinition) (*Rule, error) {
	raw := def.Pattern
	switch {
	case def.Pattern != "" && def.Template != "":
		return nil, ErrAmbiguousRule
	case def.Template != "":
		var err error
		if raw, err = templateToPattern(def.Template); err != nil {
			return nil, err
		}
	}

	p, err := compilePattern(raw)
	if err != nil {
		return nil, err
	}

	r := &Rule{
		pattern:  p,
		implicit: normalizePairs(def.Implicit),
		override: normalizePairs(def.Override),
		ignore:   make(map[string]struct{}, len(def.Ignore)),
	}

	for _, kv := range def.Ignore {
		if _, ok := r.ignore[kv.Key]; ok {
			continue
		}
		r.ignore[kv.Key] = struct{}{}
		r.ignored = append(r.ignored, kv.Key)
	}

	seen := make(map[string]struct{}, len(p.names)+len(r.override))
	for _, name := range p.names {
		r.addRelevant(name, seen)
	}
	for _, kv := range r.override {
		r.addRelevant(kv.Key, seen)
	}

	return r, nil
}

func (r *Rule) addRelevant(key string, seen map[string]struct{}) {
	if r.isIgnored(key) {
		return
	}
	if _, ok := seen[key]; ok {
		return
	}
	seen[key] = struct{}{}
	r.relevant = append(r.relevant, key)
}

// normalizePairs copies pairs, collapsing repeated keys: the key keeps its
// first position and takes its last value.
func normalizePairs(in Pairs) Pairs {
	if len(in) == 0 {
		return nil
	}
	pos := make(map[string]int, len(in))
	out := make(Pairs, 0, len(in))
	for _, kv := range in {
		if i, ok := pos[kv.Key]; ok {
			out[i].Value = kv.Value
			continue
		}
		pos[kv.Key] = len(out)
		out = append(out, kv)
	}
	return out
}

// Pattern returns the expression the rule matches, as configured or as
// translated from its template.
func (r *Rule) Pattern() string {
	return r.pattern.raw
}

// Groups returns the named groups of the pattern in declaration order.
func (r *Rule) Groups() []string {
	return append([]string(nil), r.pattern.names...)
}

// GroupIndex returns a copy of the group name to 1-based position map.
func (r *Rule) GroupIndex() map[string]int {
	out := make(map[string]int, len(r.pattern.index))
	for k, v := range r.pattern.index {
		out[k] = v
	}
	return out
}

// Implicit returns the default parameters in declaration order.
func (r *Rule) Implicit() Pairs {
	return append(Pairs(nil), r.implicit...)
}

// Override returns the forced parameters in declaration order.
func (r *Rule) Override() Pairs {
	return append(Pairs(nil), r.override...)
}

// Ignored returns the keys excluded from rule selection.
func (r *Rule) Ignored() []string {
	return append([]string(nil), r.ignored...)
}

// RelevantKeys returns the keys that decide whether the rule applies to a
// parameter set: group names and override keys, minus ignored keys.
func (r *Rule) RelevantKeys() []string {
	return append([]string(nil), r.relevant...)
}

// Reversible reports whether the rule can be chosen when building URLs.
// A rule without relevant keys, or whose pattern has a mandatory part with
// no literal form, only maps inbound paths.
func (r *Rule) Reversible() bool {
	return r.pattern.reversible && len(r.relevant) > 0
}

func (r *Rule) isIgnored(key string) bool {
	_, ok := r.ignore[key]
	return ok
}

func (r *Rule) implicitValue(key string) (string, bool) {
	return r.implicit.Lookup(key)
}
