package urlmap

// reverseResult is a selected rule's rendering of a parameter set.
type reverseResult struct {
	rule     *Rule
	path     string
	consumed map[string]struct{}
}

// MapToURL rewrites state into the shortest configured URL form. Rules are
// tried in declaration order and the first one satisfied by the state's
// parameters is used: its groups are substituted into the path, and the
// keys it accounts for are removed. Remaining path-info and query
// parameters become the query data of the result.
//
// When no rule is satisfied, or the state was already mapped, state is
// returned unchanged. The input state is never modified.
func (s *RuleSet) MapToURL(state State) State {
	if state.Mapped {
		return state
	}
	res, ok := s.reverse(state)
	if !ok {
		return state
	}
	return res.apply(state)
}

// reverse selects the first satisfiable rule.
func (s *RuleSet) reverse(state State) (reverseResult, bool) {
	params := state.params()
	for _, r := range s.rules {
		if res, ok := r.reverse(params, state.Context); ok {
			return res, true
		}
	}
	return reverseResult{}, false
}

// reverse renders params through the rule. ok is false when the rule is
// not satisfied by params:
//   - an override key is missing, multi-valued or has another value;
//   - a group key is missing with no implicit default, or multi-valued;
//   - the rendered path does not capture back the substituted values.
func (r *Rule) reverse(params *Params, ctx map[string]string) (reverseResult, bool) {
	if !r.Reversible() {
		return reverseResult{}, false
	}

	for _, kv := range r.override {
		if r.isIgnored(kv.Key) {
			continue
		}
		if v, ok := params.single(kv.Key); !ok || v != kv.Value {
			return reverseResult{}, false
		}
	}

	values := make(map[string]string, len(r.pattern.names))
	omit := make(map[string]bool)
	for _, name := range r.pattern.names {
		if r.isIgnored(name) {
			if v, ok := params.single(name); ok {
				values[name] = v
			} else if v, ok := ctx[name]; ok {
				values[name] = v
			}
			continue
		}

		def, hasDefault := r.implicitValue(name)
		v, ok := params.single(name)
		if !ok {
			if params.Has(name) || !hasDefault {
				return reverseResult{}, false
			}
			v = def
		}
		values[name] = v
		if hasDefault && v == def {
			omit[name] = true
		}
	}

	path, ok := r.pattern.render(values, omit)
	if !ok || !r.pattern.verify(path, values, omit) {
		return reverseResult{}, false
	}

	consumed := make(map[string]struct{}, len(r.relevant)+len(r.implicit))
	for _, key := range r.relevant {
		consumed[key] = struct{}{}
	}
	for _, kv := range r.implicit {
		if r.isIgnored(kv.Key) {
			continue
		}
		if v, ok := params.single(kv.Key); ok && v == kv.Value {
			consumed[kv.Key] = struct{}{}
		}
	}

	return reverseResult{rule: r, path: path, consumed: consumed}, true
}

// apply builds the mapped state: the rendered path and the unconsumed
// parameters as query data, path-info keys first.
func (res reverseResult) apply(state State) State {
	leftover := &Params{}
	for _, src := range []*Params{state.PathInfo, state.Query} {
		for _, k := range src.Keys() {
			if _, ok := res.consumed[k]; ok {
				continue
			}
			for _, v := range src.Values(k) {
				leftover.Add(k, v)
			}
		}
	}

	out := State{
		Path:     res.path,
		PathInfo: &Params{},
		Query:    leftover,
		Mapped:   true,
	}
	if state.Context != nil {
		out.Context = make(map[string]string, len(state.Context))
		for k, v := range state.Context {
			out.Context[k] = v
		}
	}
	return out
}
