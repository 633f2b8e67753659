package urlmap

// Match returns the first rule whose pattern matches the whole path along
// with the values of its participating groups. Nothing is modified.
func (s *RuleSet) Match(path string) (*Rule, map[string]string, bool) {
	for _, r := range s.rules {
		if caps, ok := r.pattern.captures(path); ok {
			return r, caps, true
		}
	}
	return nil, nil, false
}

// MapFromURL populates params with the parameters implied by path, using
// the first rule that matches. Precedence is override > group capture >
// implicit > nothing: captured values replace prior ones, implicit values
// only fill absent keys and override values always win.
//
// It reports whether a rule matched. An unmatched path leaves params as
// they were.
func (s *RuleSet) MapFromURL(path string, params *Params) bool {
	r, caps, ok := s.Match(path)
	if !ok {
		return false
	}
	r.apply(caps, params)
	return true
}

// apply writes the captured values and the rule policies into params.
func (r *Rule) apply(caps map[string]string, params *Params) {
	for _, name := range r.pattern.names {
		if v, ok := caps[name]; ok {
			params.Set(name, v)
		}
	}
	for _, kv := range r.implicit {
		if !params.Has(kv.Key) {
			params.Set(kv.Key, kv.Value)
		}
	}
	for _, kv := range r.override {
		params.Set(kv.Key, kv.Value)
	}
}
