package urlmap

import "sync"

// patternCache holds compiled patterns keyed by their raw text. A reload
// usually recompiles the same rules, so activations reuse the regexp,
// syntax tree and reversibility probe of the previous rule set. Compiled
// patterns are immutable and shared between rule sets.
//
// Failed compilations are not cached; a broken rule is reported again on
// every reload until it is fixed.
var patternCache sync.Map

// cachedPattern returns the cached pattern for raw, building it with build
// on first use.
func cachedPattern(raw string, build func(string) (*pattern, error)) (*pattern, error) {
	if v, ok := patternCache.Load(raw); ok {
		return v.(*pattern), nil
	}

	p, err := build(raw)
	if err != nil {
		return nil, err
	}

	actual, _ := patternCache.LoadOrStore(raw, p)

	return actual.(*pattern), nil
}
