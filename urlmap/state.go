package urlmap

import "net/url"

// State is the URL representation a caller holds before emitting a link:
// a path, path-info parameters and query parameters. A target template is
// just another parameter.
type State struct {
	// Path is the literal path. Reverse resolution replaces it with the
	// rendered path of the selected rule.
	Path string

	// PathInfo holds parameters the caller would encode into the path.
	PathInfo *Params

	// Query holds parameters the caller would encode into the query string.
	Query *Params

	// Context supplies values for groups that are ignored by a rule and
	// not present as parameters, such as a web application root. Context
	// values are never emitted as query data.
	Context map[string]string

	// Mapped is set on states produced by a successful reverse resolution.
	// Mapping a mapped state again returns it unchanged.
	//
	// The flag is the only record that a state was already shortened.
	// Callers that copy or rebuild a mapped state must carry it over (Clone
	// does); a rebuilt state with Mapped cleared is resolved from scratch,
	// and its leftover query keys may then select a different rule.
	Mapped bool
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := State{
		Path:     s.Path,
		PathInfo: s.PathInfo.Clone(),
		Query:    s.Query.Clone(),
		Mapped:   s.Mapped,
	}
	if s.Context != nil {
		out.Context = make(map[string]string, len(s.Context))
		for k, v := range s.Context {
			out.Context[k] = v
		}
	}
	return out
}

// params returns path-info and query values merged per key, path-info
// first.
func (s State) params() *Params {
	p := s.PathInfo.Clone()
	p.Merge(s.Query)
	return p
}

// URL returns the state as a relative URL. Path-info parameters left on an
// unmapped state are emitted as query data after the path.
func (s State) URL() *url.URL {
	return &url.URL{
		Path:     s.Path,
		RawQuery: s.params().Encode(),
	}
}

// String returns the escaped path and query.
func (s State) String() string {
	return s.URL().String()
}
