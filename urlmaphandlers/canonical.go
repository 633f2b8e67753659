package urlmaphandlers

import (
	"errors"
	"net/http"

	"github.com/vitalvas/urlmapper/urlmap"
)

// ErrInvalidRedirectCode is returned when CanonicalConfig.Code is not a
// redirect status.
var ErrInvalidRedirectCode = errors.New("urlmaphandlers: redirect code must be 301, 302, 303, 307 or 308")

// CanonicalConfig configures the Canonical middleware behaviour.
type CanonicalConfig struct {
	// Engine builds the short URLs. Required.
	Engine *urlmap.Engine

	// RuleSet is the name of the rule set to resolve against. Required.
	RuleSet string

	// Code is the redirect status. Defaults to 308 Permanent Redirect
	// (RFC 7538).
	Code int

	// ContextFunc supplies values for groups a rule ignores, such as the
	// application root the handler is mounted under. Optional.
	ContextFunc func(r *http.Request) map[string]string
}

// CanonicalMiddleware returns a middleware that redirects GET and HEAD
// requests to their short form. The request path and query form the
// reverse resolution state; when a rule is satisfied and the resulting URL
// differs from the request URI, the client is redirected. Requests whose
// path is already matched by a rule are never redirected.
func CanonicalMiddleware(cfg CanonicalConfig) (MiddlewareFunc, error) {
	if cfg.Engine == nil {
		return nil, ErrNoEngine
	}
	if cfg.RuleSet == "" {
		return nil, ErrNoRuleSet
	}

	code := cfg.Code
	switch code {
	case 0:
		code = http.StatusPermanentRedirect
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
	default:
		return nil, ErrInvalidRedirectCode
	}

	engine := cfg.Engine
	set := cfg.RuleSet
	contextFunc := cfg.ContextFunc

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			rs, ok := engine.RuleSet(set)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			path := requestPath(r)
			if _, _, matched := rs.Match(path); matched {
				next.ServeHTTP(w, r)
				return
			}

			query, _ := urlmap.ParseQuery(r.URL.RawQuery)
			state := urlmap.State{Path: path, Query: query}
			if contextFunc != nil {
				state.Context = contextFunc(r)
			}

			out := engine.MapToURL(set, state)
			if !out.Mapped {
				next.ServeHTTP(w, r)
				return
			}

			target := out.String()
			if target == r.URL.RequestURI() {
				next.ServeHTTP(w, r)
				return
			}

			http.Redirect(w, r, target, code)
		})
	}, nil
}
