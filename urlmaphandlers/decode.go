package urlmaphandlers

import (
	"context"
	"net/http"

	"github.com/vitalvas/urlmapper/urlmap"
)

type paramsKey struct{}

// ParamsFromContext returns the parameters stored by DecodeMiddleware.
func ParamsFromContext(ctx context.Context) (*urlmap.Params, bool) {
	p, ok := ctx.Value(paramsKey{}).(*urlmap.Params)
	return p, ok
}

// DecodeConfig configures the Decode middleware behaviour.
type DecodeConfig struct {
	// Engine resolves paths. Required.
	Engine *urlmap.Engine

	// RuleSet is the name of the rule set to resolve against. Required.
	RuleSet string

	// MergeQuery, when true, also rewrites the request query string to
	// the resolved parameters so handlers reading r.URL.Query() see them.
	MergeQuery bool
}

// DecodeMiddleware returns a middleware that decodes the request path into
// parameters. The request query is the starting parameter set, so override
// parameters replace query values while implicit ones only fill gaps. When
// no rule matches, the request passes through unchanged and no parameters
// are stored.
//
// It returns ErrNoEngine or ErrNoRuleSet when the config is incomplete.
func DecodeMiddleware(cfg DecodeConfig) (MiddlewareFunc, error) {
	if cfg.Engine == nil {
		return nil, ErrNoEngine
	}
	if cfg.RuleSet == "" {
		return nil, ErrNoRuleSet
	}

	engine := cfg.Engine
	set := cfg.RuleSet
	mergeQuery := cfg.MergeQuery

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Malformed pairs are dropped, as url.ParseQuery callers do.
			params, _ := urlmap.ParseQuery(r.URL.RawQuery)

			if !engine.MapFromURL(set, requestPath(r), params) {
				next.ServeHTTP(w, r)
				return
			}

			r = r.WithContext(context.WithValue(r.Context(), paramsKey{}, params))
			if mergeQuery {
				u := *r.URL
				u.RawQuery = params.Encode()
				r.URL = &u
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}
