package urlmaphandlers

import (
	"errors"
	"net/http"
)

// MiddlewareFunc wraps an http.Handler.
type MiddlewareFunc func(http.Handler) http.Handler

var (
	// ErrNoEngine is returned when a config has no engine.
	ErrNoEngine = errors.New("urlmaphandlers: engine is required")

	// ErrNoRuleSet is returned when a config names no rule set.
	ErrNoRuleSet = errors.New("urlmaphandlers: rule set name is required")
)

// requestPath returns the decoded request path.
func requestPath(r *http.Request) string {
	if r.URL.Path == "" {
		return "/"
	}
	return r.URL.Path
}
