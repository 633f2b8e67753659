// Package urlmaphandlers provides net/http middlewares that connect a
// request pipeline to a urlmap.Engine.
//
// Each middleware is built from a config struct and validated once at
// construction; resolution itself never fails.
//
// # Decode
//
// DecodeMiddleware runs forward resolution on the request path and exposes
// the resulting parameters to downstream handlers:
//
//	decode, err := urlmaphandlers.DecodeMiddleware(urlmaphandlers.DecodeConfig{
//		Engine:  engine,
//		RuleSet: "default",
//	})
//	http.Handle("/", decode(handler))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		params, _ := urlmaphandlers.ParamsFromContext(r.Context())
//		bookID := params.Get("bookId")
//	}
//
// # Canonical
//
// CanonicalMiddleware redirects long-form requests, whose parameters are
// all in the query string, to the short URL the rule set produces for
// them. Requests whose path already matches a rule are left alone.
package urlmaphandlers
