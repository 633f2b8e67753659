// Package urlmap translates between short request paths and the parameter
// sets a request pipeline works with.
//
// A rule pairs a path pattern with a parameter policy:
//   - implicit parameters are defaults, set only when a key is absent
//   - override parameters are forced, replacing any existing value
//   - ignore parameters are left out of rule selection
//
// Rules are grouped into named, ordered rule sets. Order decides
// precedence in both directions: the first applicable rule wins and rules
// are never ranked by specificity.
//
// # Rule Sets
//
// Rule sets are built from definitions produced by a loader:
//
//	rs, err := urlmap.NewRuleSet(urlmap.SetDefinition{
//		Name: "default",
//		Rules: []urlmap.RuleDefinition{{
//			Pattern:  `/book/(?<bookId>\d+)(?:/(?<detail>\d+))?`,
//			Implicit: urlmap.Pairs{{Key: "detail", Value: "0"}},
//			Override: urlmap.Pairs{{Key: "template", Value: "Book.vm"}},
//		}},
//	})
//
// Patterns use named groups, (?<name>...) or (?P<name>...), and always
// match the whole path. Invalid patterns and duplicated group names are
// reported by NewRuleSet; a rule set with a broken rule is never built.
//
// The brace template form is also accepted. A {name:macro} segment
// becomes a named group matching the macro's expression, and an unknown
// macro is used as a literal expression:
//
//	{Template: "/book/{bookId:int}"}
//
// Available macros: uuid, int, float, slug, alpha, alphanum, date, hex and
// path (the rest of the path, slashes included).
//
// # Forward Resolution
//
// MapFromURL decodes a path into parameters:
//
//	params := urlmap.NewParams()
//	rs.MapFromURL("/book/123", params)
//	// bookId=123 detail=0 template=Book.vm
//
// Precedence is override > captured group > implicit default. An
// unmatched path leaves the parameters untouched.
//
// # Reverse Resolution
//
// MapToURL picks the first rule whose group and override keys are present
// in the parameters, substitutes the group values into the pattern and
// drops the keys the rule accounts for. Parameters equal to their implicit
// default are consumed and, inside optional parts, left out of the path.
// Everything else becomes query data:
//
//	st := rs.MapToURL(urlmap.State{Query: urlmap.NewParams(
//		urlmap.Pair{Key: "bookId", Value: "123"},
//		urlmap.Pair{Key: "template", Value: "Book.vm"},
//		urlmap.Pair{Key: "view", Value: "collapsed"},
//	)})
//	st.String() // "/book/123?view=collapsed"
//
// Mapping a mapped state again returns it unchanged.
//
// # Engine
//
// Engine holds active rule sets by name. Activate and Replace publish new
// rule sets atomically; resolutions running concurrently keep using the
// snapshot they started with.
//
//	e := urlmap.New(
//		urlmap.WithLogger(logger),
//		urlmap.WithMetrics(urlmap.NewMetrics(prometheus.DefaultRegisterer)),
//		urlmap.WithRuleSets(rs),
//	)
//	e.MapFromURL("default", r.URL.Path, params)
package urlmap
