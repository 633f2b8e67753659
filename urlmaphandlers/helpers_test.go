package urlmaphandlers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vitalvas/urlmapper/urlmap"
)

func newTestEngine(t *testing.T) *urlmap.Engine {
	t.Helper()

	rs, err := urlmap.NewRuleSet(urlmap.SetDefinition{
		Name: "default",
		Rules: []urlmap.RuleDefinition{
			{
				Pattern:  `/(?<webAppRoot>[^/]+)/book/(?<bookId>\d+)(?:/(?<detail>\d+))?`,
				Ignore:   urlmap.Pairs{{Key: "webAppRoot"}},
				Implicit: urlmap.Pairs{{Key: "detail", Value: "0"}},
				Override: urlmap.Pairs{{Key: "template", Value: "Book.vm"}},
			},
			{
				Template: "/{webAppRoot}/contact",
				Ignore:   urlmap.Pairs{{Key: "webAppRoot"}},
				Override: urlmap.Pairs{{Key: "role", Value: "anon"}, {Key: "template", Value: "Contact.vm"}},
			},
		},
	})
	require.NoError(t, err)

	return urlmap.New(urlmap.WithRuleSets(rs))
}
