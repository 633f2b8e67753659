package urlmap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bookRuleSet maps /<webAppRoot>/book/<bookId>[/<detail>] to the book
// template. The web application root comes from the state context.
func bookRuleSet(t *testing.T) *RuleSet {
	t.Helper()

	s, err := NewRuleSet(SetDefinition{
		Name: "default",
		Rules: []RuleDefinition{{
			Pattern:  `/(?<webAppRoot>[^/]+)/book/(?<bookId>\d+)(?:/(?<detail>\d+))?`,
			Ignore:   Pairs{{Key: "webAppRoot"}},
			Implicit: Pairs{{Key: "detail", Value: "0"}},
			Override: Pairs{{Key: "template", Value: "Book.vm"}},
		}},
	})
	require.NoError(t, err)

	return s
}

func TestMapToURL(t *testing.T) {
	ctx := map[string]string{"webAppRoot": "wow"}

	t.Run("default value consumed and omitted", func(t *testing.T) {
		s := bookRuleSet(t)

		out := s.MapToURL(State{
			Query: NewParams(
				Pair{Key: "bookId", Value: "123"},
				Pair{Key: "template", Value: "Book.vm"},
				Pair{Key: "detail", Value: "0"},
			),
			Context: ctx,
		})

		require.True(t, out.Mapped)
		assert.Equal(t, "/wow/book/123", out.Path)
		assert.Equal(t, 0, out.Query.Len())
		assert.Equal(t, "/wow/book/123", out.String())
	})

	t.Run("leftover parameters become query data", func(t *testing.T) {
		s := bookRuleSet(t)

		out := s.MapToURL(State{
			Query: NewParams(
				Pair{Key: "bookId", Value: "123"},
				Pair{Key: "template", Value: "Book.vm"},
				Pair{Key: "detail", Value: "1"},
				Pair{Key: "view", Value: "collapsed"},
			),
			Context: ctx,
		})

		require.True(t, out.Mapped)
		assert.Equal(t, "/wow/book/123/1?view=collapsed", out.String())
		assert.Equal(t, []string{"view"}, out.Query.Keys())
	})

	t.Run("path-info and query are both candidates", func(t *testing.T) {
		s := bookRuleSet(t)

		out := s.MapToURL(State{
			Path:     "/wow/servlet",
			PathInfo: NewParams(Pair{Key: "template", Value: "Book.vm"}, Pair{Key: "lang", Value: "en"}),
			Query:    NewParams(Pair{Key: "bookId", Value: "7"}, Pair{Key: "q", Value: "a b"}),
			Context:  ctx,
		})

		require.True(t, out.Mapped)
		assert.Equal(t, "/wow/book/7?lang=en&q=a+b", out.String())
		assert.Equal(t, 0, out.PathInfo.Len())
	})

	t.Run("absent group with implicit default", func(t *testing.T) {
		s := bookRuleSet(t)

		out := s.MapToURL(State{
			Query: NewParams(
				Pair{Key: "bookId", Value: "5"},
				Pair{Key: "template", Value: "Book.vm"},
			),
			Context: ctx,
		})

		require.True(t, out.Mapped)
		assert.Equal(t, "/wow/book/5", out.String())
	})

	t.Run("override value must match", func(t *testing.T) {
		s := bookRuleSet(t)

		in := State{
			Path: "/wow/servlet",
			Query: NewParams(
				Pair{Key: "bookId", Value: "5"},
				Pair{Key: "template", Value: "Other.vm"},
			),
			Context: ctx,
		}
		out := s.MapToURL(in)

		assert.False(t, out.Mapped)
		assert.Equal(t, in, out)
	})

	t.Run("group value outside the pattern", func(t *testing.T) {
		s := bookRuleSet(t)

		out := s.MapToURL(State{
			Query: NewParams(
				Pair{Key: "bookId", Value: "abc"},
				Pair{Key: "template", Value: "Book.vm"},
			),
			Context: ctx,
		})
		assert.False(t, out.Mapped)
	})

	t.Run("multi-valued group key is not satisfiable", func(t *testing.T) {
		s := bookRuleSet(t)

		q := NewParams(Pair{Key: "template", Value: "Book.vm"})
		q.Set("bookId", "1", "2")
		out := s.MapToURL(State{Query: q, Context: ctx})
		assert.False(t, out.Mapped)
	})

	t.Run("ignored group without value", func(t *testing.T) {
		s := bookRuleSet(t)

		out := s.MapToURL(State{
			Query: NewParams(
				Pair{Key: "bookId", Value: "1"},
				Pair{Key: "template", Value: "Book.vm"},
			),
		})
		assert.False(t, out.Mapped)
	})

	t.Run("ignored group from parameters is not consumed", func(t *testing.T) {
		s := bookRuleSet(t)

		out := s.MapToURL(State{
			Query: NewParams(
				Pair{Key: "webAppRoot", Value: "shop"},
				Pair{Key: "bookId", Value: "1"},
				Pair{Key: "template", Value: "Book.vm"},
			),
			Context: ctx,
		})
		require.True(t, out.Mapped)
		assert.Equal(t, "/shop/book/1?webAppRoot=shop", out.String())
	})

	t.Run("input state is not modified", func(t *testing.T) {
		s := bookRuleSet(t)

		q := NewParams(
			Pair{Key: "bookId", Value: "1"},
			Pair{Key: "template", Value: "Book.vm"},
		)
		out := s.MapToURL(State{Query: q, Context: ctx})
		require.True(t, out.Mapped)
		assert.Equal(t, []string{"bookId", "template"}, q.Keys())
	})

	t.Run("forward-only rules are skipped", func(t *testing.T) {
		s := MustRuleSet(SetDefinition{
			Name: "default",
			Rules: []RuleDefinition{
				{Pattern: `/app/register`, Implicit: Pairs{{Key: "role", Value: "anon"}}},
				{Pattern: `/list/\d+`, Override: Pairs{{Key: "template", Value: "List.vm"}}},
				{Pattern: `/app/contact`, Override: Pairs{{Key: "role", Value: "anon"}}},
			},
		})

		out := s.MapToURL(State{Query: NewParams(
			Pair{Key: "role", Value: "anon"},
			Pair{Key: "template", Value: "List.vm"},
		)})
		require.True(t, out.Mapped)
		assert.Equal(t, "/app/contact?template=List.vm", out.String())
	})

	t.Run("first satisfiable rule wins", func(t *testing.T) {
		s := MustRuleSet(SetDefinition{
			Name: "default",
			Rules: []RuleDefinition{
				{Template: "/u/{id}"},
				{Template: "/user/{id}"},
			},
		})

		out := s.MapToURL(State{Query: NewParams(Pair{Key: "id", Value: "9"})})
		assert.Equal(t, "/u/9", out.String())
	})

	t.Run("rules differing only by override value", func(t *testing.T) {
		s := MustRuleSet(SetDefinition{
			Name: "default",
			Rules: []RuleDefinition{
				{Pattern: `/admin/(?<page>\w+)`, Override: Pairs{{Key: "role", Value: "admin"}}},
				{Pattern: `/staff/(?<page>\w+)`, Override: Pairs{{Key: "role", Value: "staff"}}},
			},
		})

		tests := []struct {
			role string
			want string
		}{
			{role: "admin", want: "/admin/home"},
			{role: "staff", want: "/staff/home"},
			{role: "guest", want: "?page=home&role=guest"},
		}
		for _, tt := range tests {
			t.Run(tt.role, func(t *testing.T) {
				out := s.MapToURL(State{Query: NewParams(
					Pair{Key: "page", Value: "home"},
					Pair{Key: "role", Value: tt.role},
				)})
				assert.Equal(t, tt.want, out.String())
			})
		}
	})
}

func TestMapToURLIdempotence(t *testing.T) {
	s := MustRuleSet(SetDefinition{
		Name: "default",
		Rules: []RuleDefinition{
			{Template: "/book/{bookId:int}", Override: Pairs{{Key: "template", Value: "Book.vm"}}},
			{Template: "/search/{q}"},
			{Pattern: `/`, Override: Pairs{{Key: "template", Value: "Index.vm"}}},
		},
	})

	states := []State{
		{Query: NewParams(Pair{Key: "bookId", Value: "1"}, Pair{Key: "template", Value: "Book.vm"}, Pair{Key: "q", Value: "go"})},
		{Query: NewParams(Pair{Key: "q", Value: "go"}, Pair{Key: "template", Value: "Index.vm"})},
		{Query: NewParams(Pair{Key: "template", Value: "Index.vm"})},
		{Path: "/raw", Query: NewParams(Pair{Key: "x", Value: "1"})},
		{},
	}

	for i, st := range states {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			once := s.MapToURL(st)
			twice := s.MapToURL(once)
			assert.Equal(t, once.String(), twice.String())
			assert.Equal(t, once, twice)
		})
	}

	t.Run("clone keeps the mapped flag", func(t *testing.T) {
		once := s.MapToURL(states[0])
		require.True(t, once.Mapped)
		assert.Equal(t, "/book/1?q=go", once.String())

		copied := once.Clone()
		assert.True(t, copied.Mapped)
		assert.Equal(t, once.String(), s.MapToURL(copied).String())
	})

	t.Run("rebuilt state without the flag is resolved again", func(t *testing.T) {
		once := s.MapToURL(states[0])
		rebuilt := State{Path: once.Path, Query: once.Query.Clone()}

		again := s.MapToURL(rebuilt)
		assert.Equal(t, "/search/go", again.Path)
	})
}

func TestRoundTrip(t *testing.T) {
	s := MustRuleSet(SetDefinition{
		Name: "default",
		Rules: []RuleDefinition{
			{
				Pattern:  `/book/(?<bookId>\d+)(?:/(?<detail>\d+))?`,
				Implicit: Pairs{{Key: "detail", Value: "0"}},
				Override: Pairs{{Key: "template", Value: "Book.vm"}},
			},
			{
				Template: "/{lang:alpha}/articles/{date:date}/{slug:slug}",
				Override: Pairs{{Key: "template", Value: "Article.vm"}},
			},
			{
				Pattern:  `/files/(?<path>.+)`,
				Override: Pairs{{Key: "template", Value: "File.vm"}},
			},
		},
	})

	paths := []string{
		"/book/123",
		"/book/123/4",
		"/en/articles/2024-01-31/hello-world",
		"/files/a/b/c.txt",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			params := NewParams()
			require.True(t, s.MapFromURL(path, params))

			out := s.MapToURL(State{Query: params})
			require.True(t, out.Mapped)
			assert.Equal(t, path, out.Path)
			assert.Equal(t, 0, out.Query.Len())
		})
	}

	t.Run("default-valued group is dropped but decodes the same", func(t *testing.T) {
		long := NewParams()
		require.True(t, s.MapFromURL("/book/123/0", long))

		out := s.MapToURL(State{Query: long.Clone()})
		require.True(t, out.Mapped)
		assert.Equal(t, "/book/123", out.Path)

		short := NewParams()
		require.True(t, s.MapFromURL(out.Path, short))
		assert.Equal(t, long.ToValues(), short.ToValues())
	})
}
