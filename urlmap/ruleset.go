package urlmap

import (
	"errors"

	"github.com/google/uuid"
)

// RuleSet is a named, ordered, immutable collection of rules. Order is
// significant: both resolution directions pick the first applicable rule.
//
// A RuleSet is replaced wholesale on reload, never edited, so it can be
// read concurrently without locking.
type RuleSet struct {
	name     string
	revision string
	rules    []*Rule
}

// NewRuleSet compiles a rule set definition. Every rule is checked and all
// configuration errors are returned together, each wrapped in a
// *ConfigError; no partially valid set is ever returned.
func NewRuleSet(def SetDefinition) (*RuleSet, error) {
	if def.Name == "" {
		return nil, ErrEmptyName
	}

	var errs []error
	rules := make([]*Rule, 0, len(def.Rules))
	for i, rd := range def.Rules {
		r, err := newRule(rd)
		if err != nil {
			src := rd.Pattern
			if src == "" {
				src = rd.Template
			}
			errs = append(errs, &ConfigError{Set: def.Name, Index: i, Pattern: src, Err: err})
			continue
		}
		rules = append(rules, r)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &RuleSet{
		name:     def.Name,
		revision: newRevision(),
		rules:    rules,
	}, nil
}

// MustRuleSet is like NewRuleSet but panics on configuration errors.
func MustRuleSet(def SetDefinition) *RuleSet {
	s, err := NewRuleSet(def)
	if err != nil {
		panic(err)
	}
	return s
}

func newRevision() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Name returns the rule set name.
func (s *RuleSet) Name() string {
	return s.name
}

// Revision returns an identifier unique to this compiled instance. Two
// compilations of the same definition have different revisions.
func (s *RuleSet) Revision() string {
	return s.revision
}

// Len returns the number of rules.
func (s *RuleSet) Len() int {
	return len(s.rules)
}

// Rules returns the rules in declaration order.
func (s *RuleSet) Rules() []*Rule {
	return append([]*Rule(nil), s.rules...)
}
