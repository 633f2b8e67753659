package urlmap

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Pair is a single parameter name and value.
type Pair struct {
	Key   string `yaml:"key" json:"key"`
	Value string `yaml:"value" json:"value"`
}

// Pairs is an ordered list of parameters. Declaration order is kept so
// implicit and override policies are applied in the order they were written.
type Pairs []Pair

// UnmarshalYAML decodes a YAML mapping into declaration-ordered pairs. A
// sequence of scalars is accepted as keys with empty values, which is the
// natural form for ignore lists.
func (p *Pairs) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		out := make(Pairs, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			k, v := node.Content[i], node.Content[i+1]
			if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
				return fmt.Errorf("urlmap: line %d: parameter entries must be scalars", k.Line)
			}
			out = append(out, Pair{Key: k.Value, Value: v.Value})
		}
		*p = out
	case yaml.SequenceNode:
		out := make(Pairs, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("urlmap: line %d: parameter names must be scalars", item.Line)
			}
			out = append(out, Pair{Key: item.Value})
		}
		*p = out
	case yaml.ScalarNode:
		if node.Tag != "!!null" {
			return fmt.Errorf("urlmap: line %d: expected a mapping of parameters", node.Line)
		}
		*p = nil
	default:
		return fmt.Errorf("urlmap: line %d: expected a mapping of parameters", node.Line)
	}
	return nil
}

// Keys returns the parameter names in order.
func (p Pairs) Keys() []string {
	out := make([]string, len(p))
	for i, kv := range p {
		out[i] = kv.Key
	}
	return out
}

// Lookup returns the value of the last entry named key.
func (p Pairs) Lookup(key string) (string, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].Key == key {
			return p[i].Value, true
		}
	}
	return "", false
}

// RuleDefinition is the deserialized form of one rule. Exactly one of
// Pattern or Template must be set.
type RuleDefinition struct {
	// Pattern is a regular expression with named groups, e.g.
	// "/book/(?<bookId>\d+)". It is matched against the whole path.
	Pattern string `yaml:"pattern,omitempty" json:"pattern,omitempty"`

	// Template is the brace form, e.g. "/book/{bookId:int}". It is
	// translated into a named-group pattern.
	Template string `yaml:"template,omitempty" json:"template,omitempty"`

	// Implicit parameters are applied only when absent.
	Implicit Pairs `yaml:"implicit,omitempty" json:"implicit,omitempty"`

	// Ignore lists keys excluded from rule selection. Values are unused.
	Ignore Pairs `yaml:"ignore,omitempty" json:"ignore,omitempty"`

	// Override parameters are applied unconditionally.
	Override Pairs `yaml:"override,omitempty" json:"override,omitempty"`
}

// SetDefinition is the deserialized form of a rule set, as produced by an
// external loader.
type SetDefinition struct {
	Name  string           `yaml:"name" json:"name"`
	Rules []RuleDefinition `yaml:"rules" json:"rules"`
}
