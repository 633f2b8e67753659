package urlmap

import (
	"errors"
	"fmt"
)

// Configuration errors. They are reported when a rule set is built, never
// while resolving.
var (
	ErrEmptyName      = errors.New("urlmap: rule set name is empty")
	ErrEmptyPattern   = errors.New("urlmap: rule has neither pattern nor template")
	ErrAmbiguousRule  = errors.New("urlmap: rule has both pattern and template")
	ErrInvalidPattern = errors.New("urlmap: invalid pattern")
	ErrDuplicateGroup = errors.New("urlmap: duplicated group name")
	ErrUnnamedGroup   = errors.New("urlmap: empty group name")
)

// ConfigError locates a configuration error inside a rule set.
type ConfigError struct {
	Set     string
	Index   int
	Pattern string
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("urlmap: rule set %q, rule %d (%q): %v", e.Set, e.Index, e.Pattern, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
