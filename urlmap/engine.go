package urlmap

import (
	"slices"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// table is an immutable snapshot of the active rule sets by name.
type table map[string]*RuleSet

// Engine resolves URLs against named rule sets. Resolutions load the
// current snapshot once and never block; activations build a new snapshot
// and publish it atomically, so an in-flight resolution sees either the
// old or the new rule set, never a mix.
//
// Engines are constructed explicitly and handed to whatever needs URL
// translation; there is no package-level engine.
type Engine struct {
	// mu serializes writers; readers never take it.
	mu      sync.Mutex
	current atomic.Pointer[table]

	logger  *zap.Logger
	metrics *Metrics
	initial []*RuleSet
}

// New creates an engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	empty := table{}
	e.current.Store(&empty)

	if len(e.initial) > 0 {
		e.Activate(e.initial...)
		e.initial = nil
	}

	return e
}

// Activate publishes rule sets, replacing active sets with the same name.
// Sets with other names stay active. Nil sets are skipped.
func (e *Engine) Activate(sets ...*RuleSet) {
	e.mu.Lock()
	defer e.mu.Unlock()

	old := *e.current.Load()
	next := make(table, len(old)+len(sets))
	for name, s := range old {
		next[name] = s
	}
	for _, s := range sets {
		if s == nil {
			continue
		}
		next[s.Name()] = s
	}
	e.current.Store(&next)

	for _, s := range sets {
		if s != nil {
			e.activated(s)
		}
	}
}

// Replace publishes exactly the given rule sets; every other set is
// deactivated.
func (e *Engine) Replace(sets ...*RuleSet) {
	e.mu.Lock()
	defer e.mu.Unlock()

	old := *e.current.Load()
	next := make(table, len(sets))
	for _, s := range sets {
		if s != nil {
			next[s.Name()] = s
		}
	}
	e.current.Store(&next)

	for name := range old {
		if _, ok := next[name]; !ok {
			e.deactivated(name)
		}
	}
	for _, s := range sets {
		if s != nil {
			e.activated(s)
		}
	}
}

// Deactivate removes rule sets by name. Unknown names are ignored.
func (e *Engine) Deactivate(names ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	old := *e.current.Load()
	next := make(table, len(old))
	for name, s := range old {
		next[name] = s
	}

	var removed []string
	for _, name := range names {
		if _, ok := next[name]; ok {
			delete(next, name)
			removed = append(removed, name)
		}
	}
	if len(removed) == 0 {
		return
	}
	e.current.Store(&next)

	for _, name := range removed {
		e.deactivated(name)
	}
}

// RuleSet returns the active rule set with the given name.
func (e *Engine) RuleSet(name string) (*RuleSet, bool) {
	s, ok := (*e.current.Load())[name]
	return s, ok
}

// Names returns the names of the active rule sets, sorted.
func (e *Engine) Names() []string {
	t := *e.current.Load()
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MapFromURL applies forward resolution of path against the named rule
// set. An unknown rule set behaves like an unmatched path.
func (e *Engine) MapFromURL(set, path string, params *Params) bool {
	s, ok := e.RuleSet(set)
	if !ok {
		e.logger.Debug("unknown rule set", zap.String("ruleset", set))
		return false
	}

	matched := s.MapFromURL(path, params)
	e.metrics.observeResolution(set, DirectionForward, matched)
	if !matched {
		e.logger.Debug("no rule matched path",
			zap.String("ruleset", set),
			zap.String("path", path),
		)
	}
	return matched
}

// MapToURL applies reverse resolution of state against the named rule set.
// An unknown rule set returns state unchanged.
func (e *Engine) MapToURL(set string, state State) State {
	s, ok := e.RuleSet(set)
	if !ok {
		e.logger.Debug("unknown rule set", zap.String("ruleset", set))
		return state
	}
	if state.Mapped {
		return state
	}

	out := s.MapToURL(state)
	e.metrics.observeResolution(set, DirectionReverse, out.Mapped)
	if !out.Mapped {
		e.logger.Debug("no rule satisfied parameters",
			zap.String("ruleset", set),
			zap.Strings("keys", state.params().Keys()),
		)
	}
	return out
}

func (e *Engine) activated(s *RuleSet) {
	e.metrics.observeActivation(s)
	e.logger.Info("rule set activated",
		zap.String("ruleset", s.Name()),
		zap.String("revision", s.Revision()),
		zap.Int("rules", s.Len()),
	)
	for i, r := range s.rules {
		if !r.Reversible() {
			e.logger.Warn("rule only maps inbound paths",
				zap.String("ruleset", s.Name()),
				zap.Int("rule", i),
				zap.String("pattern", r.Pattern()),
			)
		}
	}
}

func (e *Engine) deactivated(name string) {
	e.metrics.observeDeactivation(name)
	e.logger.Info("rule set deactivated", zap.String("ruleset", name))
}
