package urlmap

import "go.uber.org/zap"

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics sets the metrics the engine records to.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithRuleSets activates the given rule sets at construction.
func WithRuleSets(sets ...*RuleSet) Option {
	return func(e *Engine) {
		e.initial = append(e.initial, sets...)
	}
}
