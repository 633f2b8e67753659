package urlmap

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolution directions used as metric label values.
const (
	DirectionForward = "forward"
	DirectionReverse = "reverse"
)

// Metrics contains Prometheus metrics for an engine. A nil *Metrics records
// nothing.
type Metrics struct {
	resolutions *prometheus.CounterVec
	activations *prometheus.CounterVec
	rules       *prometheus.GaugeVec
}

// NewMetrics creates engine metrics registered with reg. A nil reg creates
// unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		resolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "urlmap",
				Name:      "resolutions_total",
				Help:      "Total number of URL resolutions by rule set, direction and result",
			},
			[]string{"ruleset", "direction", "result"},
		),
		activations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "urlmap",
				Name:      "activations_total",
				Help:      "Total number of rule set activations",
			},
			[]string{"ruleset"},
		),
		rules: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "urlmap",
				Name:      "rules",
				Help:      "Number of rules in the active rule set",
			},
			[]string{"ruleset"},
		),
	}
}

func (m *Metrics) observeResolution(set, direction string, matched bool) {
	if m == nil {
		return
	}
	result := "miss"
	if matched {
		result = "match"
	}
	m.resolutions.WithLabelValues(set, direction, result).Inc()
}

func (m *Metrics) observeActivation(s *RuleSet) {
	if m == nil {
		return
	}
	m.activations.WithLabelValues(s.Name()).Inc()
	m.rules.WithLabelValues(s.Name()).Set(float64(s.Len()))
}

func (m *Metrics) observeDeactivation(name string) {
	if m == nil {
		return
	}
	m.rules.DeleteLabelValues(name)
}
