package observability

import (
	"context"

	"github.com/aretw0/virtualide/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts dispatched actions. Register it with a prometheus.Registerer
// and pass Hooks to the IDE.
type Metrics struct {
	Applied *prometheus.CounterVec
	Failed  *prometheus.CounterVec
}

// NewMetrics creates the collectors under the given namespace (e.g. "virtualide").
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		Applied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "actions_applied_total",
				Help:      "Total number of actions applied, by namespace and action.",
			},
			[]string{"namespace", "action"},
		),
		Failed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "actions_failed_total",
				Help:      "Total number of rejected actions, by namespace and error code.",
			},
			[]string{"namespace", "code"},
		),
	}
}

// Register adds the collectors to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.Applied, m.Failed} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Hooks returns lifecycle hooks feeding the counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnActionApplied: func(_ context.Context, e *domain.ActionEvent) {
			m.Applied.WithLabelValues(namespaceLabel(e), e.Action.Name).Inc()
		},
		OnActionFailed: func(_ context.Context, e *domain.ActionEvent) {
			m.Failed.WithLabelValues(namespaceLabel(e), domain.ErrorCode(e.Err)).Inc()
		},
	}
}

// Unknown action names must not create unbounded label values.
func namespaceLabel(e *domain.ActionEvent) string {
	if e.Namespace == "" {
		return "unknown"
	}
	return e.Namespace
}
