package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initIsolationMetrics() {
	r.IsolationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "isolations_total",
			Help:      "Total number of batch isolations",
		},
		[]string{"criterion"},
	)

	r.IsolationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "isolation_duration_seconds",
			Help:      "Batch isolation duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"criterion"},
	)

	r.IsolatedSystems = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "isolated_systems",
			Help:      "Number of systems returned per isolation",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
		[]string{"criterion"},
	)

	r.IsolationStability = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "isolation_stability",
			Help:      "Mean impact of the remaining systems after the most recent isolation",
		},
		[]string{"criterion"},
	)

	r.IsolationWindows = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "isolation_windows_evaluated_total",
			Help:      "Alternative batch windows evaluated by the stability search",
		},
	)

	r.IsolationImprovements = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "isolation_improvements_total",
			Help:      "Isolations where the stability search replaced the initial batch",
		},
		[]string{"criterion"},
	)

	r.IsolationStrandedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "isolation_stranded_systems_total",
			Help:      "Remaining systems left without any interface after isolation",
		},
	)
}
