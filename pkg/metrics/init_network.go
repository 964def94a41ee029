package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGenerationMetrics() {
	r.GenerationsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Total number of generated networks",
		},
	)

	r.GenerationDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Network generation duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	r.GeneratedEntities = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generated_entities_total",
			Help:      "Entities created by generation, by kind",
		},
		[]string{"kind"},
	)

	r.InterfaceLinkSpread = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "interface_link_spread",
			Help:      "Difference between the most and least connected interface of a generated network",
			Buckets:   []float64{0, 1, 2, 3, 5, 8},
		},
	)

	r.StoredNetworks = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stored_networks",
			Help:      "Networks currently held in the store",
		},
	)

	r.StoredNetworkEvictions = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stored_network_evictions_total",
			Help:      "Networks evicted from the store to stay within capacity",
		},
	)
}
