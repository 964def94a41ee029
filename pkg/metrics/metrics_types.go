// Package metrics exposes Prometheus instrumentation for generation,
// isolation and the HTTP API.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "isolate"

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Generation Metrics
	GenerationsTotal       prometheus.Counter
	GenerationDuration     prometheus.Histogram
	GeneratedEntities      *prometheus.CounterVec
	InterfaceLinkSpread    prometheus.Histogram
	StoredNetworks         prometheus.Gauge
	StoredNetworkEvictions prometheus.Counter

	// Isolation Metrics
	IsolationsTotal        *prometheus.CounterVec
	IsolationDuration      *prometheus.HistogramVec
	IsolatedSystems        *prometheus.HistogramVec
	IsolationStability     *prometheus.GaugeVec
	IsolationWindows       prometheus.Counter
	IsolationImprovements  *prometheus.CounterVec
	IsolationStrandedTotal prometheus.Counter

	// System Metrics
	UptimeSeconds prometheus.Gauge
	GoRoutines    prometheus.Gauge

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initHTTPMetrics()
	r.initGenerationMetrics()
	r.initIsolationMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
