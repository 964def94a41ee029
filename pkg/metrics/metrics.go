package metrics

import (
	"time"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordGeneration records a generated network's size and link spread
func (r *Registry) RecordGeneration(systems, connectors, interfaces, linkSpread int, duration time.Duration) {
	r.GenerationsTotal.Inc()
	r.GenerationDuration.Observe(duration.Seconds())
	r.GeneratedEntities.WithLabelValues("system").Add(float64(systems))
	r.GeneratedEntities.WithLabelValues("connector").Add(float64(connectors))
	r.GeneratedEntities.WithLabelValues("interface").Add(float64(interfaces))
	r.InterfaceLinkSpread.Observe(float64(linkSpread))
}

// RecordIsolation records the outcome of one isolation
func (r *Registry) RecordIsolation(criterion string, selected, windows int, improved bool, stability float64, duration time.Duration) {
	r.IsolationsTotal.WithLabelValues(criterion).Inc()
	r.IsolationDuration.WithLabelValues(criterion).Observe(duration.Seconds())
	r.IsolatedSystems.WithLabelValues(criterion).Observe(float64(selected))
	r.IsolationStability.WithLabelValues(criterion).Set(stability)
	r.IsolationWindows.Add(float64(windows))
	if improved {
		r.IsolationImprovements.WithLabelValues(criterion).Inc()
	}
}

// RecordStranded counts systems left without interfaces by an isolation
func (r *Registry) RecordStranded(n int) {
	r.IsolationStrandedTotal.Add(float64(n))
}

// SetStoredNetworks updates the store size gauge
func (r *Registry) SetStoredNetworks(n int) {
	r.StoredNetworks.Set(float64(n))
}

// RecordEviction counts a network dropped from the store
func (r *Registry) RecordEviction() {
	r.StoredNetworkEvictions.Inc()
}

// UpdateUptime refreshes the uptime and goroutine gauges
func (r *Registry) UpdateUptime(start time.Time, goroutines int) {
	r.UptimeSeconds.Set(time.Since(start).Seconds())
	r.GoRoutines.Set(float64(goroutines))
}
