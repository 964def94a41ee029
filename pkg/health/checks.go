package health

import "runtime"

// storeDegradedPercent is the fill level above which the store reports degraded
const storeDegradedPercent = 90.0

// StoreCheck reports how full the network store is. A full store still
// works, it just evicts, so the worst outcome is degraded.
func StoreCheck(usage func() (stored, capacity int)) CheckFunc {
	return func() Check {
		stored, capacity := usage()
		check := Check{
			Status: StatusHealthy,
			Details: map[string]any{
				"stored":   stored,
				"capacity": capacity,
			},
		}

		if capacity <= 0 {
			check.Status = StatusUnhealthy
			check.Message = "Store has no capacity"
			return check
		}

		percent := float64(stored) / float64(capacity) * 100
		check.Details["usage_percent"] = percent
		if percent >= storeDegradedPercent {
			check.Status = StatusDegraded
			check.Message = "Store near capacity, oldest networks will be evicted"
		} else {
			check.Message = "Store has room"
		}
		return check
	}
}

// MemoryCheck reports degraded when allocated memory exceeds 90% of what
// the runtime obtained from the OS.
func MemoryCheck(usage func() (alloc, sys uint64)) CheckFunc {
	return func() Check {
		alloc, sys := usage()
		check := Check{
			Status: StatusHealthy,
			Details: map[string]any{
				"alloc_bytes": alloc,
				"sys_bytes":   sys,
			},
			Message: "Memory usage normal",
		}

		if sys > 0 && float64(alloc)/float64(sys)*100 > 90 {
			check.Status = StatusDegraded
			check.Message = "High memory usage"
		}
		return check
	}
}

// RuntimeMemory reads allocation figures from the Go runtime
func RuntimeMemory() (alloc, sys uint64) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc, m.Sys
}

// ShutdownCheck marks the service unready once shutdown has begun
func ShutdownCheck(shuttingDown func() bool) CheckFunc {
	return func() Check {
		if shuttingDown() {
			return Check{Status: StatusUnhealthy, Message: "Shutting down"}
		}
		return Check{Status: StatusHealthy, Message: "Accepting requests"}
	}
}
