package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func healthy() Check   { return Check{Status: StatusHealthy} }
func degraded() Check  { return Check{Status: StatusDegraded} }
func unhealthy() Check { return Check{Status: StatusUnhealthy} }

func TestChecker_NoChecks(t *testing.T) {
	c := NewChecker("1.0.0")
	resp := c.Check()

	if resp.Status != StatusHealthy {
		t.Errorf("Status = %s, want healthy", resp.Status)
	}
	if resp.Version != "1.0.0" {
		t.Errorf("Version = %s", resp.Version)
	}
	if len(resp.Checks) != 0 {
		t.Errorf("Checks = %v, want none", resp.Checks)
	}
}

func TestChecker_WorstStatusWins(t *testing.T) {
	tests := []struct {
		name   string
		checks []CheckFunc
		want   Status
	}{
		{"all healthy", []CheckFunc{healthy, healthy}, StatusHealthy},
		{"one degraded", []CheckFunc{healthy, degraded}, StatusDegraded},
		{"one unhealthy", []CheckFunc{degraded, unhealthy, healthy}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker("test")
			for i, fn := range tt.checks {
				c.RegisterCheck(string(rune('a'+i)), fn)
			}
			if got := c.Check().Status; got != tt.want {
				t.Errorf("Status = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestChecker_FillsNameAndTiming(t *testing.T) {
	c := NewChecker("test")
	c.RegisterCheck("store", healthy)

	check := c.Check().Checks["store"]
	if check.Name != "store" {
		t.Errorf("Name = %q, want store", check.Name)
	}
	if check.LastChecked.IsZero() {
		t.Error("LastChecked not set")
	}
}

func TestChecker_ReadinessSeparate(t *testing.T) {
	c := NewChecker("test")
	c.RegisterCheck("store", healthy)
	c.RegisterReadinessCheck("shutdown", unhealthy)

	if c.Check().Status != StatusHealthy {
		t.Error("readiness checks must not affect health")
	}
	if c.CheckReadiness().Status != StatusUnhealthy {
		t.Error("readiness should be unhealthy")
	}
}

func TestStoreCheck(t *testing.T) {
	tests := []struct {
		stored, capacity int
		want             Status
	}{
		{0, 100, StatusHealthy},
		{89, 100, StatusHealthy},
		{90, 100, StatusDegraded},
		{100, 100, StatusDegraded},
		{0, 0, StatusUnhealthy},
	}

	for _, tt := range tests {
		check := StoreCheck(func() (int, int) { return tt.stored, tt.capacity })()
		if check.Status != tt.want {
			t.Errorf("StoreCheck(%d/%d) = %s, want %s", tt.stored, tt.capacity, check.Status, tt.want)
		}
	}
}

func TestMemoryCheck(t *testing.T) {
	if got := MemoryCheck(func() (uint64, uint64) { return 50, 100 })().Status; got != StatusHealthy {
		t.Errorf("50%% usage = %s, want healthy", got)
	}
	if got := MemoryCheck(func() (uint64, uint64) { return 95, 100 })().Status; got != StatusDegraded {
		t.Errorf("95%% usage = %s, want degraded", got)
	}
	if got := MemoryCheck(RuntimeMemory)().Status; got == StatusUnhealthy {
		t.Error("runtime memory check should never be unhealthy")
	}
}

func TestShutdownCheck(t *testing.T) {
	down := false
	check := ShutdownCheck(func() bool { return down })

	if check().Status != StatusHealthy {
		t.Error("expected healthy before shutdown")
	}
	down = true
	if check().Status != StatusUnhealthy {
		t.Error("expected unhealthy during shutdown")
	}
}

func TestHandlers(t *testing.T) {
	c := NewChecker("test")
	c.RegisterCheck("store", degraded)
	c.RegisterReadinessCheck("store", degraded)

	rr := httptest.NewRecorder()
	c.HTTPHandler()(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("degraded health code = %d, want 200", rr.Code)
	}

	var resp Response
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != StatusDegraded {
		t.Errorf("Status = %s, want degraded", resp.Status)
	}

	rr = httptest.NewRecorder()
	c.ReadinessHandler()(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("degraded readiness code = %d, want 503", rr.Code)
	}
}
