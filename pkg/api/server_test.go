package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dd0wney/cluso-isolate/pkg/config"
	"github.com/dd0wney/cluso-isolate/pkg/health"
	"github.com/dd0wney/cluso-isolate/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testNetwork struct {
	ID      string `json:"id"`
	Seed    uint64 `json:"seed"`
	Systems []struct {
		ID         string `json:"id"`
		Attributes struct {
			Load     float64 `json:"load"`
			Priority int     `json:"priority"`
		} `json:"attributes"`
	} `json:"systems"`
	Connectors []json.RawMessage `json:"connectors"`
	Interfaces []json.RawMessage `json:"interfaces"`
	Stats      struct {
		TotalConnections int `json:"totalConnections"`
	} `json:"stats"`
}

type testIsolation struct {
	NetworkID        string  `json:"networkId"`
	Criterion        string  `json:"criterion"`
	BatchSize        int     `json:"batchSize"`
	Stability        float64 `json:"stability"`
	InitialStability float64 `json:"initialStability"`
	Batch            []struct {
		ID string `json:"id"`
	} `json:"batch"`
	Ranking    []json.RawMessage `json:"ranking"`
	Assessment struct {
		Isolated []string `json:"isolated"`
	} `json:"assessment"`
}

func setupTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	s := NewServer(config.Default(), nil, metrics.NewRegistry())
	return s, s.Router()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&v), rr.Body.String())
	return v
}

func createNetwork(t *testing.T, h http.Handler, body string) testNetwork {
	t.Helper()
	rr := do(t, h, http.MethodPost, "/api/v1/networks", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[testNetwork](t, rr)
}

func TestHealth(t *testing.T) {
	_, h := setupTestServer(t)

	rr := do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[health.Response](t, rr)
	assert.Equal(t, health.StatusHealthy, resp.Status)
	assert.Equal(t, Version, resp.Version)
	assert.Contains(t, resp.Checks, "store")
	assert.Contains(t, resp.Checks, "memory")
}

func TestReady(t *testing.T) {
	s, h := setupTestServer(t)

	rr := do(t, h, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	down := true
	s.Health().RegisterReadinessCheck("shutdown", health.ShutdownCheck(func() bool { return down }))
	rr = do(t, h, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestCreateNetwork(t *testing.T) {
	_, h := setupTestServer(t)

	n := createNetwork(t, h, `{"systems": 5, "connectors": 8, "interfaces": 3, "seed": 11}`)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, uint64(11), n.Seed)
	assert.Len(t, n.Systems, 5)
	assert.Len(t, n.Connectors, 8)
	assert.Len(t, n.Interfaces, 3)
	assert.GreaterOrEqual(t, n.Stats.TotalConnections, 8)
}

func TestCreateNetwork_Defaults(t *testing.T) {
	_, h := setupTestServer(t)
	cfg := config.Default()

	n := createNetwork(t, h, "")
	assert.Len(t, n.Systems, cfg.Generator.Systems)
	assert.Len(t, n.Connectors, cfg.Generator.Connectors)
	assert.Len(t, n.Interfaces, cfg.Generator.Interfaces)
}

func TestCreateNetwork_SeedIsReproducible(t *testing.T) {
	_, h := setupTestServer(t)

	a := createNetwork(t, h, `{"systems": 6, "connectors": 9, "interfaces": 4, "seed": 3}`)
	b := createNetwork(t, h, `{"systems": 6, "connectors": 9, "interfaces": 4, "seed": 3}`)

	assert.NotEqual(t, a.ID, b.ID, "each generation gets its own id")
	assert.Equal(t, a.Systems, b.Systems)
	assert.Equal(t, a.Connectors, b.Connectors)
}

func TestCreateNetwork_RequestSeedLeavesConfigUntouched(t *testing.T) {
	cfg := config.Default()
	configured := uint64(42)
	cfg.Generator.Seed = &configured
	h := NewServer(cfg, nil, metrics.NewRegistry()).Router()

	n := createNetwork(t, h, `{"seed": 7}`)
	assert.Equal(t, uint64(7), n.Seed)
	assert.Equal(t, uint64(42), *cfg.Generator.Seed)

	n = createNetwork(t, h, "")
	assert.Equal(t, uint64(42), n.Seed, "empty body falls back to the configured seed")
}

func TestCreateNetwork_Invalid(t *testing.T) {
	_, h := setupTestServer(t)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"negative", `{"systems": -1}`, "Systems"},
		{"too many", `{"interfaces": 20000}`, "Interfaces"},
		{"malformed", `{"systems":`, "invalid request body"},
		{"unknown field", `{"sytems": 4}`, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/api/v1/networks", tt.body)
			require.Equal(t, http.StatusBadRequest, rr.Code)

			resp := decode[ErrorResponse](t, rr)
			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.Contains(t, resp.Message, tt.message)
		})
	}
}

func TestGetNetwork(t *testing.T) {
	_, h := setupTestServer(t)
	created := createNetwork(t, h, `{"systems": 4, "connectors": 6, "interfaces": 2, "seed": 1}`)

	rr := do(t, h, http.MethodGet, "/api/v1/networks/"+created.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)

	got := decode[testNetwork](t, rr)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Systems, got.Systems)
}

func TestGetNetwork_NotFound(t *testing.T) {
	_, h := setupTestServer(t)

	for _, path := range []string{
		"/api/v1/networks/missing",
		"/api/v1/networks/missing/stats",
		"/api/v1/networks/missing/components",
	} {
		rr := do(t, h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		assert.Contains(t, decode[ErrorResponse](t, rr).Message, "missing")
	}

	rr := do(t, h, http.MethodPost, "/api/v1/networks/missing/isolate", `{}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListNetworks(t *testing.T) {
	_, h := setupTestServer(t)
	a := createNetwork(t, h, `{"systems": 2, "seed": 1}`)
	b := createNetwork(t, h, `{"systems": 3, "seed": 2}`)

	rr := do(t, h, http.MethodGet, "/api/v1/networks", "")
	require.Equal(t, http.StatusOK, rr.Code)

	list := decode[[]struct {
		ID string `json:"id"`
	}](t, rr)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)
}

func TestGetStats(t *testing.T) {
	_, h := setupTestServer(t)
	created := createNetwork(t, h, `{"systems": 0, "connectors": 3, "interfaces": 2, "seed": 5}`)

	rr := do(t, h, http.MethodGet, "/api/v1/networks/"+created.ID+"/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)

	stats := decode[StatsResponse](t, rr)
	assert.Equal(t, created.ID, stats.ID)
	assert.Equal(t, 3, stats.UnboundConnectors)
	assert.Equal(t, 0.0, stats.AverageConnectivity)
}

func TestGetComponents(t *testing.T) {
	_, h := setupTestServer(t)
	created := createNetwork(t, h, `{"systems": 5, "connectors": 8, "interfaces": 1, "seed": 5}`)

	rr := do(t, h, http.MethodGet, "/api/v1/networks/"+created.ID+"/components", "")
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[ComponentsResponse](t, rr)
	assert.Len(t, resp.Components, 1)
	assert.Equal(t, 5, resp.Largest)
	assert.Equal(t, 4, resp.PeerDegree["s0"])
}

func TestIsolate(t *testing.T) {
	_, h := setupTestServer(t)
	created := createNetwork(t, h, `{"systems": 10, "connectors": 15, "interfaces": 8, "seed": 9}`)

	rr := do(t, h, http.MethodPost, "/api/v1/networks/"+created.ID+"/isolate", `{"batchSize": 3, "criterion": "priority"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decode[testIsolation](t, rr)
	assert.Equal(t, created.ID, resp.NetworkID)
	assert.Equal(t, "priority", resp.Criterion)
	assert.Equal(t, 3, resp.BatchSize)
	assert.Len(t, resp.Batch, 3)
	assert.Len(t, resp.Ranking, 10)
	assert.Len(t, resp.Assessment.Isolated, 3)
	assert.GreaterOrEqual(t, resp.Stability, resp.InitialStability)
}

func TestIsolate_Defaults(t *testing.T) {
	_, h := setupTestServer(t)
	created := createNetwork(t, h, `{"seed": 9}`)
	cfg := config.Default()

	rr := do(t, h, http.MethodPost, "/api/v1/networks/"+created.ID+"/isolate", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decode[testIsolation](t, rr)
	assert.Equal(t, cfg.Isolation.Criterion, resp.Criterion)
	assert.Len(t, resp.Batch, cfg.Isolation.BatchSize)
}

func TestIsolate_Deterministic(t *testing.T) {
	_, h := setupTestServer(t)
	created := createNetwork(t, h, `{"systems": 12, "connectors": 20, "interfaces": 6, "seed": 4}`)
	path := "/api/v1/networks/" + created.ID + "/isolate"

	first := decode[testIsolation](t, do(t, h, http.MethodPost, path, `{"batchSize": 4, "criterion": "load"}`))
	second := decode[testIsolation](t, do(t, h, http.MethodPost, path, `{"batchSize": 4, "criterion": "load"}`))
	assert.Equal(t, first.Batch, second.Batch)
}

func TestIsolate_Invalid(t *testing.T) {
	_, h := setupTestServer(t)
	created := createNetwork(t, h, `{"seed": 9}`)
	path := "/api/v1/networks/" + created.ID + "/isolate"

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"zero batch", `{"batchSize": 0}`, "BatchSize"},
		{"huge batch", `{"batchSize": 20000}`, "BatchSize"},
		{"unknown criterion", `{"criterion": "cost"}`, "Criterion"},
		{"malformed", `[`, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, path, tt.body)
			require.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, decode[ErrorResponse](t, rr).Message, tt.message)
		})
	}
}

func TestDeleteNetwork(t *testing.T) {
	s, h := setupTestServer(t)
	created := createNetwork(t, h, `{"seed": 2}`)

	rr := do(t, h, http.MethodDelete, "/api/v1/networks/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, 0, s.Store().Len())

	rr = do(t, h, http.MethodDelete, "/api/v1/networks/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStoreCapacity(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxNetworks = 2
	s := NewServer(cfg, nil, nil)
	h := s.Router()

	first := createNetwork(t, h, `{"seed": 1}`)
	createNetwork(t, h, `{"seed": 2}`)
	createNetwork(t, h, `{"seed": 3}`)

	assert.Equal(t, 2, s.Store().Len())
	rr := do(t, h, http.MethodGet, "/api/v1/networks/"+first.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUnknownRoute(t *testing.T) {
	_, h := setupTestServer(t)

	rr := do(t, h, http.MethodGet, "/api/v2/nothing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	rr = do(t, h, http.MethodPut, "/api/v1/networks", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
