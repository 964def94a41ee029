// Package api serves network generation and batch isolation over HTTP.
package api

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/dd0wney/cluso-isolate/pkg/config"
	"github.com/dd0wney/cluso-isolate/pkg/health"
	"github.com/dd0wney/cluso-isolate/pkg/isolation"
	"github.com/dd0wney/cluso-isolate/pkg/logging"
	"github.com/dd0wney/cluso-isolate/pkg/metrics"
	"github.com/dd0wney/cluso-isolate/pkg/network"
	"github.com/dd0wney/cluso-isolate/pkg/store"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Server holds the state shared by all handlers
type Server struct {
	cfg             *config.Config
	store           *store.Store
	health          *health.Checker
	isolator        *isolation.Isolator
	logger          logging.Logger
	metricsRegistry *metrics.Registry
	startTime       time.Time
}

// NewServer creates a server. A nil cfg uses config.Default, a nil logger
// discards output and a nil registry gets a fresh one.
func NewServer(cfg *config.Config, logger logging.Logger, registry *metrics.Registry) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if registry == nil {
		registry = metrics.NewRegistry()
	}

	s := &Server{
		cfg:             cfg,
		store:           store.New(cfg.Server.MaxNetworks, logger, registry),
		health:          health.NewChecker(Version),
		isolator:        isolation.NewIsolator(logger, registry),
		logger:          logger.With(logging.Component("api")),
		metricsRegistry: registry,
		startTime:       time.Now(),
	}

	storeCheck := health.StoreCheck(func() (int, int) { return s.store.Len(), s.store.Capacity() })
	s.health.RegisterCheck("store", storeCheck)
	s.health.RegisterCheck("memory", health.MemoryCheck(health.RuntimeMemory))
	s.health.RegisterReadinessCheck("store", storeCheck)
	return s
}

func sourceFor(seed *uint64) network.Source {
	if seed != nil {
		return network.NewSource(*seed)
	}
	return network.NewTimeSource()
}

// Router builds the HTTP handler with all routes and middleware
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.loggingMiddleware)
	r.Use(s.metricsMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", s.health.HTTPHandler())
	r.Get("/ready", s.health.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metricsRegistry.GetPrometheusRegistry(), promhttp.HandlerOpts{}))

	r.Route("/api/v1/networks", func(r chi.Router) {
		r.Post("/", s.createNetwork)
		r.Get("/", s.listNetworks)
		r.Route("/{networkID}", func(r chi.Router) {
			r.Get("/", s.getNetwork)
			r.Delete("/", s.deleteNetwork)
			r.Get("/stats", s.getStats)
			r.Get("/components", s.getComponents)
			r.Post("/isolate", s.isolate)
		})
	})

	return r
}

// Health exposes the checker so callers can register further checks
func (s *Server) Health() *health.Checker {
	return s.health
}

// Store exposes the network store, mainly for seeding from snapshots
func (s *Server) Store() *store.Store {
	return s.store
}

// RunMetricsUpdater refreshes the uptime gauges until ctx is done
func (s *Server) RunMetricsUpdater(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.metricsRegistry.UpdateUptime(s.startTime, runtime.NumGoroutine())
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
