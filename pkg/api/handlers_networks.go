package api

import (
	"net/http"
	"time"

	"github.com/dd0wney/cluso-isolate/pkg/analysis"
	"github.com/dd0wney/cluso-isolate/pkg/logging"
	"github.com/dd0wney/cluso-isolate/pkg/network"
	"github.com/dd0wney/cluso-isolate/pkg/validation"
)

func (s *Server) createNetwork(w http.ResponseWriter, r *http.Request) {
	gen := s.cfg.Generator
	req := validation.GenerateRequest{
		Systems:    gen.Systems,
		Connectors: gen.Connectors,
		Interfaces: gen.Interfaces,
	}
	// The decoder writes through Seed, so never hand it the shared config pointer
	if gen.Seed != nil {
		seed := *gen.Seed
		req.Seed = &seed
	}

	decoder := s.newRequestDecoder(w, r)
	decoder.DecodeJSON(&req).ValidateGenerate(&req)
	if decoder.RespondError() {
		return
	}

	start := time.Now()
	n := network.NewGenerator(sourceFor(req.Seed), s.logger).Generate(req.Systems, req.Connectors, req.Interfaces)
	stats := network.ComputeStats(n)
	s.metricsRegistry.RecordGeneration(req.Systems, req.Connectors, req.Interfaces,
		stats.MaxInterfaceLinks-stats.MinInterfaceLinks, time.Since(start))

	if _, err := s.store.Put(n); err != nil {
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "store network"))
		return
	}

	s.logger.Info("network created",
		logging.NetworkID(n.ID),
		logging.Uint64("seed", n.Seed),
		logging.Int("systems", len(n.Systems)),
	)
	s.respondJSON(w, http.StatusCreated, NetworkResponse{Network: n, Stats: stats})
}

func (s *Server) listNetworks(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.store.List())
}

func (s *Server) getNetwork(w http.ResponseWriter, r *http.Request) {
	n, ok := s.lookupNetwork(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, NetworkResponse{Network: n, Stats: network.ComputeStats(n)})
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	n, ok := s.lookupNetwork(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, StatsResponse{ID: n.ID, Stats: network.ComputeStats(n)})
}

func (s *Server) getComponents(w http.ResponseWriter, r *http.Request) {
	n, ok := s.lookupNetwork(w, r)
	if !ok {
		return
	}
	result := analysis.ConnectedComponents(n, nil)
	s.respondJSON(w, http.StatusOK, ComponentsResponse{
		ID:         n.ID,
		Components: result.Components,
		Largest:    result.Largest(),
		PeerDegree: analysis.PeerDegree(n),
	})
}

func (s *Server) deleteNetwork(w http.ResponseWriter, r *http.Request) {
	n, ok := s.lookupNetwork(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(n.ID); err != nil {
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "delete network"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
