package api

import (
	"net/http"

	"github.com/dd0wney/cluso-isolate/pkg/isolation"
	"github.com/dd0wney/cluso-isolate/pkg/validation"
)

func (s *Server) isolate(w http.ResponseWriter, r *http.Request) {
	n, ok := s.lookupNetwork(w, r)
	if !ok {
		return
	}

	req := validation.IsolateRequest{
		BatchSize: s.cfg.Isolation.BatchSize,
		Criterion: s.cfg.Isolation.Criterion,
	}
	decoder := s.newRequestDecoder(w, r)
	decoder.DecodeJSON(&req).ValidateIsolate(&req)
	if decoder.RespondError() {
		return
	}

	criterion, err := isolation.ParseCriterion(req.Criterion)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report := s.isolator.Isolate(n, req.BatchSize, criterion)
	s.respondJSON(w, http.StatusOK, IsolateResponse{NetworkID: n.ID, Report: report})
}
