package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dd0wney/cluso-isolate/pkg/logging"
	"github.com/dd0wney/cluso-isolate/pkg/network"
	"github.com/dd0wney/cluso-isolate/pkg/store"
	"github.com/dd0wney/cluso-isolate/pkg/validation"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// sanitizeError logs err and returns a message safe to show a client
func (s *Server) sanitizeError(err error, operation string) string {
	if err == nil {
		return ""
	}
	s.logger.Error("request failed", logging.String("operation", operation), logging.Error(err))
	return fmt.Sprintf("%s failed", operation)
}

// requestDecoder decodes and validates request bodies.
// Check RespondError after the chain.
type requestDecoder struct {
	r          *http.Request
	w          http.ResponseWriter
	server     *Server
	err        error
	statusCode int
}

func (s *Server) newRequestDecoder(w http.ResponseWriter, r *http.Request) *requestDecoder {
	return &requestDecoder{r: r, w: w, server: s}
}

// DecodeJSON decodes the body into v. An empty body leaves v untouched.
func (rd *requestDecoder) DecodeJSON(v any) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	dec := json.NewDecoder(http.MaxBytesReader(rd.w, rd.r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		rd.err = fmt.Errorf("invalid request body: %w", err)
		rd.statusCode = http.StatusBadRequest
	}
	return rd
}

// ValidateGenerate checks generation sizes
func (rd *requestDecoder) ValidateGenerate(req *validation.GenerateRequest) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	if err := validation.ValidateGenerateRequest(req); err != nil {
		rd.err = err
		rd.statusCode = http.StatusBadRequest
	}
	return rd
}

// ValidateIsolate checks the batch size and criterion
func (rd *requestDecoder) ValidateIsolate(req *validation.IsolateRequest) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	if err := validation.ValidateIsolateRequest(req); err != nil {
		rd.err = err
		rd.statusCode = http.StatusBadRequest
	}
	return rd
}

// RespondError sends the error response and returns true if there was an error
func (rd *requestDecoder) RespondError() bool {
	if rd.err == nil {
		return false
	}
	rd.server.respondError(rd.w, rd.statusCode, rd.err.Error())
	return true
}

// lookupNetwork resolves the {networkID} path parameter. On failure the
// error response has already been written.
func (s *Server) lookupNetwork(w http.ResponseWriter, r *http.Request) (*network.Network, bool) {
	id := chi.URLParam(r, "networkID")
	n, err := s.store.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("network %q not found", id))
		return nil, false
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "load network"))
		return nil, false
	}
	return n, true
}
