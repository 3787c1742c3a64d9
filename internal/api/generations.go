package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"reelforge/internal/generation"
	"reelforge/internal/model"
)

const maxBodySize = 1 << 20 // 1 MB

func (s *Server) handleCreateGeneration(w http.ResponseWriter, r *http.Request) {
	var req generation.Request
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	g, err := s.orchestrator.Submit(r.Context(), req)
	if err != nil {
		s.writeGenerationError(w, err, "failed to create generation")
		return
	}

	s.writeJSON(w, http.StatusCreated, g)
}

func (s *Server) handleBatchGeneration(w http.ResponseWriter, r *http.Request) {
	var reqs []generation.Request
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	generations, err := s.orchestrator.SubmitBatch(r.Context(), reqs)
	if err != nil {
		s.writeGenerationError(w, err, "failed to create batch")
		return
	}

	s.writeJSON(w, http.StatusCreated, generations)
}

func (s *Server) handleGetGeneration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	g, err := s.orchestrator.Get(id)
	if errors.Is(err, generation.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "generation not found")
		return
	}
	if err != nil {
		s.logger.Error("get generation", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get generation")
		return
	}

	s.writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleListGenerations(w http.ResponseWriter, r *http.Request) {
	statusFilter := r.URL.Query().Get("status")
	limit := parseIntQuery(r, "limit", generation.DefaultListLimit)

	if statusFilter != "" && !knownStatus(statusFilter) {
		s.writeError(w, http.StatusBadRequest, "unknown status filter")
		return
	}

	generations := s.orchestrator.List(statusFilter, limit)
	s.writeJSON(w, http.StatusOK, generations)
}

func (s *Server) handleCancelGeneration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := s.orchestrator.Cancel(id)
	switch {
	case errors.Is(err, generation.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "generation not found")
	case errors.Is(err, generation.ErrInvalidTransition):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		s.logger.Error("cancel generation", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to cancel generation")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleGenerationStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.orchestrator.Stats())
}

// writeGenerationError maps orchestrator validation errors to 400 responses
// and everything else to 500.
func (s *Server) writeGenerationError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, generation.ErrProviderUnavailable),
		errors.Is(err, generation.ErrUnsupportedType),
		errors.Is(err, generation.ErrEmptyPrompt),
		errors.Is(err, generation.ErrBatchTooLarge):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error(fallback, "error", err)
		s.writeError(w, http.StatusInternalServerError, fallback)
	}
}

func knownStatus(status string) bool {
	switch status {
	case model.StatusQueued, model.StatusProcessing, model.StatusCompleted,
		model.StatusFailed, model.StatusCancelled:
		return true
	}
	return false
}
