package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"reelforge/internal/provider"
)

func (s *Server) handleListProviders(w http.ResponseWriter, r *http.Request) {
	statuses, err := s.orchestrator.ProviderStatuses(r.Context())
	if err != nil {
		s.logger.Error("list providers", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list providers")
		return
	}
	s.writeJSON(w, http.StatusOK, statuses)
}

func (s *Server) handleTestProvider(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "provider")
	s.writeJSON(w, http.StatusOK, s.orchestrator.TestConnection(name))
}

// templatesResponse wraps a provider's prompt templates.
type templatesResponse struct {
	Provider  string              `json:"provider"`
	Templates []provider.Template `json:"templates"`
}

func (s *Server) handleGetTemplates(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "provider")
	s.writeJSON(w, http.StatusOK, templatesResponse{
		Provider:  name,
		Templates: s.registry.Templates(name),
	})
}
