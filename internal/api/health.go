package api

import (
	"net/http"
	"time"

	"reelforge/internal/model"
)

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:  "healthy",
		Service: "reelforge",
	})
}

// detailedHealthResponse reports per-dependency status for operators.
type detailedHealthResponse struct {
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Providers map[string]bool `json:"providers"`
	Metrics   healthMetrics   `json:"metrics"`
}

type healthMetrics struct {
	TotalGenerations  int `json:"total_generations"`
	ActiveGenerations int `json:"active_generations"`
}

func (s *Server) handleDetailedHealth(w http.ResponseWriter, r *http.Request) {
	providers := make(map[string]bool)
	for _, name := range s.registry.Names() {
		providers[name] = s.registry.Available(name)
	}

	stats := s.orchestrator.Stats()
	active := stats.ByStatus[model.StatusQueued] + stats.ByStatus[model.StatusProcessing]

	s.writeJSON(w, http.StatusOK, detailedHealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Providers: providers,
		Metrics: healthMetrics{
			TotalGenerations:  stats.Total,
			ActiveGenerations: active,
		},
	})
}
