package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"reelforge/internal/config"
	"reelforge/internal/generation"
	"reelforge/internal/provider"
	"reelforge/internal/store"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 30 * time.Second
)

// Server wraps the chi router and application dependencies.
type Server struct {
	router        *chi.Mux
	store         store.Store
	registry      *provider.Registry
	orchestrator  *generation.Orchestrator
	logger        *slog.Logger
	addr          string
	uploadDir     string
	maxUploadSize int64
	uploadLimiter *rate.Limiter
}

// NewServer creates and configures a new HTTP server.
func NewServer(cfg config.Config, s store.Store, reg *provider.Registry, orch *generation.Orchestrator, logger *slog.Logger) *Server {
	srv := &Server{
		router:        chi.NewRouter(),
		store:         s,
		registry:      reg,
		orchestrator:  orch,
		logger:        logger,
		addr:          cfg.ListenAddr,
		uploadDir:     cfg.UploadDir,
		maxUploadSize: cfg.MaxUploadBytes,
		uploadLimiter: rate.NewLimiter(rate.Limit(cfg.UploadRPS), cfg.UploadBurst),
	}

	srv.router.Use(middleware.RequestID)
	srv.router.Use(middleware.Recoverer)
	srv.router.Use(srv.loggingMiddleware)
	srv.router.Use(metricsMiddleware)
	srv.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	srv.routes()

	return srv
}

// routes registers all HTTP routes on the router.
func (s *Server) routes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/health/detailed", s.handleDetailedHealth)
	s.router.Handle("/metrics", metricsHandler())

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/ai", func(r chi.Router) {
			r.Post("/generate", s.handleCreateGeneration)
			r.Post("/batch-generate", s.handleBatchGeneration)
			r.Get("/generate", s.handleListGenerations)
			r.Get("/generate/{id}", s.handleGetGeneration)
			r.Delete("/generate/{id}", s.handleCancelGeneration)
			r.Get("/providers", s.handleListProviders)
			r.Post("/providers/{provider}/test", s.handleTestProvider)
			r.Get("/templates/{provider}", s.handleGetTemplates)
			r.Get("/stats", s.handleGenerationStats)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", s.handleCreateProject)
			r.Get("/", s.handleListProjects)
			r.Get("/{id}", s.handleGetProject)
			r.Put("/{id}", s.handleUpdateProject)
			r.Delete("/{id}", s.handleDeleteProject)
			r.Post("/{id}/duplicate", s.handleDuplicateProject)
		})

		r.Route("/videos", func(r chi.Router) {
			r.With(s.uploadRateLimit).Post("/upload", s.handleUploadMedia)
			r.Get("/project/{id}", s.handleListProjectMedia)
			r.Get("/{id}", s.handleGetMedia)
			r.Get("/{id}/download", s.handleDownloadMedia)
			r.Delete("/{id}", s.handleDeleteMedia)
		})
	})
}

// Router returns the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// loggingMiddleware logs each request using the structured logger.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// uploadRateLimit rejects upload bursts beyond the configured rate.
func (s *Server) uploadRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.uploadLimiter.Allow() {
			s.writeError(w, http.StatusTooManyRequests, "upload rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}
