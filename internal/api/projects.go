package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"reelforge/internal/model"
	"reelforge/internal/store"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 1000
)

// createProjectRequest is the JSON body for POST /api/v1/projects.
type createProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Resolution  string `json:"resolution"`
	FPS         *int   `json:"fps"`
}

// updateProjectRequest carries partial project updates; nil fields are left
// untouched.
type updateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Resolution  *string `json:"resolution"`
	FPS         *int    `json:"fps"`
}

func validFPS(fps int) bool {
	return fps >= 1 && fps <= 120
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Title == "" || len(req.Title) > maxTitleLen {
		s.writeError(w, http.StatusBadRequest, "title is required and must be at most 200 characters")
		return
	}
	if len(req.Description) > maxDescriptionLen {
		s.writeError(w, http.StatusBadRequest, "description must be at most 1000 characters")
		return
	}

	now := time.Now().UTC()
	p := &model.Project{
		ID:          model.NewID(),
		Title:       req.Title,
		Description: req.Description,
		Resolution:  model.DefaultResolution,
		FPS:         model.DefaultFPS,
		Status:      model.ProjectDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Resolution != "" {
		p.Resolution = req.Resolution
	}
	if req.FPS != nil {
		if !validFPS(*req.FPS) {
			s.writeError(w, http.StatusBadRequest, "fps must be between 1 and 120")
			return
		}
		p.FPS = *req.FPS
	}

	if err := s.store.CreateProject(r.Context(), p); err != nil {
		s.logger.Error("create project", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to create project")
		return
	}

	s.writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context())
	if err != nil {
		s.logger.Error("list projects", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}
	if projects == nil {
		projects = []*model.Project{}
	}
	s.writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := s.store.GetProject(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		s.logger.Error("get project", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get project")
		return
	}

	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateProjectRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	p, err := s.store.GetProject(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		s.logger.Error("get project for update", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to update project")
		return
	}

	if req.Title != nil {
		if *req.Title == "" || len(*req.Title) > maxTitleLen {
			s.writeError(w, http.StatusBadRequest, "title must be between 1 and 200 characters")
			return
		}
		p.Title = *req.Title
	}
	if req.Description != nil {
		if len(*req.Description) > maxDescriptionLen {
			s.writeError(w, http.StatusBadRequest, "description must be at most 1000 characters")
			return
		}
		p.Description = *req.Description
	}
	if req.Status != nil {
		if !model.ValidProjectStatus(*req.Status) {
			s.writeError(w, http.StatusBadRequest, "unknown project status")
			return
		}
		p.Status = *req.Status
	}
	if req.Resolution != nil {
		p.Resolution = *req.Resolution
	}
	if req.FPS != nil {
		if !validFPS(*req.FPS) {
			s.writeError(w, http.StatusBadRequest, "fps must be between 1 and 120")
			return
		}
		p.FPS = *req.FPS
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateProject(r.Context(), p); err != nil {
		s.logger.Error("update project", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to update project")
		return
	}

	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := s.store.DeleteProject(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		s.logger.Error("delete project", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to delete project")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDuplicateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	original, err := s.store.GetProject(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		s.logger.Error("get project for duplicate", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to duplicate project")
		return
	}

	now := time.Now().UTC()
	duplicate := &model.Project{
		ID:          model.NewID(),
		Title:       original.Title + " (Copy)",
		Description: original.Description,
		Resolution:  original.Resolution,
		FPS:         original.FPS,
		Status:      model.ProjectDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateProject(r.Context(), duplicate); err != nil {
		s.logger.Error("duplicate project", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to duplicate project")
		return
	}

	s.writeJSON(w, http.StatusCreated, duplicate)
}
