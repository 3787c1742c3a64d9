package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"reelforge/internal/model"
	"reelforge/internal/store"
)

// videoExtensions also carry a stub duration; image uploads do not.
var videoExtensions = map[string]bool{
	".mp4": true,
	".avi": true,
	".mov": true,
	".mkv": true,
}

var allowedExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".mkv":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

func (s *Server) handleUploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)
	if err := r.ParseMultipartForm(s.maxUploadSize); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart form or file too large")
		return
	}

	projectID := r.FormValue("project_id")
	if projectID == "" {
		s.writeError(w, http.StatusBadRequest, "project_id is required")
		return
	}
	if _, err := s.store.GetProject(r.Context(), projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "project not found")
			return
		}
		s.logger.Error("get project for upload", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to upload media")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		s.writeError(w, http.StatusBadRequest, "no file selected")
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("file type %s not supported", ext))
		return
	}

	id := model.NewID()
	storedName := id + ext
	destPath := filepath.Join(s.uploadDir, storedName)

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		s.logger.Error("create upload dir", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}
	dest, err := os.Create(destPath)
	if err != nil {
		s.logger.Error("create upload file", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}
	defer dest.Close()

	size, err := io.Copy(dest, file)
	if err != nil {
		os.Remove(destPath)
		s.logger.Error("write upload file", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	m := &model.Media{
		ID:        id,
		ProjectID: projectID,
		Filename:  header.Filename,
		FileType:  strings.TrimPrefix(ext, "."),
		FileSize:  size,
		FilePath:  destPath,
		CreatedAt: time.Now().UTC(),
	}
	if videoExtensions[ext] {
		// Duration extraction would require probing the container; a stub
		// value stands in until a transcoding pipeline exists.
		d := 30.0
		m.Duration = &d
	}

	if err := s.store.CreateMedia(r.Context(), m); err != nil {
		os.Remove(destPath)
		s.logger.Error("create media", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to save media record")
		return
	}

	s.writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleListProjectMedia(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")

	media, err := s.store.ListMediaByProject(r.Context(), projectID)
	if err != nil {
		s.logger.Error("list project media", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list media")
		return
	}
	if media == nil {
		media = []*model.Media{}
	}
	s.writeJSON(w, http.StatusOK, media)
}

func (s *Server) handleGetMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m, err := s.store.GetMedia(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "media not found")
		return
	}
	if err != nil {
		s.logger.Error("get media", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get media")
		return
	}

	s.writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleDownloadMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m, err := s.store.GetMedia(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "media not found")
		return
	}
	if err != nil {
		s.logger.Error("get media for download", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get media")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"download_url": "/files/" + m.FilePath,
	})
}

func (s *Server) handleDeleteMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m, err := s.store.GetMedia(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "media not found")
		return
	}
	if err != nil {
		s.logger.Error("get media for delete", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to delete media")
		return
	}

	if err := s.store.DeleteMedia(r.Context(), id); err != nil {
		s.logger.Error("delete media", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to delete media")
		return
	}

	// Best effort: the record is authoritative, a leftover file is harmless.
	if err := os.Remove(m.FilePath); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("remove media file", "path", m.FilePath, "error", err)
	}

	w.WriteHeader(http.StatusNoContent)
}
