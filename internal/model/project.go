package model

import "time"

// Project status constants.
const (
	ProjectDraft      = "draft"
	ProjectInProgress = "in_progress"
	ProjectCompleted  = "completed"
	ProjectArchived   = "archived"
)

// Default project settings applied when a create request omits them.
const (
	DefaultResolution = "1920x1080"
	DefaultFPS        = 30
)

// ValidProjectStatus reports whether s is a recognized project status.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectDraft, ProjectInProgress, ProjectCompleted, ProjectArchived:
		return true
	}
	return false
}

// Project represents a video project that media and generations attach to.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Resolution  string    `json:"resolution"`
	FPS         int       `json:"fps"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Media represents an uploaded media file belonging to a project.
type Media struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Filename  string    `json:"filename"`
	FileType  string    `json:"file_type"`
	FileSize  int64     `json:"file_size"`
	FilePath  string    `json:"file_path"`
	Duration  *float64  `json:"duration,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
