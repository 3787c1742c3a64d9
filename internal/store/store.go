package store

import (
	"context"

	"reelforge/internal/model"
)

// Store defines the persistence operations for projects and uploaded media.
// Generation lifecycle state lives in memory and is not persisted here.
type Store interface {
	CreateProject(ctx context.Context, p *model.Project) error
	GetProject(ctx context.Context, id string) (*model.Project, error)
	ListProjects(ctx context.Context) ([]*model.Project, error)
	UpdateProject(ctx context.Context, p *model.Project) error
	DeleteProject(ctx context.Context, id string) error

	CreateMedia(ctx context.Context, m *model.Media) error
	GetMedia(ctx context.Context, id string) (*model.Media, error)
	ListMediaByProject(ctx context.Context, projectID string) ([]*model.Media, error)
	DeleteMedia(ctx context.Context, id string) error

	Close() error
}
