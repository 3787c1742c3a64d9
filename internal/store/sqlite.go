package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"reelforge/internal/model"

	_ "modernc.org/sqlite"
)

const createProjectsTable = `
CREATE TABLE IF NOT EXISTS projects (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    description TEXT,
    resolution  TEXT NOT NULL,
    fps         INTEGER NOT NULL,
    status      TEXT NOT NULL,
    created_at  DATETIME NOT NULL,
    updated_at  DATETIME NOT NULL
)`

const createMediaTable = `
CREATE TABLE IF NOT EXISTS media (
    id         TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    filename   TEXT NOT NULL,
    file_type  TEXT NOT NULL,
    file_size  INTEGER NOT NULL,
    file_path  TEXT NOT NULL,
    duration   REAL,
    created_at DATETIME NOT NULL
)`

// ErrNotFound is returned when a project or media row is not found.
var ErrNotFound = errors.New("not found")

// Compile-time interface satisfaction check.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the SQLite database at dbPath and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	for _, stmt := range []string{createProjectsTable, createMediaTable} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create table: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateProject inserts a new project row.
func (s *SQLiteStore) CreateProject(ctx context.Context, p *model.Project) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (
			id, title, description, resolution, fps, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Description, p.Resolution, p.FPS, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetProject retrieves a project by ID.
func (s *SQLiteStore) GetProject(ctx context.Context, id string) (*model.Project, error) {
	p := &model.Project{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, resolution, fps, status, created_at, updated_at
		FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Title, &p.Description, &p.Resolution, &p.FPS, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// ListProjects returns all projects ordered by created_at DESC.
func (s *SQLiteStore) ListProjects(ctx context.Context) ([]*model.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, resolution, fps, status, created_at, updated_at
		FROM projects ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		p := &model.Project{}
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Resolution, &p.FPS, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

// UpdateProject writes the full project row back. Field merging is the
// caller's responsibility.
func (s *SQLiteStore) UpdateProject(ctx context.Context, p *model.Project) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE projects SET title = ?, description = ?, resolution = ?, fps = ?,
			status = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Description, p.Resolution, p.FPS, p.Status, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return checkAffected(result)
}

// DeleteProject removes a project row.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return checkAffected(result)
}

// CreateMedia inserts a new media row.
func (s *SQLiteStore) CreateMedia(ctx context.Context, m *model.Media) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO media (
			id, project_id, filename, file_type, file_size, file_path, duration, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ProjectID, m.Filename, m.FileType, m.FileSize, m.FilePath, m.Duration, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert media: %w", err)
	}
	return nil
}

// GetMedia retrieves a media row by ID.
func (s *SQLiteStore) GetMedia(ctx context.Context, id string) (*model.Media, error) {
	m := &model.Media{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, project_id, filename, file_type, file_size, file_path, duration, created_at
		FROM media WHERE id = ?`, id,
	).Scan(&m.ID, &m.ProjectID, &m.Filename, &m.FileType, &m.FileSize, &m.FilePath, &m.Duration, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get media: %w", err)
	}
	return m, nil
}

// ListMediaByProject returns a project's media ordered by created_at DESC.
func (s *SQLiteStore) ListMediaByProject(ctx context.Context, projectID string) ([]*model.Media, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project_id, filename, file_type, file_size, file_path, duration, created_at
		FROM media WHERE project_id = ? ORDER BY created_at DESC`, projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var media []*model.Media
	for rows.Next() {
		m := &model.Media{}
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Filename, &m.FileType, &m.FileSize, &m.FilePath, &m.Duration, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		media = append(media, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate media: %w", err)
	}
	return media, nil
}

// DeleteMedia removes a media row.
func (s *SQLiteStore) DeleteMedia(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM media WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	return checkAffected(result)
}

func checkAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
