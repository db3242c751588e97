package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

func (s *Store) CreateProject(name string) (*Project, error) {
	if name == "" {
		return nil, fmt.Errorf("project name must not be empty")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO projects (name, created_at, updated_at) VALUES (?, ?, ?)`,
		name, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetProject(id)
}

func (s *Store) GetProject(id int64) (*Project, error) {
	p := &Project{}
	var createdAt, updatedAt string
	err := s.db.QueryRow(
		`SELECT id, name, focus_seconds, total_seconds, created_at, updated_at FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.FocusSeconds, &p.TotalSeconds, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("get project %d: %w", id, err)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return p, nil
}

// GetProjectByName returns nil without error when no such project exists.
func (s *Store) GetProjectByName(name string) (*Project, error) {
	p := &Project{}
	var createdAt, updatedAt string
	err := s.db.QueryRow(
		`SELECT id, name, focus_seconds, total_seconds, created_at, updated_at FROM projects WHERE name = ?`, name,
	).Scan(&p.ID, &p.Name, &p.FocusSeconds, &p.TotalSeconds, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project %q: %w", name, err)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return p, nil
}

// LoadOrCreateProject fetches a project by name, creating it on first
// reference.
func (s *Store) LoadOrCreateProject(name string) (*Project, error) {
	p, err := s.GetProjectByName(name)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}
	return s.CreateProject(name)
}

func (s *Store) ListProjects() ([]Project, error) {
	rows, err := s.db.Query(
		`SELECT id, name, focus_seconds, total_seconds, created_at, updated_at FROM projects ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		var createdAt, updatedAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.FocusSeconds, &p.TotalSeconds, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// AddTime credits focus and total seconds to a project. This is the
// quit-path flush; both values may be zero.
func (s *Store) AddTime(id int64, focusSeconds, totalSeconds int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE projects
		 SET focus_seconds = focus_seconds + ?, total_seconds = total_seconds + ?, updated_at = ?
		 WHERE id = ?`,
		focusSeconds, totalSeconds, now, id,
	)
	if err != nil {
		return fmt.Errorf("add time to project %d: %w", id, err)
	}
	return nil
}
