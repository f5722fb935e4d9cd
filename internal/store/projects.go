package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("project not found")

// Project is one saved blueprint. Blueprint holds the frontend-format
// JSON exactly as it was served, so reloads need no re-normalization.
type Project struct {
	ID               uuid.UUID       `json:"id"`
	Idea             string          `json:"idea"`
	Mode             string          `json:"mode"`
	Blueprint        json.RawMessage `json:"blueprint"`
	UserFlowMermaid  string          `json:"user_flow_mermaid"`
	TechStackMermaid string          `json:"tech_stack_mermaid"`
	CreatedAt        time.Time       `json:"created_at"`
}

func (s *Store) SaveProject(ctx context.Context, p Project) (uuid.UUID, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, idea, mode, blueprint, user_flow_mermaid, tech_stack_mermaid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (id) DO UPDATE SET
			idea = EXCLUDED.idea,
			mode = EXCLUDED.mode,
			blueprint = EXCLUDED.blueprint,
			user_flow_mermaid = EXCLUDED.user_flow_mermaid,
			tech_stack_mermaid = EXCLUDED.tech_stack_mermaid
	`, p.ID, p.Idea, p.Mode, []byte(p.Blueprint), p.UserFlowMermaid, p.TechStackMermaid)
	if err != nil {
		return uuid.Nil, fmt.Errorf("save project: %w", err)
	}
	return p.ID, nil
}

func (s *Store) GetProject(ctx context.Context, id uuid.UUID) (Project, error) {
	var p Project
	var blueprintRaw []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT id, idea, mode, blueprint, user_flow_mermaid, tech_stack_mermaid, created_at
		FROM projects WHERE id = $1
	`, id).Scan(&p.ID, &p.Idea, &p.Mode, &blueprintRaw, &p.UserFlowMermaid, &p.TechStackMermaid, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	if err != nil {
		return Project{}, fmt.Errorf("get project: %w", err)
	}
	p.Blueprint = blueprintRaw
	return p, nil
}

func (s *Store) ListProjects(ctx context.Context, limit int) ([]Project, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, idea, mode, blueprint, user_flow_mermaid, tech_stack_mermaid, created_at
		FROM projects ORDER BY created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		var p Project
		var blueprintRaw []byte
		if err := rows.Scan(&p.ID, &p.Idea, &p.Mode, &blueprintRaw, &p.UserFlowMermaid, &p.TechStackMermaid, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.Blueprint = blueprintRaw
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) DeleteProject(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
