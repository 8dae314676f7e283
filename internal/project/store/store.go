package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/daybillhq/daybill/internal/project"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, client_id, name, billing, rate, status, start_date, end_date, description, created_at, updated_at
func scanProject(s scanner) (*project.Project, error) {
	var p project.Project

	var billingStr, statusStr string

	var description sql.NullString

	if err := s.Scan(
		&p.ID, &p.ClientID, &p.Name, &billingStr, &p.Rate, &statusStr,
		&p.StartDate, &p.EndDate, &description, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Billing = project.Billing(billingStr)
	p.Status = project.Status(statusStr)
	p.Description = description.String

	return &p, nil
}

const selectProjectColumns = `
	id, client_id, name, billing, rate, status, start_date, end_date, description, created_at, updated_at
`

func (s *Store) CreateProject(ctx context.Context, p *project.Project) error {
	query := `
		INSERT INTO projects (client_id, name, billing, rate, status, start_date, end_date, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.ClientID,
		p.Name,
		p.Billing,
		p.Rate,
		p.Status,
		p.StartDate,
		p.EndDate,
		p.Description,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}

	return nil
}

func (s *Store) GetProject(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	query := `SELECT ` + selectProjectColumns + ` FROM projects WHERE id = $1`

	p, err := scanProject(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, project.ErrNotFound
		}

		return nil, fmt.Errorf("getting project: %w", err)
	}

	return p, nil
}

func (s *Store) ListProjects(ctx context.Context, filter project.ListFilter) ([]*project.Project, error) {
	query := `SELECT ` + selectProjectColumns + ` FROM projects WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND client_id = $%d", argIdx)

		args = append(args, *filter.ClientID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*project.Project

	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}

		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project rows: %w", err)
	}

	return projects, nil
}

func (s *Store) UpdateProject(ctx context.Context, p *project.Project) error {
	query := `
		UPDATE projects
		SET name = $1, billing = $2, rate = $3, status = $4,
			start_date = $5, end_date = $6, description = $7, updated_at = NOW()
		WHERE id = $8
	`

	res, err := s.db.ExecContext(ctx, query,
		p.Name,
		p.Billing,
		p.Rate,
		p.Status,
		p.StartDate,
		p.EndDate,
		p.Description,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return project.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteProject(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM projects WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	return nil
}
