package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/daybillhq/daybill/internal/project"
	"github.com/daybillhq/daybill/internal/workday"
)

// fkViolation is the Postgres error code raised when workdays.project_id
// references a project that does not exist.
const fkViolation = "23503"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, project_id, day, created_at
func scanWorkday(s scanner) (*workday.Workday, error) {
	var w workday.Workday

	if err := s.Scan(&w.ID, &w.ProjectID, &w.Day, &w.CreatedAt); err != nil {
		return nil, err
	}

	// DATE columns come back at midnight in the session location; pin to UTC
	// so date comparisons stay location-free.
	w.Day = workday.NormalizeDay(w.Day)

	return &w, nil
}

const selectWorkdayColumns = `id, project_id, day, created_at`

// ToggleWorkday deletes the (project, day) row when it exists, otherwise
// inserts it. Delete and insert run in one transaction so the
// UNIQUE(project_id, day) constraint can never trip under the toggle.
func (s *Store) ToggleWorkday(ctx context.Context, projectID uuid.UUID, day time.Time) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning toggle tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM workdays WHERE project_id = $1 AND day = $2`,
		projectID, day,
	)
	if err != nil {
		return false, fmt.Errorf("unmarking workday: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}

	marked := deleted == 0
	if marked {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO workdays (project_id, day, created_at) VALUES ($1, $2, NOW())`,
			projectID, day,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
				return false, project.ErrNotFound
			}

			return false, fmt.Errorf("marking workday: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing toggle: %w", err)
	}

	return marked, nil
}

func (s *Store) ListWorkdays(ctx context.Context, projectID uuid.UUID, filter workday.ListFilter) ([]*workday.Workday, error) {
	query := `SELECT ` + selectWorkdayColumns + ` FROM workdays WHERE project_id = $1`

	args := []any{projectID}
	argIdx := 2

	if filter.Start != nil {
		query += fmt.Sprintf(" AND day >= $%d", argIdx)

		args = append(args, *filter.Start)
		argIdx++
	}

	if filter.End != nil {
		query += fmt.Sprintf(" AND day <= $%d", argIdx)

		args = append(args, *filter.End)
		argIdx++
	}

	query += " ORDER BY day ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing workdays: %w", err)
	}
	defer rows.Close()

	return collect(rows)
}

func (s *Store) GetWorkdays(ctx context.Context, ids []uuid.UUID) ([]*workday.Workday, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))

	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := `SELECT ` + selectWorkdayColumns + ` FROM workdays WHERE id IN (` +
		strings.Join(placeholders, ", ") + `) ORDER BY day ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("getting workdays: %w", err)
	}
	defer rows.Close()

	return collect(rows)
}

func collect(rows *sql.Rows) ([]*workday.Workday, error) {
	var days []*workday.Workday

	for rows.Next() {
		w, err := scanWorkday(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workday: %w", err)
		}

		days = append(days, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workday rows: %w", err)
	}

	return days, nil
}
