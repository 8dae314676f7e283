package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/daybillhq/daybill/internal/invoice"
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

// Expected column order: id, number, project_id, client_id, amount, status, invoice_date, due_date, workday_ids, notes, created_at
func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	var statusStr string

	var notes sql.NullString

	var workdayJSON []byte

	if err := s.Scan(
		&inv.ID, &inv.Number, &inv.ProjectID, &inv.ClientID, &inv.Amount,
		&statusStr, &inv.InvoiceDate, &inv.DueDate, &workdayJSON, &notes,
		&inv.CreatedAt,
	); err != nil {
		return nil, err
	}

	if len(workdayJSON) > 0 {
		if err := json.Unmarshal(workdayJSON, &inv.WorkdayIDs); err != nil {
			return nil, fmt.Errorf("decoding workday ids: %w", err)
		}
	}

	inv.Status = invoice.Status(statusStr)
	inv.Notes = notes.String

	return &inv, nil
}

const selectInvoiceColumns = `
	id, number, project_id, client_id, amount, status, invoice_date, due_date, workday_ids, notes, created_at
`

// uniqueViolation is the Postgres error code raised by the UNIQUE
// constraint on invoices.number.
const uniqueViolation = "23505"

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	workdayJSON, err := json.Marshal(inv.WorkdayIDs)
	if err != nil {
		return fmt.Errorf("encoding workday ids: %w", err)
	}

	query := `
		INSERT INTO invoices (number, project_id, client_id, amount, status, invoice_date, due_date, workday_ids, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	err = s.db.QueryRowContext(ctx, query,
		inv.Number,
		inv.ProjectID,
		inv.ClientID,
		inv.Amount,
		inv.Status,
		inv.InvoiceDate,
		inv.DueDate,
		string(workdayJSON),
		inv.Notes,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return invoice.ErrNumberTaken
		}

		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND client_id = $%d", argIdx)

		args = append(args, *filter.ClientID)
		argIdx++
	}

	if filter.ProjectID != nil {
		query += fmt.Sprintf(" AND project_id = $%d", argIdx)

		args = append(args, *filter.ProjectID)
		argIdx++
	}

	query += " ORDER BY seq DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return invoices, nil
}

// LatestInvoiceNumber returns the number of the newest invoice by internal
// sequence, which is creation order rather than invoice date.
func (s *Store) LatestInvoiceNumber(ctx context.Context) (string, error) {
	query := `SELECT number FROM invoices ORDER BY seq DESC LIMIT 1`

	var number string

	err := s.db.QueryRowContext(ctx, query).Scan(&number)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}

		return "", fmt.Errorf("getting latest invoice number: %w", err)
	}

	return number, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status invoice.Status) error {
	query := `UPDATE invoices SET status = $1 WHERE id = $2`

	res, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating invoice status: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return invoice.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM invoices WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	return nil
}
