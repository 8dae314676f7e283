package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/daybillhq/daybill/internal/client"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanClient reads a client row.
// Expected column order: id, company_name, contact_name, emails, billing_email, phone, address, notes, created_at, updated_at
func scanClient(s scanner) (*client.Client, error) {
	var c client.Client

	var contactName, phone, address, notes sql.NullString

	var emailsJSON []byte

	if err := s.Scan(
		&c.ID, &c.CompanyName, &contactName, &emailsJSON, &c.BillingEmail,
		&phone, &address, &notes, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(emailsJSON, &c.Emails); err != nil {
		return nil, fmt.Errorf("decoding emails: %w", err)
	}

	c.ContactName = contactName.String
	c.Phone = phone.String
	c.Address = address.String
	c.Notes = notes.String

	return &c, nil
}

const selectClientColumns = `
	id, company_name, contact_name, emails, billing_email, phone, address, notes, created_at, updated_at
`

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	emailsJSON, err := json.Marshal(c.Emails)
	if err != nil {
		return fmt.Errorf("encoding emails: %w", err)
	}

	query := `
		INSERT INTO clients (company_name, contact_name, emails, billing_email, phone, address, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = s.db.QueryRowContext(ctx, query,
		c.CompanyName,
		c.ContactName,
		string(emailsJSON),
		c.BillingEmail,
		c.Phone,
		c.Address,
		c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	return nil
}

func (s *Store) GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	return c, nil
}

func (s *Store) ListClients(ctx context.Context) ([]*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients ORDER BY company_name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*client.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client rows: %w", err)
	}

	return clients, nil
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	emailsJSON, err := json.Marshal(c.Emails)
	if err != nil {
		return fmt.Errorf("encoding emails: %w", err)
	}

	query := `
		UPDATE clients
		SET company_name = $1, contact_name = $2, emails = $3, billing_email = $4,
			phone = $5, address = $6, notes = $7, updated_at = NOW()
		WHERE id = $8
	`

	res, err := s.db.ExecContext(ctx, query,
		c.CompanyName,
		c.ContactName,
		string(emailsJSON),
		c.BillingEmail,
		c.Phone,
		c.Address,
		c.Notes,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return client.ErrNotFound
	}

	return nil
}

// DeleteClient removes the client row; projects, workdays and invoices
// follow via ON DELETE CASCADE.
func (s *Store) DeleteClient(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM clients WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	return nil
}
