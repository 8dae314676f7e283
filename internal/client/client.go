package client

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("client not found")
	ErrInvalid  = errors.New("invalid client")
)

// Client represents a company invoices are billed to.
type Client struct {
	ID           uuid.UUID
	CompanyName  string
	ContactName  string
	Emails       []string
	BillingEmail string
	Phone        string
	Address      string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
