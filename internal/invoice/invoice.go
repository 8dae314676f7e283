package invoice

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("invoice not found")
	ErrInvalid  = errors.New("invalid invoice")

	// ErrNumberTaken is returned by the store when an insert collides with
	// an existing invoice number. Generate recovers from it by reallocating.
	ErrNumberTaken = errors.New("invoice number already taken")
)

// Status represents the payment state of an invoice.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Invoice is a billed amount for a project, frozen at generation time.
// Amount is a snapshot in minor currency units; regenerating from the same
// workdays later never mutates a persisted invoice. WorkdayIDs lists the
// days the invoice covers and is empty for fixed-price projects.
type Invoice struct {
	ID          uuid.UUID
	Number      string
	ProjectID   uuid.UUID
	ClientID    uuid.UUID
	Amount      int64
	Status      Status
	InvoiceDate time.Time
	DueDate     time.Time
	WorkdayIDs  []uuid.UUID
	Notes       string
	CreatedAt   time.Time
}
