package project

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("project not found")
	ErrInvalid  = errors.New("invalid project")
)

// Billing selects how a project is invoiced.
type Billing string

const (
	BillingDailyRate  Billing = "daily_rate"
	BillingFixedPrice Billing = "fixed_price"
)

// Status represents the lifecycle state of a project.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Project is a billable engagement for a client. Rate is in minor currency
// units (cents): the flat amount for fixed_price projects, the per-day
// amount for daily_rate projects.
type Project struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	Name        string
	Billing     Billing
	Rate        int64
	Status      Status
	StartDate   *time.Time
	EndDate     *time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
