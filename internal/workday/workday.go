package workday

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("workday not found")
	ErrInvalid  = errors.New("invalid workday")
)

// Workday marks a single calendar date as worked on a project. Day is an
// abstract day, not an instant: it is normalized to midnight UTC and only
// its calendar date is ever compared.
type Workday struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Day       time.Time
	CreatedAt time.Time
}

// NormalizeDay strips the time-of-day and location from t so two values on
// the same calendar date always compare equal.
func NormalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
