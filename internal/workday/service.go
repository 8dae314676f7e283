package workday

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=workday
type Repository interface {
	// ToggleWorkday atomically removes the (project, day) row if present,
	// or inserts it if absent. It reports whether the day is now marked.
	ToggleWorkday(ctx context.Context, projectID uuid.UUID, day time.Time) (bool, error)
	ListWorkdays(ctx context.Context, projectID uuid.UUID, filter ListFilter) ([]*Workday, error)
	GetWorkdays(ctx context.Context, ids []uuid.UUID) ([]*Workday, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	Start *time.Time
	End   *time.Time
}

// Toggle flips a single day: marked days become unmarked and vice versa.
// Applying the same toggle twice returns the project to its prior state.
func (s *Service) Toggle(ctx context.Context, projectID uuid.UUID, day time.Time) (bool, error) {
	if projectID == uuid.Nil {
		return false, fmt.Errorf("%w: project reference required", ErrInvalid)
	}

	return s.repo.ToggleWorkday(ctx, projectID, NormalizeDay(day))
}

func (s *Service) List(ctx context.Context, projectID uuid.UUID, filter ListFilter) ([]*Workday, error) {
	return s.repo.ListWorkdays(ctx, projectID, filter)
}

// GetByIDs resolves a set of workday identifiers, e.g. the days covered by
// an invoice.
func (s *Service) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*Workday, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	return s.repo.GetWorkdays(ctx, ids)
}
