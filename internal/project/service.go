package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=project
type Repository interface {
	CreateProject(ctx context.Context, p *Project) error
	GetProject(ctx context.Context, id uuid.UUID) (*Project, error)
	ListProjects(ctx context.Context, filter ListFilter) ([]*Project, error)
	UpdateProject(ctx context.Context, p *Project) error
	DeleteProject(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	ClientID    uuid.UUID
	Name        string
	Billing     Billing
	Rate        int64
	Status      Status
	StartDate   *time.Time
	EndDate     *time.Time
	Description string
}

type ListFilter struct {
	ClientID *uuid.UUID
	Status   *Status
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Project, error) {
	status := params.Status
	if status == "" {
		status = StatusOpen
	}

	p := &Project{
		ClientID:    params.ClientID,
		Name:        strings.TrimSpace(params.Name),
		Billing:     params.Billing,
		Rate:        params.Rate,
		Status:      status,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		Description: params.Description,
	}

	if err := validate(p); err != nil {
		return nil, err
	}

	if err := s.repo.CreateProject(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	return s.repo.GetProject(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Project, error) {
	return s.repo.ListProjects(ctx, filter)
}

func (s *Service) Update(ctx context.Context, p *Project) error {
	if err := validate(p); err != nil {
		return err
	}

	return s.repo.UpdateProject(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteProject(ctx, id)
}

func validate(p *Project) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name required", ErrInvalid)
	}

	if p.ClientID == uuid.Nil {
		return fmt.Errorf("%w: client reference required", ErrInvalid)
	}

	switch p.Billing {
	case BillingDailyRate, BillingFixedPrice:
	default:
		return fmt.Errorf("%w: unknown billing mode %q", ErrInvalid, p.Billing)
	}

	switch p.Status {
	case StatusOpen, StatusInProgress, StatusCompleted:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, p.Status)
	}

	// Rates are integer minor units to keep sums exact; negative rates
	// would produce negative invoices.
	if p.Rate < 0 {
		return fmt.Errorf("%w: rate must not be negative", ErrInvalid)
	}

	return nil
}
