package client

import (
	"context"
	"fmt"
	"net/mail"
	"slices"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	CreateClient(ctx context.Context, c *Client) error
	GetClient(ctx context.Context, id uuid.UUID) (*Client, error)
	ListClients(ctx context.Context) ([]*Client, error)
	UpdateClient(ctx context.Context, c *Client) error
	DeleteClient(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	CompanyName  string
	ContactName  string
	Emails       []string
	BillingEmail string
	Phone        string
	Address      string
	Notes        string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Client, error) {
	c := &Client{
		CompanyName:  strings.TrimSpace(params.CompanyName),
		ContactName:  params.ContactName,
		Emails:       params.Emails,
		BillingEmail: params.BillingEmail,
		Phone:        params.Phone,
		Address:      params.Address,
		Notes:        params.Notes,
	}

	if err := validate(c); err != nil {
		return nil, err
	}

	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	return s.repo.GetClient(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Client, error) {
	return s.repo.ListClients(ctx)
}

func (s *Service) Update(ctx context.Context, c *Client) error {
	if err := validate(c); err != nil {
		return err
	}

	return s.repo.UpdateClient(ctx, c)
}

// Delete removes the client. Projects, workdays and invoices owned by it
// are removed by the storage cascade.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteClient(ctx, id)
}

func validate(c *Client) error {
	if c.CompanyName == "" {
		return fmt.Errorf("%w: company name required", ErrInvalid)
	}

	if len(c.Emails) == 0 {
		return fmt.Errorf("%w: at least one email required", ErrInvalid)
	}

	for _, e := range c.Emails {
		if _, err := mail.ParseAddress(e); err != nil {
			return fmt.Errorf("%w: malformed email %q", ErrInvalid, e)
		}
	}

	if c.BillingEmail == "" {
		return fmt.Errorf("%w: billing email required", ErrInvalid)
	}

	// The billing email is usually one of the listed addresses, but a
	// standalone valid address is accepted too.
	if !slices.Contains(c.Emails, c.BillingEmail) {
		if _, err := mail.ParseAddress(c.BillingEmail); err != nil {
			return fmt.Errorf("%w: malformed billing email %q", ErrInvalid, c.BillingEmail)
		}
	}

	return nil
}
