package invoice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/daybillhq/daybill/internal/client"
	"github.com/daybillhq/daybill/internal/mail"
	"github.com/daybillhq/daybill/internal/project"
	"github.com/daybillhq/daybill/internal/workday"
)

// allocAttempts bounds number reallocation after unique-constraint
// collisions before the conflict is surfaced to the caller.
const allocAttempts = 3

//go:generate mockgen -source=service.go -destination=service_mock.go -package=invoice
type Repository interface {
	// CreateInvoice inserts the invoice and returns ErrNumberTaken when its
	// number collides with an existing row.
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)
	// LatestInvoiceNumber returns the number of the most recently created
	// invoice by internal creation order, or "" when none exist.
	LatestInvoiceNumber(ctx context.Context) (string, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
}

// Renderer lays an invoice out as a printable PDF and returns the bytes.
type Renderer interface {
	Render(inv *Invoice, cl *client.Client, pr *project.Project, days []*workday.Workday) ([]byte, error)
}

// Dispatcher hands a message to the outbound email channel.
type Dispatcher interface {
	Send(ctx context.Context, msg mail.Message) error
}

type Service struct {
	repo       Repository
	clients    *client.Service
	projects   *project.Service
	workdays   *workday.Service
	renderer   Renderer
	dispatcher Dispatcher
	dueDays    int

	// allocMu serializes read-latest, compute-next, insert so two
	// concurrent generations cannot both claim the same number. The
	// UNIQUE constraint on number plus retry backstops other writers.
	allocMu sync.Mutex
}

func NewService(
	repo Repository,
	clients *client.Service,
	projects *project.Service,
	workdays *workday.Service,
	renderer Renderer,
	dispatcher Dispatcher,
	dueDays int,
) *Service {
	return &Service{
		repo:       repo,
		clients:    clients,
		projects:   projects,
		workdays:   workdays,
		renderer:   renderer,
		dispatcher: dispatcher,
		dueDays:    dueDays,
	}
}

type GenerateParams struct {
	ProjectID   uuid.UUID
	WorkdayIDs  []uuid.UUID
	InvoiceDate *time.Time
	DueDate     *time.Time
	Notes       string
}

type ListFilter struct {
	Status    *Status
	ClientID  *uuid.UUID
	ProjectID *uuid.UUID
}

// Generate computes the amount for the selected workdays, allocates the
// next invoice number and persists the invoice in one pass. The amount is
// frozen at this point; later rate or workday edits never touch it.
func (s *Service) Generate(ctx context.Context, params GenerateParams) (*Invoice, error) {
	pr, err := s.projects.Get(ctx, params.ProjectID)
	if err != nil {
		return nil, err
	}

	cl, err := s.clients.Get(ctx, pr.ClientID)
	if err != nil {
		return nil, err
	}

	var (
		coveredIDs []uuid.UUID
		dates      []time.Time
	)

	if pr.Billing == project.BillingDailyRate {
		// The selection is a set: the same workday listed twice is one
		// selection, not an error.
		seenIDs := make(map[uuid.UUID]struct{}, len(params.WorkdayIDs))
		selected := make([]uuid.UUID, 0, len(params.WorkdayIDs))

		for _, id := range params.WorkdayIDs {
			if _, dup := seenIDs[id]; dup {
				continue
			}

			seenIDs[id] = struct{}{}

			selected = append(selected, id)
		}

		days, err := s.workdays.GetByIDs(ctx, selected)
		if err != nil {
			return nil, err
		}

		if len(days) != len(selected) {
			return nil, fmt.Errorf("%w: unknown workday selected", workday.ErrNotFound)
		}

		seen := make(map[string]struct{}, len(days))

		for _, d := range days {
			if d.ProjectID != pr.ID {
				return nil, fmt.Errorf("%w: workday %s belongs to another project", ErrInvalid, d.ID)
			}

			key := d.Day.Format(time.DateOnly)
			if _, dup := seen[key]; dup {
				continue
			}

			seen[key] = struct{}{}

			coveredIDs = append(coveredIDs, d.ID)
			dates = append(dates, d.Day)
		}
	}

	amount, err := ComputeAmount(pr.Billing, pr.Rate, dates)
	if err != nil {
		return nil, err
	}

	invoiceDate := time.Now()
	if params.InvoiceDate != nil {
		invoiceDate = *params.InvoiceDate
	}

	dueDate := invoiceDate.AddDate(0, 0, s.dueDays)
	if params.DueDate != nil {
		dueDate = *params.DueDate
	}

	inv := &Invoice{
		ProjectID:   pr.ID,
		ClientID:    cl.ID,
		Amount:      amount,
		Status:      StatusPending,
		InvoiceDate: invoiceDate,
		DueDate:     dueDate,
		WorkdayIDs:  coveredIDs,
		Notes:       params.Notes,
	}

	if err := s.allocateAndCreate(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) allocateAndCreate(ctx context.Context, inv *Invoice) error {
	s.allocMu.Lock()
	defer s.allocMu.Unlock()

	var err error

	for attempt := 0; attempt < allocAttempts; attempt++ {
		var latest string

		latest, err = s.repo.LatestInvoiceNumber(ctx)
		if err != nil {
			return err
		}

		inv.Number = NextNumber(time.Now().Year(), latest)

		err = s.repo.CreateInvoice(ctx, inv)
		if !errors.Is(err, ErrNumberTaken) {
			return err
		}
	}

	return fmt.Errorf("allocating invoice number: %w", err)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, filter)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	switch status {
	case StatusPending, StatusPaid, StatusOverdue:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, status)
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteInvoice(ctx, id)
}

// RenderPDF loads the invoice with its client, project and covered
// workdays and renders the printable document.
func (s *Service) RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, *Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	pr, err := s.projects.Get(ctx, inv.ProjectID)
	if err != nil {
		return nil, nil, err
	}

	cl, err := s.clients.Get(ctx, inv.ClientID)
	if err != nil {
		return nil, nil, err
	}

	days, err := s.workdays.GetByIDs(ctx, inv.WorkdayIDs)
	if err != nil {
		return nil, nil, err
	}

	pdf, err := s.renderer.Render(inv, cl, pr, days)
	if err != nil {
		return nil, nil, fmt.Errorf("rendering invoice %s: %w", inv.Number, err)
	}

	return pdf, inv, nil
}

type SendParams struct {
	To      string
	Subject string
	Body    string
}

// Send renders the invoice and emails it as a PDF attachment. The invoice
// is already durable before any send is attempted, so a dispatch failure
// leaves it intact and re-sendable.
func (s *Service) Send(ctx context.Context, id uuid.UUID, params SendParams) error {
	pdf, inv, err := s.RenderPDF(ctx, id)
	if err != nil {
		return err
	}

	to := params.To
	if to == "" {
		cl, err := s.clients.Get(ctx, inv.ClientID)
		if err != nil {
			return err
		}

		to = cl.BillingEmail
	}

	subject := params.Subject
	if subject == "" {
		subject = fmt.Sprintf("Invoice %s", inv.Number)
	}

	body := params.Body
	if body == "" {
		body = fmt.Sprintf("Please find invoice %s attached. Payment is due by %s.",
			inv.Number, inv.DueDate.Format("January 2, 2006"))
	}

	msg := mail.Message{
		To:      to,
		Subject: subject,
		Body:    body,
		Attachments: []mail.Attachment{{
			Filename:    fmt.Sprintf("invoice-%s.pdf", inv.Number),
			Content:     pdf,
			ContentType: "application/pdf",
		}},
	}

	return s.dispatcher.Send(ctx, msg)
}
