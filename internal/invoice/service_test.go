package invoice_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/daybillhq/daybill/internal/client"
	"github.com/daybillhq/daybill/internal/invoice"
	"github.com/daybillhq/daybill/internal/mail"
	"github.com/daybillhq/daybill/internal/project"
	"github.com/daybillhq/daybill/internal/workday"
)

// Handwritten repo stubs for the sibling services the invoice service
// orchestrates; only the lookup paths matter here.
type stubClientRepo struct {
	getFunc func(ctx context.Context, id uuid.UUID) (*client.Client, error)
}

func (s *stubClientRepo) CreateClient(ctx context.Context, c *client.Client) error { return nil }
func (s *stubClientRepo) GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	return s.getFunc(ctx, id)
}
func (s *stubClientRepo) ListClients(ctx context.Context) ([]*client.Client, error) {
	return nil, nil
}
func (s *stubClientRepo) UpdateClient(ctx context.Context, c *client.Client) error { return nil }
func (s *stubClientRepo) DeleteClient(ctx context.Context, id uuid.UUID) error     { return nil }

type stubProjectRepo struct {
	getFunc func(ctx context.Context, id uuid.UUID) (*project.Project, error)
}

func (s *stubProjectRepo) CreateProject(ctx context.Context, p *project.Project) error { return nil }
func (s *stubProjectRepo) GetProject(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	return s.getFunc(ctx, id)
}
func (s *stubProjectRepo) ListProjects(ctx context.Context, filter project.ListFilter) ([]*project.Project, error) {
	return nil, nil
}
func (s *stubProjectRepo) UpdateProject(ctx context.Context, p *project.Project) error { return nil }
func (s *stubProjectRepo) DeleteProject(ctx context.Context, id uuid.UUID) error       { return nil }

type stubWorkdayRepo struct {
	getFunc func(ctx context.Context, ids []uuid.UUID) ([]*workday.Workday, error)
}

func (s *stubWorkdayRepo) ToggleWorkday(ctx context.Context, projectID uuid.UUID, day time.Time) (bool, error) {
	return false, nil
}
func (s *stubWorkdayRepo) ListWorkdays(ctx context.Context, projectID uuid.UUID, filter workday.ListFilter) ([]*workday.Workday, error) {
	return nil, nil
}
func (s *stubWorkdayRepo) GetWorkdays(ctx context.Context, ids []uuid.UUID) ([]*workday.Workday, error) {
	return s.getFunc(ctx, ids)
}

type fixture struct {
	client   *client.Client
	project  *project.Project
	workdays []*workday.Workday
}

func newFixture(billing project.Billing, rate int64, dates ...time.Time) *fixture {
	f := &fixture{
		client: &client.Client{
			ID:           uuid.New(),
			CompanyName:  "Acme Co",
			Emails:       []string{"ap@acme.test"},
			BillingEmail: "ap@acme.test",
		},
	}

	f.project = &project.Project{
		ID:       uuid.New(),
		ClientID: f.client.ID,
		Name:     "Website Revamp",
		Billing:  billing,
		Rate:     rate,
		Status:   project.StatusInProgress,
	}

	for _, d := range dates {
		f.workdays = append(f.workdays, &workday.Workday{
			ID:        uuid.New(),
			ProjectID: f.project.ID,
			Day:       d,
		})
	}

	return f
}

func (f *fixture) workdayIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(f.workdays))
	for i, d := range f.workdays {
		ids[i] = d.ID
	}

	return ids
}

func newTestService(t *testing.T, f *fixture, repo invoice.Repository, renderer invoice.Renderer, dispatcher invoice.Dispatcher) *invoice.Service {
	t.Helper()

	clients := client.NewService(&stubClientRepo{
		getFunc: func(_ context.Context, id uuid.UUID) (*client.Client, error) {
			if id != f.client.ID {
				return nil, client.ErrNotFound
			}

			return f.client, nil
		},
	})

	projects := project.NewService(&stubProjectRepo{
		getFunc: func(_ context.Context, id uuid.UUID) (*project.Project, error) {
			if id != f.project.ID {
				return nil, project.ErrNotFound
			}

			return f.project, nil
		},
	})

	workdays := workday.NewService(&stubWorkdayRepo{
		getFunc: func(_ context.Context, ids []uuid.UUID) ([]*workday.Workday, error) {
			var found []*workday.Workday

			for _, d := range f.workdays {
				for _, id := range ids {
					if d.ID == id {
						found = append(found, d)
						break
					}
				}
			}

			return found, nil
		},
	})

	return invoice.NewService(repo, clients, projects, workdays, renderer, dispatcher, 30)
}

func TestService_Generate_DailyRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(project.BillingDailyRate, 20000,
		day(2025, 1, 1), day(2025, 1, 2), day(2025, 1, 3),
		day(2025, 1, 6), day(2025, 1, 8), day(2025, 1, 11),
	)

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().LatestInvoiceNumber(gomock.Any()).Return("", nil)
	repo.EXPECT().
		CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
			inv.ID = uuid.New()
			inv.CreatedAt = time.Now()
			return nil
		})

	svc := newTestService(t, f, repo, nil, nil)

	inv, err := svc.Generate(context.Background(), invoice.GenerateParams{
		ProjectID:  f.project.ID,
		WorkdayIDs: f.workdayIDs(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(120000), inv.Amount)
	assert.Equal(t, fmt.Sprintf("INV-%d-001", time.Now().Year()), inv.Number)
	assert.Equal(t, invoice.StatusPending, inv.Status)
	assert.Equal(t, f.client.ID, inv.ClientID)
	assert.Len(t, inv.WorkdayIDs, 6)
}

func TestService_Generate_FixedPrice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(project.BillingFixedPrice, 500000)

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().LatestInvoiceNumber(gomock.Any()).Return("INV-2025-003", nil)
	repo.EXPECT().
		CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
			inv.ID = uuid.New()
			return nil
		})

	svc := newTestService(t, f, repo, nil, nil)

	// Zero selected workdays is fine for fixed price.
	inv, err := svc.Generate(context.Background(), invoice.GenerateParams{
		ProjectID: f.project.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(500000), inv.Amount)
	assert.Empty(t, inv.WorkdayIDs)
	assert.Equal(t, fmt.Sprintf("INV-%d-004", time.Now().Year()), inv.Number)
}

func TestService_Generate_DuplicateSelectionCountsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(project.BillingDailyRate, 20000, day(2025, 1, 6))

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().LatestInvoiceNumber(gomock.Any()).Return("", nil)
	repo.EXPECT().
		CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
			inv.ID = uuid.New()
			return nil
		})

	svc := newTestService(t, f, repo, nil, nil)

	// Same workday selected twice: one selection, one billed day.
	inv, err := svc.Generate(context.Background(), invoice.GenerateParams{
		ProjectID:  f.project.ID,
		WorkdayIDs: []uuid.UUID{f.workdays[0].ID, f.workdays[0].ID},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(20000), inv.Amount)
	assert.Equal(t, []uuid.UUID{f.workdays[0].ID}, inv.WorkdayIDs)
}

func TestService_Generate_DailyRateNoWorkdays(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(project.BillingDailyRate, 20000)

	repo := invoice.NewMockRepository(ctrl)

	svc := newTestService(t, f, repo, nil, nil)

	_, err := svc.Generate(context.Background(), invoice.GenerateParams{
		ProjectID: f.project.ID,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, invoice.ErrInvalid)
	assert.Contains(t, err.Error(), "at least one workday required")
}

func TestService_Generate_ForeignWorkdayRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(project.BillingDailyRate, 20000, day(2025, 2, 3))
	f.workdays[0].ProjectID = uuid.New()

	repo := invoice.NewMockRepository(ctrl)

	svc := newTestService(t, f, repo, nil, nil)

	_, err := svc.Generate(context.Background(), invoice.GenerateParams{
		ProjectID:  f.project.ID,
		WorkdayIDs: f.workdayIDs(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, invoice.ErrInvalid)
}

func TestService_Generate_RetriesOnNumberConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(project.BillingFixedPrice, 100000)

	repo := invoice.NewMockRepository(ctrl)
	gomock.InOrder(
		repo.EXPECT().LatestInvoiceNumber(gomock.Any()).Return("INV-2025-007", nil),
		repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(invoice.ErrNumberTaken),
		repo.EXPECT().LatestInvoiceNumber(gomock.Any()).Return("INV-2025-008", nil),
		repo.EXPECT().
			CreateInvoice(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
				inv.ID = uuid.New()
				return nil
			}),
	)

	svc := newTestService(t, f, repo, nil, nil)

	inv, err := svc.Generate(context.Background(), invoice.GenerateParams{
		ProjectID: f.project.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("INV-%d-009", time.Now().Year()), inv.Number)
}

func TestService_Generate_ConflictRetriesExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(project.BillingFixedPrice, 100000)

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().LatestInvoiceNumber(gomock.Any()).Return("INV-2025-001", nil).Times(3)
	repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(invoice.ErrNumberTaken).Times(3)

	svc := newTestService(t, f, repo, nil, nil)

	_, err := svc.Generate(context.Background(), invoice.GenerateParams{
		ProjectID: f.project.ID,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, invoice.ErrNumberTaken)
}

func TestService_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(project.BillingDailyRate, 20000, day(2025, 1, 1), day(2025, 1, 2))

	inv := &invoice.Invoice{
		ID:          uuid.New(),
		Number:      "INV-2025-004",
		ProjectID:   f.project.ID,
		ClientID:    f.client.ID,
		Amount:      40000,
		Status:      invoice.StatusPending,
		InvoiceDate: day(2025, 1, 15),
		DueDate:     day(2025, 2, 14),
		WorkdayIDs:  f.workdayIDs(),
	}

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().GetInvoice(gomock.Any(), inv.ID).Return(inv, nil)

	renderer := invoice.NewMockRenderer(ctrl)
	renderer.EXPECT().
		Render(inv, f.client, f.project, gomock.Any()).
		Return([]byte("%PDF-fake"), nil)

	var sent mail.Message

	dispatcher := invoice.NewMockDispatcher(ctrl)
	dispatcher.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg mail.Message) error {
			sent = msg
			return nil
		})

	svc := newTestService(t, f, repo, renderer, dispatcher)

	err := svc.Send(context.Background(), inv.ID, invoice.SendParams{})
	require.NoError(t, err)

	assert.Equal(t, "ap@acme.test", sent.To)
	assert.Equal(t, "Invoice INV-2025-004", sent.Subject)
	require.Len(t, sent.Attachments, 1)
	assert.Equal(t, "invoice-INV-2025-004.pdf", sent.Attachments[0].Filename)
	assert.Equal(t, "application/pdf", sent.Attachments[0].ContentType)
	assert.Equal(t, []byte("%PDF-fake"), sent.Attachments[0].Content)
}

func TestService_Send_DispatchFailureLeavesInvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(project.BillingFixedPrice, 500000)

	inv := &invoice.Invoice{
		ID:          uuid.New(),
		Number:      "INV-2025-009",
		ProjectID:   f.project.ID,
		ClientID:    f.client.ID,
		Amount:      500000,
		Status:      invoice.StatusPending,
		InvoiceDate: day(2025, 3, 1),
		DueDate:     day(2025, 3, 31),
	}

	// No DeleteInvoice or UpdateStatus expectations: a failed send must not
	// touch the persisted invoice.
	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().GetInvoice(gomock.Any(), inv.ID).Return(inv, nil)

	renderer := invoice.NewMockRenderer(ctrl)
	renderer.EXPECT().
		Render(inv, f.client, f.project, gomock.Any()).
		Return([]byte("%PDF-fake"), nil)

	dispatcher := invoice.NewMockDispatcher(ctrl)
	dispatcher.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("%w: connection refused", mail.ErrDispatch))

	svc := newTestService(t, f, repo, renderer, dispatcher)

	err := svc.Send(context.Background(), inv.ID, invoice.SendParams{})
	require.Error(t, err)
	assert.ErrorIs(t, err, mail.ErrDispatch)
}

func TestService_UpdateStatus_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(project.BillingFixedPrice, 100)

	repo := invoice.NewMockRepository(ctrl)

	svc := newTestService(t, f, repo, nil, nil)

	err := svc.UpdateStatus(context.Background(), uuid.New(), invoice.Status("cancelled"))
	require.Error(t, err)
	assert.ErrorIs(t, err, invoice.ErrInvalid)
}
