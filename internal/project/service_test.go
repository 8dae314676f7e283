package project_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybillhq/daybill/internal/project"
)

type stubRepo struct{}

func (stubRepo) CreateProject(_ context.Context, p *project.Project) error {
	p.ID = uuid.New()
	return nil
}

func (stubRepo) GetProject(_ context.Context, _ uuid.UUID) (*project.Project, error) {
	return nil, project.ErrNotFound
}

func (stubRepo) ListProjects(_ context.Context, _ project.ListFilter) ([]*project.Project, error) {
	return nil, nil
}
func (stubRepo) UpdateProject(_ context.Context, _ *project.Project) error { return nil }
func (stubRepo) DeleteProject(_ context.Context, _ uuid.UUID) error        { return nil }

func TestService_Create(t *testing.T) {
	type testCase struct {
		name    string
		params  project.CreateParams
		wantErr bool
	}

	clientID := uuid.New()

	tests := []testCase{
		{
			name: "DailyRate",
			params: project.CreateParams{
				ClientID: clientID,
				Name:     "Website Revamp",
				Billing:  project.BillingDailyRate,
				Rate:     20000,
			},
		},
		{
			name: "FixedPrice",
			params: project.CreateParams{
				ClientID: clientID,
				Name:     "Brand Identity",
				Billing:  project.BillingFixedPrice,
				Rate:     500000,
				Status:   project.StatusInProgress,
			},
		},
		{
			name: "ZeroRateAllowed",
			params: project.CreateParams{
				ClientID: clientID,
				Name:     "Pro Bono",
				Billing:  project.BillingFixedPrice,
				Rate:     0,
			},
		},
		{
			name: "MissingName",
			params: project.CreateParams{
				ClientID: clientID,
				Billing:  project.BillingDailyRate,
				Rate:     20000,
			},
			wantErr: true,
		},
		{
			name: "MissingClient",
			params: project.CreateParams{
				Name:    "Orphan",
				Billing: project.BillingDailyRate,
				Rate:    20000,
			},
			wantErr: true,
		},
		{
			name: "NegativeRate",
			params: project.CreateParams{
				ClientID: clientID,
				Name:     "Refund?",
				Billing:  project.BillingDailyRate,
				Rate:     -100,
			},
			wantErr: true,
		},
		{
			name: "UnknownBilling",
			params: project.CreateParams{
				ClientID: clientID,
				Name:     "Hourly",
				Billing:  project.Billing("hourly"),
				Rate:     100,
			},
			wantErr: true,
		},
		{
			name: "UnknownStatus",
			params: project.CreateParams{
				ClientID: clientID,
				Name:     "Limbo",
				Billing:  project.BillingDailyRate,
				Rate:     100,
				Status:   project.Status("archived"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := project.NewService(stubRepo{})

			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, project.ErrInvalid)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Create_DefaultStatus(t *testing.T) {
	svc := project.NewService(stubRepo{})

	got, err := svc.Create(context.Background(), project.CreateParams{
		ClientID: uuid.New(),
		Name:     "Website Revamp",
		Billing:  project.BillingDailyRate,
		Rate:     20000,
	})
	require.NoError(t, err)
	assert.Equal(t, project.StatusOpen, got.Status)
}
