package client_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybillhq/daybill/internal/client"
)

type stubRepo struct {
	created *client.Client
}

func (r *stubRepo) CreateClient(_ context.Context, c *client.Client) error {
	c.ID = uuid.New()
	r.created = c

	return nil
}

func (r *stubRepo) GetClient(_ context.Context, _ uuid.UUID) (*client.Client, error) {
	return nil, client.ErrNotFound
}
func (r *stubRepo) ListClients(_ context.Context) ([]*client.Client, error) { return nil, nil }
func (r *stubRepo) UpdateClient(_ context.Context, _ *client.Client) error  { return nil }
func (r *stubRepo) DeleteClient(_ context.Context, _ uuid.UUID) error       { return nil }

func TestService_Create(t *testing.T) {
	type testCase struct {
		name    string
		params  client.CreateParams
		wantErr string
	}

	tests := []testCase{
		{
			name: "Success",
			params: client.CreateParams{
				CompanyName:  "Acme Co",
				Emails:       []string{"ap@acme.test", "ceo@acme.test"},
				BillingEmail: "ap@acme.test",
			},
		},
		{
			name: "BillingEmailOutsideSetButValid",
			params: client.CreateParams{
				CompanyName:  "Acme Co",
				Emails:       []string{"ceo@acme.test"},
				BillingEmail: "accounts@acme.test",
			},
		},
		{
			name: "MissingCompanyName",
			params: client.CreateParams{
				Emails:       []string{"ap@acme.test"},
				BillingEmail: "ap@acme.test",
			},
			wantErr: "company name required",
		},
		{
			name: "NoEmails",
			params: client.CreateParams{
				CompanyName:  "Acme Co",
				BillingEmail: "ap@acme.test",
			},
			wantErr: "at least one email required",
		},
		{
			name: "MalformedEmail",
			params: client.CreateParams{
				CompanyName:  "Acme Co",
				Emails:       []string{"not-an-email"},
				BillingEmail: "ap@acme.test",
			},
			wantErr: "malformed email",
		},
		{
			name: "MissingBillingEmail",
			params: client.CreateParams{
				CompanyName: "Acme Co",
				Emails:      []string{"ap@acme.test"},
			},
			wantErr: "billing email required",
		},
		{
			name: "MalformedBillingEmail",
			params: client.CreateParams{
				CompanyName:  "Acme Co",
				Emails:       []string{"ap@acme.test"},
				BillingEmail: "billing at acme",
			},
			wantErr: "malformed billing email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := client.NewService(&stubRepo{})

			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, client.ErrInvalid)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
		})
	}
}
