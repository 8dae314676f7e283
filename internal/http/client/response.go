package client

import (
	"time"

	"github.com/google/uuid"

	"github.com/daybillhq/daybill/internal/client"
)

type clientResponse struct {
	ID           uuid.UUID  `json:"id"`
	CompanyName  string     `json:"company_name"`
	ContactName  string     `json:"contact_name,omitempty"`
	Emails       []string   `json:"emails"`
	BillingEmail string     `json:"billing_email"`
	Phone        string     `json:"phone,omitempty"`
	Address      string     `json:"address,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

func toResponse(c *client.Client) clientResponse {
	return clientResponse{
		ID:           c.ID,
		CompanyName:  c.CompanyName,
		ContactName:  c.ContactName,
		Emails:       c.Emails,
		BillingEmail: c.BillingEmail,
		Phone:        c.Phone,
		Address:      c.Address,
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toResponseList(clients []*client.Client) []clientResponse {
	resp := make([]clientResponse, len(clients))
	for i, c := range clients {
		resp[i] = toResponse(c)
	}

	return resp
}
