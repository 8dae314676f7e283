package invoice

import (
	"time"

	"github.com/google/uuid"

	"github.com/daybillhq/daybill/internal/invoice"
)

type invoiceResponse struct {
	ID          uuid.UUID      `json:"id"`
	Number      string         `json:"number"`
	ProjectID   uuid.UUID      `json:"project_id"`
	ClientID    uuid.UUID      `json:"client_id"`
	Amount      int64          `json:"amount"`
	Status      invoice.Status `json:"status"`
	InvoiceDate string         `json:"invoice_date"`
	DueDate     string         `json:"due_date"`
	WorkdayIDs  []uuid.UUID    `json:"workday_ids"`
	Notes       string         `json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:          inv.ID,
		Number:      inv.Number,
		ProjectID:   inv.ProjectID,
		ClientID:    inv.ClientID,
		Amount:      inv.Amount,
		Status:      inv.Status,
		InvoiceDate: inv.InvoiceDate.Format(time.DateOnly),
		DueDate:     inv.DueDate.Format(time.DateOnly),
		WorkdayIDs:  inv.WorkdayIDs,
		Notes:       inv.Notes,
		CreatedAt:   inv.CreatedAt,
	}
}

func toResponseList(invoices []*invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = toResponse(inv)
	}

	return resp
}
