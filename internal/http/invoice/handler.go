package invoice

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/daybillhq/daybill/internal/client"
	"github.com/daybillhq/daybill/internal/invoice"
	"github.com/daybillhq/daybill/internal/mail"
	"github.com/daybillhq/daybill/internal/project"
	"github.com/daybillhq/daybill/internal/workday"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.generate)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}/status", h.updateStatus)
	r.Get("/{id}/pdf", h.pdf)
	r.Post("/{id}/send", h.send)
}

type generateRequest struct {
	ProjectID   uuid.UUID   `json:"project_id"`
	WorkdayIDs  []uuid.UUID `json:"workday_ids"`
	InvoiceDate *string     `json:"invoice_date,omitempty"`
	DueDate     *string     `json:"due_date,omitempty"`
	Notes       string      `json:"notes"`
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// writeServiceError maps generation/lookup failures onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, invoice.ErrInvalid),
		errors.Is(err, project.ErrInvalid),
		errors.Is(err, workday.ErrInvalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, invoice.ErrNotFound),
		errors.Is(err, project.ErrNotFound),
		errors.Is(err, client.ErrNotFound),
		errors.Is(err, workday.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, invoice.ErrNumberTaken):
		http.Error(w, "invoice number allocation conflict", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	invoiceDate, err := parseDate(req.InvoiceDate)
	if err != nil {
		http.Error(w, "invalid invoice_date", http.StatusBadRequest)
		return
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		http.Error(w, "invalid due_date", http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Generate(r.Context(), invoice.GenerateParams{
		ProjectID:   req.ProjectID,
		WorkdayIDs:  req.WorkdayIDs,
		InvoiceDate: invoiceDate,
		DueDate:     dueDate,
		Notes:       req.Notes,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := invoice.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := invoice.Status(s)
		filter.Status = &status
	}

	if s := r.URL.Query().Get("client_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid client_id", http.StatusBadRequest)
			return
		}

		filter.ClientID = &id
	}

	if s := r.URL.Query().Get("project_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid project_id", http.StatusBadRequest)
			return
		}

		filter.ProjectID = &id
	}

	invoices, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(invoices)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateStatusRequest struct {
	Status invoice.Status `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), id, req.Status); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pdf(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	pdf, inv, err := h.svc.RenderPDF(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("invoice-%s.pdf", inv.Number)))

	if _, err := w.Write(pdf); err != nil {
		slog.Error("failed to write pdf response", "error", err)
	}
}

type sendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req sendRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	err = h.svc.Send(r.Context(), id, invoice.SendParams{
		To:      req.To,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		// The invoice is already durable; a failed send is reported but
		// changes nothing and can simply be retried.
		if errors.Is(err, mail.ErrDispatch) {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		writeServiceError(w, err)

		return
	}

	w.WriteHeader(http.StatusAccepted)
}
