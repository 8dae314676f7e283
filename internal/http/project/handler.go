package project

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/daybillhq/daybill/internal/project"
)

type Handler struct {
	svc *project.Service
}

func NewHandler(svc *project.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createProjectRequest struct {
	ClientID    uuid.UUID       `json:"client_id"`
	Name        string          `json:"name"`
	Billing     project.Billing `json:"billing"`
	Rate        int64           `json:"rate"`
	Status      project.Status  `json:"status"`
	StartDate   *string         `json:"start_date,omitempty"`
	EndDate     *string         `json:"end_date,omitempty"`
	Description string          `json:"description"`
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

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		http.Error(w, "invalid start_date", http.StatusBadRequest)
		return
	}

	end, err := parseDate(req.EndDate)
	if err != nil {
		http.Error(w, "invalid end_date", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Create(r.Context(), project.CreateParams{
		ClientID:    req.ClientID,
		Name:        req.Name,
		Billing:     req.Billing,
		Rate:        req.Rate,
		Status:      req.Status,
		StartDate:   start,
		EndDate:     end,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, project.ErrInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := project.ListFilter{}

	if s := r.URL.Query().Get("client_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid client_id", http.StatusBadRequest)
			return
		}

		filter.ClientID = &id
	}

	if s := r.URL.Query().Get("status"); s != "" {
		status := project.Status(s)
		filter.Status = &status
	}

	projects, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(projects)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateProjectRequest struct {
	Name        *string          `json:"name,omitempty"`
	Billing     *project.Billing `json:"billing,omitempty"`
	Rate        *int64           `json:"rate,omitempty"`
	Status      *project.Status  `json:"status,omitempty"`
	StartDate   *string          `json:"start_date,omitempty"`
	EndDate     *string          `json:"end_date,omitempty"`
	Description *string          `json:"description,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}

	if req.Billing != nil {
		p.Billing = *req.Billing
	}

	if req.Rate != nil {
		p.Rate = *req.Rate
	}

	if req.Status != nil {
		p.Status = *req.Status
	}

	if req.StartDate != nil {
		start, err := parseDate(req.StartDate)
		if err != nil {
			http.Error(w, "invalid start_date", http.StatusBadRequest)
			return
		}

		p.StartDate = start
	}

	if req.EndDate != nil {
		end, err := parseDate(req.EndDate)
		if err != nil {
			http.Error(w, "invalid end_date", http.StatusBadRequest)
			return
		}

		p.EndDate = end
	}

	if req.Description != nil {
		p.Description = *req.Description
	}

	if err := h.svc.Update(r.Context(), p); err != nil {
		if errors.Is(err, project.ErrInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
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
