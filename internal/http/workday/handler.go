package workday

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/daybillhq/daybill/internal/project"
	"github.com/daybillhq/daybill/internal/workday"
)

type Handler struct {
	svc *workday.Service
}

func NewHandler(svc *workday.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes is mounted under /projects/{projectID}/workdays.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.toggle)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	filter := workday.ListFilter{}

	if s := r.URL.Query().Get("start"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.Start = &t
		}
	}

	if s := r.URL.Query().Get("end"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.End = &t
		}
	}

	days, err := h.svc.List(r.Context(), projectID, filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(days)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type toggleRequest struct {
	Day string `json:"day"`
}

type toggleResponse struct {
	Day    string `json:"day"`
	Marked bool   `json:"marked"`
}

// toggle marks the day if it is unmarked and unmarks it otherwise.
func (h *Handler) toggle(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	day, err := time.Parse(time.DateOnly, req.Day)
	if err != nil {
		http.Error(w, "invalid day, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	marked, err := h.svc.Toggle(r.Context(), projectID, day)
	if err != nil {
		if errors.Is(err, workday.ErrInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if errors.Is(err, project.ErrNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	resp := toggleResponse{Day: req.Day, Marked: marked}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
