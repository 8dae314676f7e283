package workday_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybillhq/daybill/internal/http/workday"
	"github.com/daybillhq/daybill/internal/project"
	domain "github.com/daybillhq/daybill/internal/workday"
)

type stubRepo struct {
	toggleFn func(ctx context.Context, projectID uuid.UUID, day time.Time) (bool, error)
}

func (s *stubRepo) ToggleWorkday(ctx context.Context, projectID uuid.UUID, day time.Time) (bool, error) {
	return s.toggleFn(ctx, projectID, day)
}

func (s *stubRepo) ListWorkdays(context.Context, uuid.UUID, domain.ListFilter) ([]*domain.Workday, error) {
	return nil, nil
}

func (s *stubRepo) GetWorkdays(context.Context, []uuid.UUID) ([]*domain.Workday, error) {
	return nil, nil
}

func newRouter(repo domain.Repository) http.Handler {
	r := chi.NewRouter()
	r.Route("/projects/{projectID}/workdays", workday.NewHandler(domain.NewService(repo)).Routes)

	return r
}

func TestHandler_Toggle(t *testing.T) {
	repo := &stubRepo{
		toggleFn: func(_ context.Context, _ uuid.UUID, day time.Time) (bool, error) {
			assert.Equal(t, "2025-01-06", day.Format(time.DateOnly))
			return true, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost,
		"/projects/"+uuid.NewString()+"/workdays",
		strings.NewReader(`{"day":"2025-01-06"}`),
	)
	rec := httptest.NewRecorder()

	newRouter(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"day":"2025-01-06","marked":true}`, rec.Body.String())
}

func TestHandler_Toggle_UnknownProject(t *testing.T) {
	repo := &stubRepo{
		toggleFn: func(context.Context, uuid.UUID, time.Time) (bool, error) {
			return false, project.ErrNotFound
		},
	}

	req := httptest.NewRequest(http.MethodPost,
		"/projects/"+uuid.NewString()+"/workdays",
		strings.NewReader(`{"day":"2025-01-06"}`),
	)
	rec := httptest.NewRecorder()

	newRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Toggle_BadDay(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost,
		"/projects/"+uuid.NewString()+"/workdays",
		strings.NewReader(`{"day":"06.01.2025"}`),
	)
	rec := httptest.NewRecorder()

	newRouter(&stubRepo{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
