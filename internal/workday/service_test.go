package workday_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybillhq/daybill/internal/workday"
)

// memRepo keeps marked days in a map keyed by (project, date), mirroring
// the UNIQUE(project_id, day) storage constraint.
type memRepo struct {
	days map[string]*workday.Workday
}

func newMemRepo() *memRepo {
	return &memRepo{days: make(map[string]*workday.Workday)}
}

func key(projectID uuid.UUID, day time.Time) string {
	return projectID.String() + "/" + day.Format(time.DateOnly)
}

func (r *memRepo) ToggleWorkday(_ context.Context, projectID uuid.UUID, day time.Time) (bool, error) {
	k := key(projectID, day)

	if _, ok := r.days[k]; ok {
		delete(r.days, k)
		return false, nil
	}

	r.days[k] = &workday.Workday{
		ID:        uuid.New(),
		ProjectID: projectID,
		Day:       day,
		CreatedAt: time.Now(),
	}

	return true, nil
}

func (r *memRepo) ListWorkdays(_ context.Context, projectID uuid.UUID, _ workday.ListFilter) ([]*workday.Workday, error) {
	var out []*workday.Workday

	for _, d := range r.days {
		if d.ProjectID == projectID {
			out = append(out, d)
		}
	}

	return out, nil
}

func (r *memRepo) GetWorkdays(_ context.Context, ids []uuid.UUID) ([]*workday.Workday, error) {
	var out []*workday.Workday

	for _, d := range r.days {
		for _, id := range ids {
			if d.ID == id {
				out = append(out, d)
				break
			}
		}
	}

	return out, nil
}

func TestService_Toggle(t *testing.T) {
	repo := newMemRepo()
	svc := workday.NewService(repo)

	projectID := uuid.New()
	d := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	marked, err := svc.Toggle(context.Background(), projectID, d)
	require.NoError(t, err)
	assert.True(t, marked)

	marked, err = svc.Toggle(context.Background(), projectID, d)
	require.NoError(t, err)
	assert.False(t, marked)

	days, err := svc.List(context.Background(), projectID, workday.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestService_Toggle_EvenRepetitionsRestoreState(t *testing.T) {
	repo := newMemRepo()
	svc := workday.NewService(repo)

	projectID := uuid.New()
	d := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	// Start marked.
	_, err := svc.Toggle(context.Background(), projectID, d)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err := svc.Toggle(context.Background(), projectID, d)
		require.NoError(t, err)
	}

	days, err := svc.List(context.Background(), projectID, workday.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, days, 1)
}

func TestService_Toggle_TimeOfDayIgnored(t *testing.T) {
	repo := newMemRepo()
	svc := workday.NewService(repo)

	projectID := uuid.New()

	loc := time.FixedZone("UTC+11", 11*3600)

	// Same calendar date expressed as different instants toggles the same
	// abstract day.
	morning := time.Date(2025, 1, 6, 8, 30, 0, 0, time.UTC)
	evening := time.Date(2025, 1, 6, 23, 15, 0, 0, loc)

	marked, err := svc.Toggle(context.Background(), projectID, morning)
	require.NoError(t, err)
	assert.True(t, marked)

	marked, err = svc.Toggle(context.Background(), projectID, evening)
	require.NoError(t, err)
	assert.False(t, marked)
}

func TestService_Toggle_MissingProject(t *testing.T) {
	svc := workday.NewService(newMemRepo())

	_, err := svc.Toggle(context.Background(), uuid.Nil, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, workday.ErrInvalid)
}
