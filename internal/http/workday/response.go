package workday

import (
	"time"

	"github.com/google/uuid"

	"github.com/daybillhq/daybill/internal/workday"
)

type workdayResponse struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	Day       string    `json:"day"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponseList(days []*workday.Workday) []workdayResponse {
	resp := make([]workdayResponse, len(days))
	for i, d := range days {
		resp[i] = workdayResponse{
			ID:        d.ID,
			ProjectID: d.ProjectID,
			Day:       d.Day.Format(time.DateOnly),
			CreatedAt: d.CreatedAt,
		}
	}

	return resp
}
