package project

import (
	"time"

	"github.com/google/uuid"

	"github.com/daybillhq/daybill/internal/project"
)

type projectResponse struct {
	ID          uuid.UUID       `json:"id"`
	ClientID    uuid.UUID       `json:"client_id"`
	Name        string          `json:"name"`
	Billing     project.Billing `json:"billing"`
	Rate        int64           `json:"rate"`
	Status      project.Status  `json:"status"`
	StartDate   *string         `json:"start_date,omitempty"`
	EndDate     *string         `json:"end_date,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}

	s := t.Format(time.DateOnly)

	return &s
}

func toResponse(p *project.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		ClientID:    p.ClientID,
		Name:        p.Name,
		Billing:     p.Billing,
		Rate:        p.Rate,
		Status:      p.Status,
		StartDate:   formatDate(p.StartDate),
		EndDate:     formatDate(p.EndDate),
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toResponseList(projects []*project.Project) []projectResponse {
	resp := make([]projectResponse, len(projects))
	for i, p := range projects {
		resp[i] = toResponse(p)
	}

	return resp
}
