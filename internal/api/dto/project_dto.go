package dto

import (
	"time"

	"github.com/metropower/dashboard/internal/domain"
	"github.com/metropower/dashboard/internal/service"
)

// ProjectCreateRequest payload. project_id is synthesized when omitted.
type ProjectCreateRequest struct {
	ProjectID   string   `json:"project_id"`
	Name        string   `json:"name"`
	Number      string   `json:"number"`
	Status      string   `json:"status"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Budget      *float64 `json:"budget"`
}

// Input converts the payload for the service.
func (r ProjectCreateRequest) Input() service.ProjectInput {
	return service.ProjectInput{
		ID:          r.ProjectID,
		Name:        r.Name,
		Number:      r.Number,
		Status:      r.Status,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Location:    r.Location,
		Description: r.Description,
		Budget:      r.Budget,
	}
}

// ProjectUpdateRequest payload; absent fields are left unchanged.
type ProjectUpdateRequest struct {
	Name        *string  `json:"name"`
	Number      *string  `json:"number"`
	Status      *string  `json:"status"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	Location    *string  `json:"location"`
	Description *string  `json:"description"`
	Budget      *float64 `json:"budget"`
}

// Update converts the payload for the service.
func (r ProjectUpdateRequest) Update() service.ProjectUpdate {
	return service.ProjectUpdate{
		Name:        r.Name,
		Number:      r.Number,
		Status:      r.Status,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Location:    r.Location,
		Description: r.Description,
		Budget:      r.Budget,
	}
}

// ProjectResponse is the wire form of a project.
type ProjectResponse struct {
	ProjectID   string    `json:"project_id"`
	Name        string    `json:"name"`
	Number      string    `json:"number"`
	Status      string    `json:"status"`
	StartDate   string    `json:"start_date"`
	EndDate     *string   `json:"end_date"`
	Location    *string   `json:"location"`
	Description *string   `json:"description"`
	Budget      *float64  `json:"budget"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProjectResponse maps a domain project.
func NewProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:   p.ID,
		Name:        p.Name,
		Number:      p.Number,
		Status:      string(p.Status),
		StartDate:   p.StartDate,
		EndDate:     optional(p.EndDate),
		Location:    optional(p.Location),
		Description: optional(p.Description),
		Budget:      p.Budget,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewProjectList maps a slice of projects.
func NewProjectList(projects []domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, NewProjectResponse(&projects[i]))
	}
	return out
}
