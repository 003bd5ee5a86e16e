package dto

import (
	"time"

	"github.com/metropower/dashboard/internal/domain"
	"github.com/metropower/dashboard/internal/scheduling"
)

// AssignmentCreateRequest payload.
type AssignmentCreateRequest struct {
	EmployeeID     string `json:"employee_id"`
	ProjectID      string `json:"project_id"`
	AssignmentDate string `json:"assignment_date"`
	Notes          string `json:"notes"`
}

// Request converts the payload for the resolver.
func (r AssignmentCreateRequest) Request() scheduling.Request {
	return scheduling.Request{
		EmployeeID: r.EmployeeID,
		ProjectID:  r.ProjectID,
		Date:       r.AssignmentDate,
		Notes:      r.Notes,
	}
}

// AssignmentResponse is the wire form of an assignment.
type AssignmentResponse struct {
	AssignmentID   int64     `json:"assignment_id"`
	EmployeeID     string    `json:"employee_id"`
	EmployeeName   string    `json:"employee_name"`
	ProjectID      string    `json:"project_id"`
	ProjectName    string    `json:"project_name"`
	AssignmentDate string    `json:"assignment_date"`
	Notes          *string   `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewAssignmentResponse maps a domain assignment.
func NewAssignmentResponse(a *domain.Assignment) AssignmentResponse {
	return AssignmentResponse{
		AssignmentID:   a.ID,
		EmployeeID:     a.EmployeeID,
		EmployeeName:   a.EmployeeName,
		ProjectID:      a.ProjectID,
		ProjectName:    a.ProjectName,
		AssignmentDate: a.Date,
		Notes:          optional(a.Notes),
		CreatedAt:      a.CreatedAt,
	}
}

// NewAssignmentList maps a slice of assignments.
func NewAssignmentList(assignments []domain.Assignment) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		out = append(out, NewAssignmentResponse(&assignments[i]))
	}
	return out
}
