package domain

import "time"

// ProjectStatus enumerates project lifecycle states.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "Active"
	ProjectStatusCompleted ProjectStatus = "Completed"
	ProjectStatusOnHold    ProjectStatus = "On Hold"
	ProjectStatusPlanned   ProjectStatus = "Planned"
)

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusCompleted, ProjectStatusOnHold, ProjectStatusPlanned:
		return true
	default:
		return false
	}
}

// Project is a job site employees are assigned to.
type Project struct {
	ID          string
	Name        string
	Number      string
	Status      ProjectStatus
	StartDate   string
	EndDate     string
	Location    string
	Description string
	Budget      *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
