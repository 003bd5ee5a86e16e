// Package scheduling resolves assignment requests against employee and project
// collections and synthesizes display identifiers.
package scheduling

import (
	"strings"

	"github.com/metropower/dashboard/internal/domain"
)

// Placeholder names used when a reference cannot be resolved in lenient mode.
const (
	UnknownEmployee = "Unknown Employee"
	UnknownProject  = "Unknown Project"
)

// Request is the client-supplied part of an assignment.
type Request struct {
	EmployeeID string
	ProjectID  string
	Date       string
	Notes      string
}

// Resolver turns requests into fully populated assignments.
// Strict resolvers fail on unknown references; lenient ones substitute placeholder names.
type Resolver struct {
	Strict bool
}

// NewResolver returns a resolver with the given reference strictness.
func NewResolver(strict bool) Resolver {
	return Resolver{Strict: strict}
}

// Validate checks required fields and normalizes them.
func (r Resolver) Validate(req Request) (Request, error) {
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.ProjectID = strings.TrimSpace(req.ProjectID)
	req.Notes = strings.TrimSpace(req.Notes)
	if req.EmployeeID == "" {
		return Request{}, domain.Required("employee_id")
	}
	if req.ProjectID == "" {
		return Request{}, domain.Required("project_id")
	}
	date, err := domain.NormalizeDate("assignment_date", req.Date)
	if err != nil {
		return Request{}, err
	}
	req.Date = date
	return req, nil
}

// Resolve validates req and denormalizes the referenced names. A nil employee or
// project means the lookup missed. The returned assignment has no ID yet.
func (r Resolver) Resolve(req Request, employee *domain.Employee, project *domain.Project) (domain.Assignment, error) {
	req, err := r.Validate(req)
	if err != nil {
		return domain.Assignment{}, err
	}

	employeeName := UnknownEmployee
	if employee != nil {
		employeeName = employee.Name
	} else if r.Strict {
		return domain.Assignment{}, &domain.NotFoundError{Resource: "employee", ID: req.EmployeeID}
	}

	projectName := UnknownProject
	if project != nil {
		projectName = project.Name
	} else if r.Strict {
		return domain.Assignment{}, &domain.NotFoundError{Resource: "project", ID: req.ProjectID}
	}

	return domain.Assignment{
		EmployeeID:   req.EmployeeID,
		EmployeeName: employeeName,
		ProjectID:    req.ProjectID,
		ProjectName:  projectName,
		Date:         req.Date,
		Notes:        req.Notes,
	}, nil
}

// CreateAssignment resolves req against the given collections, enforces one
// assignment per employee per day and appends the result to *assignments.
// The caller owns the collections and must serialize concurrent calls. Ids
// come from NextAssignmentID, so a caller that removes the highest assignment
// from the slice will see its id issued again.
func (r Resolver) CreateAssignment(req Request, employees []domain.Employee, projects []domain.Project, assignments *[]domain.Assignment) (domain.Assignment, error) {
	normalized, err := r.Validate(req)
	if err != nil {
		return domain.Assignment{}, err
	}

	resolved, err := r.Resolve(normalized, findEmployee(employees, normalized.EmployeeID), findProject(projects, normalized.ProjectID))
	if err != nil {
		return domain.Assignment{}, err
	}

	if FindDuplicate(*assignments, resolved.EmployeeID, resolved.Date) != nil {
		return domain.Assignment{}, &domain.DuplicateAssignmentError{EmployeeID: resolved.EmployeeID, Date: resolved.Date}
	}

	resolved.ID = NextAssignmentID(*assignments)
	*assignments = append(*assignments, resolved)
	return resolved, nil
}

// FindDuplicate returns the assignment already booked for employeeID on date, if any.
func FindDuplicate(assignments []domain.Assignment, employeeID, date string) *domain.Assignment {
	for i := range assignments {
		if assignments[i].EmployeeID == employeeID && assignments[i].Date == date {
			return &assignments[i]
		}
	}
	return nil
}

func findEmployee(employees []domain.Employee, id string) *domain.Employee {
	for i := range employees {
		if employees[i].ID == id {
			return &employees[i]
		}
	}
	return nil
}

func findProject(projects []domain.Project, id string) *domain.Project {
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i]
		}
	}
	return nil
}
