package service

import (
	"context"
	"fmt"

	"github.com/metropower/dashboard/internal/domain"
	"github.com/metropower/dashboard/internal/persistence"
	"github.com/metropower/dashboard/internal/scheduling"
)

// Seeder loads fixture data through the regular services so every record is validated.
type Seeder struct {
	Employees   *EmployeeService
	Projects    *ProjectService
	Assignments *AssignmentService
	Auth        *AuthService
}

// Apply inserts data in dependency order and stops at the first invalid entry.
func (s Seeder) Apply(ctx context.Context, data *persistence.SeedData) error {
	if data == nil {
		return nil
	}
	for i, e := range data.Employees {
		emp := e.Employee()
		if _, err := s.Employees.Create(ctx, EmployeeInput{
			ID:             emp.ID,
			Name:           emp.Name,
			Position:       emp.Position,
			Status:         string(emp.Status),
			EmployeeNumber: emp.EmployeeNumber,
			HireDate:       emp.HireDate,
			Phone:          emp.Phone,
			Email:          emp.Email,
			Notes:          emp.Notes,
		}); err != nil {
			return fmt.Errorf("seed employee %d: %w", i+1, err)
		}
	}
	for i, p := range data.Projects {
		proj := p.Project()
		if _, err := s.Projects.Create(ctx, ProjectInput{
			ID:          proj.ID,
			Name:        proj.Name,
			Number:      proj.Number,
			Status:      string(proj.Status),
			StartDate:   proj.StartDate,
			EndDate:     proj.EndDate,
			Location:    proj.Location,
			Description: proj.Description,
			Budget:      proj.Budget,
		}); err != nil {
			return fmt.Errorf("seed project %d: %w", i+1, err)
		}
	}
	for i, a := range data.Assignments {
		if _, err := s.Assignments.Create(ctx, scheduling.Request{
			EmployeeID: a.EmployeeID,
			ProjectID:  a.ProjectID,
			Date:       a.Date,
			Notes:      a.Notes,
		}); err != nil {
			return fmt.Errorf("seed assignment %d: %w", i+1, err)
		}
	}
	if s.Auth != nil {
		for _, u := range data.Users {
			if _, err := s.Auth.CreateUser(ctx, u.Username, u.Password, domain.UserRole(u.Role)); err != nil {
				return fmt.Errorf("seed user %q: %w", u.Username, err)
			}
		}
	}
	return nil
}
