package repository

import (
	"context"

	"github.com/metropower/dashboard/internal/domain"
)

// EmployeeFilter narrows employee listings.
type EmployeeFilter struct {
	Status domain.EmployeeStatus
}

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	Status domain.ProjectStatus
}

// AssignmentFilter narrows assignment listings. Empty fields are ignored;
// From and To are inclusive ISO dates.
type AssignmentFilter struct {
	From       string
	To         string
	EmployeeID string
	ProjectID  string
}

// EmployeeRepository persists employees. Employees are never deleted.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error)
	Count(ctx context.Context) (int64, error)
}

// ProjectRepository persists projects. Projects are never deleted.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]domain.Project, error)
	Count(ctx context.Context) (int64, error)
}

// AssignmentRepository persists assignments. Create assigns the ID and
// reports a DuplicateAssignmentError when the employee is already booked that day.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.Assignment) error
	GetByID(ctx context.Context, id int64) (*domain.Assignment, error)
	FindByEmployeeDate(ctx context.Context, employeeID, date string) (*domain.Assignment, error)
	List(ctx context.Context, filter AssignmentFilter) ([]domain.Assignment, error)
	Delete(ctx context.Context, id int64) error
}

// UserRepository persists dashboard operators.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
