package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/metropower/dashboard/internal/domain"
	"github.com/metropower/dashboard/internal/events"
	"github.com/metropower/dashboard/internal/repository"
	"github.com/metropower/dashboard/internal/scheduling"
)

// EmployeeService manages the workforce roster.
type EmployeeService struct {
	employees  repository.EmployeeRepository
	sequence   scheduling.Sequence
	tx         Transactor
	dispatcher events.Dispatcher
}

// EmployeeInput describes employee creation. An empty ID is synthesized.
type EmployeeInput struct {
	ID             string
	Name           string
	Position       string
	Status         string
	EmployeeNumber string
	HireDate       string
	Phone          string
	Email          string
	Notes          string
}

// EmployeeUpdate carries the fields to change; nil leaves a field untouched.
type EmployeeUpdate struct {
	Name           *string
	Position       *string
	Status         *string
	EmployeeNumber *string
	HireDate       *string
	Phone          *string
	Email          *string
	Notes          *string
}

// NewEmployeeService builds the service.
func NewEmployeeService(employees repository.EmployeeRepository, sequence scheduling.Sequence, tx Transactor, dispatcher events.Dispatcher) *EmployeeService {
	return &EmployeeService{employees: employees, sequence: sequence, tx: tx, dispatcher: dispatcher}
}

// Create validates and stores a new employee.
func (s *EmployeeService) Create(ctx context.Context, in EmployeeInput) (*domain.Employee, error) {
	employee := domain.Employee{
		ID:             strings.TrimSpace(in.ID),
		Name:           strings.TrimSpace(in.Name),
		Position:       strings.TrimSpace(in.Position),
		Status:         domain.EmployeeStatus(strings.TrimSpace(in.Status)),
		EmployeeNumber: strings.TrimSpace(in.EmployeeNumber),
		HireDate:       in.HireDate,
		Phone:          strings.TrimSpace(in.Phone),
		Email:          strings.TrimSpace(in.Email),
		Notes:          strings.TrimSpace(in.Notes),
	}
	if employee.Status == "" {
		employee.Status = domain.EmployeeStatusActive
	}
	if err := validateEmployee(&employee); err != nil {
		return nil, err
	}

	// Inserted outside a transaction so a taken id can be retried.
	var err error
	if employee.ID != "" {
		err = s.insert(ctx, &employee)
	} else {
		err = createWithSequence(ctx, s.sequence, scheduling.EntityEmployee, func(id string) error {
			employee.ID = id
			return s.insert(ctx, &employee)
		})
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventEmployeeCreated, &employee)
	return &employee, nil
}

func (s *EmployeeService) insert(ctx context.Context, employee *domain.Employee) error {
	if employee.EmployeeNumber == "" {
		employee.EmployeeNumber = employee.ID
	}
	return s.employees.Create(ctx, employee)
}

// Update applies a partial change to an existing employee.
func (s *EmployeeService) Update(ctx context.Context, id string, upd EmployeeUpdate) (*domain.Employee, error) {
	var employee *domain.Employee
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		current, err := s.employees.GetByID(ctx, id)
		if err != nil {
			return err
		}
		applyEmployeeUpdate(current, upd)
		if err := validateEmployee(current); err != nil {
			return err
		}
		if err := s.employees.Update(ctx, current); err != nil {
			return err
		}
		employee = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventEmployeeUpdated, employee)
	return employee, nil
}

// Get returns one employee.
func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

// List returns employees, optionally narrowed by status.
func (s *EmployeeService) List(ctx context.Context, status string) ([]domain.Employee, error) {
	filter := repository.EmployeeFilter{Status: domain.EmployeeStatus(strings.TrimSpace(status))}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.Invalid("status", fmt.Sprintf("unknown employee status %q", status))
	}
	return s.employees.List(ctx, filter)
}

func (s *EmployeeService) publish(ctx context.Context, eventType events.EventType, employee *domain.Employee) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Publish(ctx, events.New(eventType, employee.ID, actorFrom(ctx), map[string]string{
		"name":   employee.Name,
		"status": string(employee.Status),
	}))
}

func applyEmployeeUpdate(e *domain.Employee, upd EmployeeUpdate) {
	if v := trimmed(upd.Name); v != nil {
		e.Name = *v
	}
	if v := trimmed(upd.Position); v != nil {
		e.Position = *v
	}
	if v := trimmed(upd.Status); v != nil {
		e.Status = domain.EmployeeStatus(*v)
	}
	if v := trimmed(upd.EmployeeNumber); v != nil {
		e.EmployeeNumber = *v
	}
	if upd.HireDate != nil {
		e.HireDate = *upd.HireDate
	}
	if v := trimmed(upd.Phone); v != nil {
		e.Phone = *v
	}
	if v := trimmed(upd.Email); v != nil {
		e.Email = *v
	}
	if v := trimmed(upd.Notes); v != nil {
		e.Notes = *v
	}
}

func validateEmployee(e *domain.Employee) error {
	if e.Name == "" {
		return domain.Required("name")
	}
	if e.Position == "" {
		return domain.Required("position")
	}
	if !e.Status.Valid() {
		return domain.Invalid("status", fmt.Sprintf("unknown employee status %q", e.Status))
	}
	hireDate, err := domain.NormalizeDate("hire_date", e.HireDate)
	if err != nil {
		return err
	}
	e.HireDate = hireDate
	if e.Email != "" && !strings.Contains(e.Email, "@") {
		return domain.Invalid("email", "must be an email address")
	}
	return nil
}
