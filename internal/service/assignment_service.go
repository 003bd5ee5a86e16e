package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/metropower/dashboard/internal/domain"
	"github.com/metropower/dashboard/internal/events"
	"github.com/metropower/dashboard/internal/repository"
	"github.com/metropower/dashboard/internal/scheduling"
)

// AssignmentService books employees onto projects, one project per employee per day.
type AssignmentService struct {
	assignments repository.AssignmentRepository
	employees   repository.EmployeeRepository
	projects    repository.ProjectRepository
	resolver    scheduling.Resolver
	tx          Transactor
	dispatcher  events.Dispatcher
}

// AssignmentDependencies bundles repositories for the assignment service.
type AssignmentDependencies struct {
	AssignmentRepo repository.AssignmentRepository
	EmployeeRepo   repository.EmployeeRepository
	ProjectRepo    repository.ProjectRepository
	Transactor     Transactor
	Dispatcher     events.Dispatcher
}

// NewAssignmentService builds the service around resolver.
func NewAssignmentService(deps AssignmentDependencies, resolver scheduling.Resolver) *AssignmentService {
	return &AssignmentService{
		assignments: deps.AssignmentRepo,
		employees:   deps.EmployeeRepo,
		projects:    deps.ProjectRepo,
		resolver:    resolver,
		tx:          deps.Transactor,
		dispatcher:  deps.Dispatcher,
	}
}

// Create resolves req and stores the assignment. Lookup, duplicate check and
// insert run in one unit of work.
func (s *AssignmentService) Create(ctx context.Context, req scheduling.Request) (*domain.Assignment, error) {
	normalized, err := s.resolver.Validate(req)
	if err != nil {
		return nil, err
	}

	var created domain.Assignment
	err = s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		employee, err := s.employees.GetByID(ctx, normalized.EmployeeID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		project, err := s.projects.GetByID(ctx, normalized.ProjectID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		resolved, err := s.resolver.Resolve(normalized, employee, project)
		if err != nil {
			return err
		}

		if _, err := s.assignments.FindByEmployeeDate(ctx, resolved.EmployeeID, resolved.Date); err == nil {
			return &domain.DuplicateAssignmentError{EmployeeID: resolved.EmployeeID, Date: resolved.Date}
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		if err := s.assignments.Create(ctx, &resolved); err != nil {
			return err
		}
		created = resolved
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventAssignmentCreated, &created)
	return &created, nil
}

// Get returns one assignment.
func (s *AssignmentService) Get(ctx context.Context, id int64) (*domain.Assignment, error) {
	return s.assignments.GetByID(ctx, id)
}

// List returns assignments for the calendar view.
func (s *AssignmentService) List(ctx context.Context, filter repository.AssignmentFilter) ([]domain.Assignment, error) {
	var err error
	if filter.From, err = optionalDate("from", filter.From); err != nil {
		return nil, err
	}
	if filter.To, err = optionalDate("to", filter.To); err != nil {
		return nil, err
	}
	if filter.From != "" && filter.To != "" && filter.To < filter.From {
		return nil, domain.Invalid("to", "must not be before from")
	}
	return s.assignments.List(ctx, filter)
}

// Delete removes an assignment.
func (s *AssignmentService) Delete(ctx context.Context, id int64) error {
	var deleted *domain.Assignment
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		current, err := s.assignments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.assignments.Delete(ctx, id); err != nil {
			return err
		}
		deleted = current
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.EventAssignmentDeleted, deleted)
	return nil
}

func (s *AssignmentService) publish(ctx context.Context, eventType events.EventType, a *domain.Assignment) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Publish(ctx, events.New(eventType, strconv.FormatInt(a.ID, 10), actorFrom(ctx), events.AssignmentPayload{
		EmployeeID: a.EmployeeID,
		ProjectID:  a.ProjectID,
		Date:       a.Date,
	}))
}
