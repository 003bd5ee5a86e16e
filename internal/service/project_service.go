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

// ProjectService manages job sites.
type ProjectService struct {
	projects   repository.ProjectRepository
	sequence   scheduling.Sequence
	tx         Transactor
	dispatcher events.Dispatcher
}

// ProjectInput describes project creation. An empty ID is synthesized.
type ProjectInput struct {
	ID          string
	Name        string
	Number      string
	Status      string
	StartDate   string
	EndDate     string
	Location    string
	Description string
	Budget      *float64
}

// ProjectUpdate carries the fields to change; nil leaves a field untouched.
type ProjectUpdate struct {
	Name        *string
	Number      *string
	Status      *string
	StartDate   *string
	EndDate     *string
	Location    *string
	Description *string
	Budget      *float64
}

// NewProjectService builds the service.
func NewProjectService(projects repository.ProjectRepository, sequence scheduling.Sequence, tx Transactor, dispatcher events.Dispatcher) *ProjectService {
	return &ProjectService{projects: projects, sequence: sequence, tx: tx, dispatcher: dispatcher}
}

// Create validates and stores a new project.
func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*domain.Project, error) {
	project := domain.Project{
		ID:          strings.TrimSpace(in.ID),
		Name:        strings.TrimSpace(in.Name),
		Number:      strings.TrimSpace(in.Number),
		Status:      domain.ProjectStatus(strings.TrimSpace(in.Status)),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Location:    strings.TrimSpace(in.Location),
		Description: strings.TrimSpace(in.Description),
		Budget:      in.Budget,
	}
	if project.Status == "" {
		project.Status = domain.ProjectStatusActive
	}
	if err := validateProject(&project); err != nil {
		return nil, err
	}

	// Inserted outside a transaction so a taken id can be retried.
	var err error
	if project.ID != "" {
		err = s.insert(ctx, &project)
	} else {
		err = createWithSequence(ctx, s.sequence, scheduling.EntityProject, func(id string) error {
			project.ID = id
			return s.insert(ctx, &project)
		})
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventProjectCreated, &project)
	return &project, nil
}

func (s *ProjectService) insert(ctx context.Context, project *domain.Project) error {
	if project.Number == "" {
		project.Number = project.ID
	}
	return s.projects.Create(ctx, project)
}

// Update applies a partial change to an existing project.
func (s *ProjectService) Update(ctx context.Context, id string, upd ProjectUpdate) (*domain.Project, error) {
	var project *domain.Project
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		current, err := s.projects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		applyProjectUpdate(current, upd)
		if err := validateProject(current); err != nil {
			return err
		}
		if err := s.projects.Update(ctx, current); err != nil {
			return err
		}
		project = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventProjectUpdated, project)
	return project, nil
}

// Get returns one project.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

// List returns projects, optionally narrowed by status.
func (s *ProjectService) List(ctx context.Context, status string) ([]domain.Project, error) {
	filter := repository.ProjectFilter{Status: domain.ProjectStatus(strings.TrimSpace(status))}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.Invalid("status", fmt.Sprintf("unknown project status %q", status))
	}
	return s.projects.List(ctx, filter)
}

func (s *ProjectService) publish(ctx context.Context, eventType events.EventType, project *domain.Project) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Publish(ctx, events.New(eventType, project.ID, actorFrom(ctx), map[string]string{
		"name":   project.Name,
		"status": string(project.Status),
	}))
}

func applyProjectUpdate(p *domain.Project, upd ProjectUpdate) {
	if v := trimmed(upd.Name); v != nil {
		p.Name = *v
	}
	if v := trimmed(upd.Number); v != nil {
		p.Number = *v
	}
	if v := trimmed(upd.Status); v != nil {
		p.Status = domain.ProjectStatus(*v)
	}
	if upd.StartDate != nil {
		p.StartDate = *upd.StartDate
	}
	if upd.EndDate != nil {
		p.EndDate = *upd.EndDate
	}
	if v := trimmed(upd.Location); v != nil {
		p.Location = *v
	}
	if v := trimmed(upd.Description); v != nil {
		p.Description = *v
	}
	if upd.Budget != nil {
		budget := *upd.Budget
		p.Budget = &budget
	}
}

func validateProject(p *domain.Project) error {
	if p.Name == "" {
		return domain.Required("name")
	}
	if !p.Status.Valid() {
		return domain.Invalid("status", fmt.Sprintf("unknown project status %q", p.Status))
	}
	start, err := domain.NormalizeDate("start_date", p.StartDate)
	if err != nil {
		return err
	}
	p.StartDate = start
	end, err := optionalDate("end_date", p.EndDate)
	if err != nil {
		return err
	}
	if end != "" && end < start {
		return domain.Invalid("end_date", "must not be before start_date")
	}
	p.EndDate = end
	if p.Budget != nil && *p.Budget < 0 {
		return domain.Invalid("budget", "must not be negative")
	}
	return nil
}
