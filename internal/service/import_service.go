package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/metropower/dashboard/internal/domain"
	"github.com/metropower/dashboard/internal/events"
	"github.com/metropower/dashboard/internal/importer"
	"github.com/metropower/dashboard/internal/scheduling"
)

const importedPosition = "Unassigned"

// ImportSummary reports what a roster import changed.
type ImportSummary struct {
	Filename           string        `json:"filename"`
	Rows               int           `json:"rows"`
	EmployeesCreated   int           `json:"employees_created"`
	ProjectsCreated    int           `json:"projects_created"`
	AssignmentsCreated int           `json:"assignments_created"`
	Skipped            int           `json:"skipped"`
	Problems           []ImportIssue `json:"problems,omitempty"`
}

// ImportIssue explains why a spreadsheet line was not imported.
type ImportIssue struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportService loads legacy Excel rosters, creating missing employees and projects.
type ImportService struct {
	employees   *EmployeeService
	projects    *ProjectService
	assignments *AssignmentService
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// NewImportService builds the service on top of the entity services.
func NewImportService(employees *EmployeeService, projects *ProjectService, assignments *AssignmentService, dispatcher events.Dispatcher, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{
		employees:   employees,
		projects:    projects,
		assignments: assignments,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// Import parses filename and books every usable row. Row-level failures are
// counted in the summary; only unreadable files fail the call.
func (s *ImportService) Import(ctx context.Context, filename string, r io.Reader) (*ImportSummary, error) {
	sheet, err := importer.Parse(filename, r)
	if err != nil {
		if errors.Is(err, importer.ErrUnsupportedFormat) || errors.Is(err, importer.ErrEmptySheet) {
			return nil, domain.Invalid("file", err.Error())
		}
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return nil, err
		}
		return nil, domain.Invalid("file", "unreadable spreadsheet: "+err.Error())
	}

	summary := &ImportSummary{
		Filename: filename,
		Rows:     len(sheet.Rows) + sheet.Skipped,
		Skipped:  sheet.Skipped,
	}

	employees, err := s.employees.List(ctx, "")
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.List(ctx, "")
	if err != nil {
		return nil, err
	}
	idx := newRosterIndex(employees, projects)

	for _, row := range sheet.Rows {
		if err := s.importRow(ctx, row, idx, summary); err != nil {
			summary.Skipped++
			summary.Problems = append(summary.Problems, ImportIssue{Line: row.Line, Reason: err.Error()})
		}
	}

	s.logger.Info("roster imported",
		zap.String("file", filename),
		zap.Int("rows", summary.Rows),
		zap.Int("assignments_created", summary.AssignmentsCreated),
		zap.Int("skipped", summary.Skipped))
	if s.dispatcher != nil {
		s.dispatcher.Publish(ctx, events.New(events.EventImportCompleted, filename, actorFrom(ctx), events.ImportPayload{
			Filename:           filename,
			Rows:               summary.Rows,
			AssignmentsCreated: summary.AssignmentsCreated,
			Skipped:            summary.Skipped,
		}))
	}
	return summary, nil
}

func (s *ImportService) importRow(ctx context.Context, row importer.Row, idx *rosterIndex, summary *ImportSummary) error {
	employee, err := s.resolveEmployee(ctx, row, idx, summary)
	if err != nil {
		return err
	}
	project, err := s.resolveProject(ctx, row, idx, summary)
	if err != nil {
		return err
	}

	_, err = s.assignments.Create(ctx, scheduling.Request{
		EmployeeID: employee.ID,
		ProjectID:  project.ID,
		Date:       row.Date,
		Notes:      row.Notes,
	})
	if err != nil {
		return err
	}
	summary.AssignmentsCreated++
	return nil
}

func (s *ImportService) resolveEmployee(ctx context.Context, row importer.Row, idx *rosterIndex, summary *ImportSummary) (*domain.Employee, error) {
	if e := idx.employee(row.EmployeeID, row.EmployeeName); e != nil {
		return e, nil
	}
	if row.EmployeeName == "" {
		return nil, fmt.Errorf("unknown employee id %q", row.EmployeeID)
	}

	position := row.Position
	if position == "" {
		position = importedPosition
	}
	created, err := s.employees.Create(ctx, EmployeeInput{
		ID:       row.EmployeeID,
		Name:     row.EmployeeName,
		Position: position,
		HireDate: row.Date,
	})
	if err != nil {
		return nil, err
	}
	idx.addEmployee(*created)
	summary.EmployeesCreated++
	return created, nil
}

func (s *ImportService) resolveProject(ctx context.Context, row importer.Row, idx *rosterIndex, summary *ImportSummary) (*domain.Project, error) {
	if p := idx.project(row.ProjectNumber, row.ProjectName); p != nil {
		return p, nil
	}
	name := row.ProjectName
	if name == "" {
		name = row.ProjectNumber
	}

	created, err := s.projects.Create(ctx, ProjectInput{
		Name:      name,
		Number:    row.ProjectNumber,
		StartDate: row.Date,
	})
	if err != nil {
		return nil, err
	}
	idx.addProject(*created)
	summary.ProjectsCreated++
	return created, nil
}

type rosterIndex struct {
	employeesByID   map[string]*domain.Employee
	employeesByName map[string]*domain.Employee
	projectsByNum   map[string]*domain.Project
	projectsByName  map[string]*domain.Project
}

func newRosterIndex(employees []domain.Employee, projects []domain.Project) *rosterIndex {
	idx := &rosterIndex{
		employeesByID:   make(map[string]*domain.Employee),
		employeesByName: make(map[string]*domain.Employee),
		projectsByNum:   make(map[string]*domain.Project),
		projectsByName:  make(map[string]*domain.Project),
	}
	for _, e := range employees {
		idx.addEmployee(e)
	}
	for _, p := range projects {
		idx.addProject(p)
	}
	return idx
}

func (idx *rosterIndex) addEmployee(e domain.Employee) {
	idx.employeesByID[e.ID] = &e
	if key := foldKey(e.Name); key != "" {
		if _, taken := idx.employeesByName[key]; !taken {
			idx.employeesByName[key] = &e
		}
	}
}

func (idx *rosterIndex) addProject(p domain.Project) {
	if key := foldKey(p.Number); key != "" {
		idx.projectsByNum[key] = &p
	}
	if key := foldKey(p.Name); key != "" {
		if _, taken := idx.projectsByName[key]; !taken {
			idx.projectsByName[key] = &p
		}
	}
}

func (idx *rosterIndex) employee(id, name string) *domain.Employee {
	if e, ok := idx.employeesByID[strings.TrimSpace(id)]; ok {
		return e
	}
	return idx.employeesByName[foldKey(name)]
}

func (idx *rosterIndex) project(number, name string) *domain.Project {
	if key := foldKey(number); key != "" {
		if p, ok := idx.projectsByNum[key]; ok {
			return p
		}
	}
	return idx.projectsByName[foldKey(name)]
}

func foldKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
