package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/metropower/dashboard/internal/domain"
	"github.com/metropower/dashboard/internal/export"
	"github.com/metropower/dashboard/internal/repository"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Archiver keeps a copy of generated export files.
type Archiver interface {
	Archive(ctx context.Context, name, contentType string, body []byte) (string, error)
}

// ExportResult is a rendered download.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
	ArchiveKey  string
}

// ExportService renders collections for download.
type ExportService struct {
	employees   repository.EmployeeRepository
	projects    repository.ProjectRepository
	assignments repository.AssignmentRepository
	archiver    Archiver
	logger      *zap.Logger
	now         func() time.Time
}

// ExportDependencies bundles repositories for the export service.
type ExportDependencies struct {
	EmployeeRepo   repository.EmployeeRepository
	ProjectRepo    repository.ProjectRepository
	AssignmentRepo repository.AssignmentRepository
	// Archiver is optional.
	Archiver Archiver
	Logger   *zap.Logger
}

// NewExportService builds the service.
func NewExportService(deps ExportDependencies) *ExportService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		employees:   deps.EmployeeRepo,
		projects:    deps.ProjectRepo,
		assignments: deps.AssignmentRepo,
		archiver:    deps.Archiver,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Export renders the named collection as CSV or JSON. An archive failure is
// logged and does not fail the download.
func (s *ExportService) Export(ctx context.Context, rawType, format string) (*ExportResult, error) {
	exportType, err := export.ParseType(rawType)
	if err != nil {
		return nil, err
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatJSON {
		return nil, domain.Invalid("format", "must be csv or json")
	}

	records, err := s.records(ctx, exportType)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{Filename: export.Filename(exportType, s.now())}
	if format == FormatJSON {
		if records == nil {
			records = []export.Record{}
		}
		body, err := json.Marshal(records)
		if err != nil {
			return nil, err
		}
		result.Filename = strings.TrimSuffix(result.Filename, ".csv") + ".json"
		result.ContentType = "application/json"
		result.Body = body
		return result, nil
	}

	result.ContentType = "text/csv"
	result.Body = []byte(export.ToCSV(records))

	if s.archiver != nil {
		key, err := s.archiver.Archive(ctx, result.Filename, result.ContentType, result.Body)
		if err != nil {
			s.logger.Warn("export archive failed", zap.String("file", result.Filename), zap.Error(err))
		} else {
			result.ArchiveKey = key
		}
	}
	return result, nil
}

func (s *ExportService) records(ctx context.Context, t export.Type) ([]export.Record, error) {
	switch t {
	case export.TypeEmployees:
		employees, err := s.employees.List(ctx, repository.EmployeeFilter{})
		if err != nil {
			return nil, err
		}
		return export.EmployeeRecords(employees), nil
	case export.TypeProjects:
		projects, err := s.projects.List(ctx, repository.ProjectFilter{})
		if err != nil {
			return nil, err
		}
		return export.ProjectRecords(projects), nil
	default:
		assignments, err := s.assignments.List(ctx, repository.AssignmentFilter{})
		if err != nil {
			return nil, err
		}
		return export.AssignmentRecords(assignments), nil
	}
}
