package export

import (
	"fmt"
	"time"

	"github.com/metropower/dashboard/internal/domain"
)

// Type names an exportable collection.
type Type string

const (
	TypeEmployees   Type = "employees"
	TypeProjects    Type = "projects"
	TypeAssignments Type = "assignments"
)

// ParseType validates an export type taken from the request path.
func ParseType(raw string) (Type, error) {
	switch t := Type(raw); t {
	case TypeEmployees, TypeProjects, TypeAssignments:
		return t, nil
	default:
		return "", domain.Invalid("type", fmt.Sprintf("unsupported export type %q", raw))
	}
}

// Filename follows the {type}_{ISO-date}.csv download convention.
func Filename(t Type, day time.Time) string {
	return fmt.Sprintf("%s_%s.csv", t, day.Format(domain.DateLayout))
}

// EmployeeRecords maps employees to records in column order.
func EmployeeRecords(employees []domain.Employee) []Record {
	records := make([]Record, 0, len(employees))
	for _, e := range employees {
		records = append(records, Record{
			{Name: "employee_id", Value: e.ID},
			{Name: "name", Value: e.Name},
			{Name: "position", Value: e.Position},
			{Name: "status", Value: string(e.Status)},
			{Name: "employee_number", Value: e.EmployeeNumber},
			{Name: "hire_date", Value: e.HireDate},
			{Name: "phone", Value: optional(e.Phone)},
			{Name: "email", Value: optional(e.Email)},
			{Name: "notes", Value: optional(e.Notes)},
		})
	}
	return records
}

// ProjectRecords maps projects to records in column order.
func ProjectRecords(projects []domain.Project) []Record {
	records := make([]Record, 0, len(projects))
	for _, p := range projects {
		var budget any
		if p.Budget != nil {
			budget = *p.Budget
		}
		records = append(records, Record{
			{Name: "project_id", Value: p.ID},
			{Name: "name", Value: p.Name},
			{Name: "number", Value: p.Number},
			{Name: "status", Value: string(p.Status)},
			{Name: "start_date", Value: p.StartDate},
			{Name: "end_date", Value: optional(p.EndDate)},
			{Name: "location", Value: optional(p.Location)},
			{Name: "description", Value: optional(p.Description)},
			{Name: "budget", Value: budget},
		})
	}
	return records
}

// AssignmentRecords maps assignments to records in column order.
func AssignmentRecords(assignments []domain.Assignment) []Record {
	records := make([]Record, 0, len(assignments))
	for _, a := range assignments {
		records = append(records, Record{
			{Name: "assignment_id", Value: a.ID},
			{Name: "employee_id", Value: a.EmployeeID},
			{Name: "employee_name", Value: a.EmployeeName},
			{Name: "project_id", Value: a.ProjectID},
			{Name: "project_name", Value: a.ProjectName},
			{Name: "assignment_date", Value: a.Date},
			{Name: "notes", Value: optional(a.Notes)},
		})
	}
	return records
}

func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}
