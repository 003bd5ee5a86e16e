package scheduling

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/metropower/dashboard/internal/domain"
)

func fixtures() ([]domain.Employee, []domain.Project) {
	employees := []domain.Employee{{ID: "EMP001", Name: "John Smith"}}
	projects := []domain.Project{{ID: "PROJ-001", Name: "Downtown Office Building"}}
	return employees, projects
}

func TestCreateAssignment_ResolvesNames(t *testing.T) {
	t.Parallel()

	employees, projects := fixtures()
	var assignments []domain.Assignment

	got, err := NewResolver(true).CreateAssignment(Request{
		EmployeeID: "EMP001",
		ProjectID:  "PROJ-001",
		Date:       "2025-06-14",
	}, employees, projects, &assignments)
	require.NoError(t, err)

	require.Equal(t, domain.Assignment{
		ID:           1,
		EmployeeID:   "EMP001",
		EmployeeName: "John Smith",
		ProjectID:    "PROJ-001",
		ProjectName:  "Downtown Office Building",
		Date:         "2025-06-14",
	}, got)
	require.Len(t, assignments, 1)
}

func TestCreateAssignment_RejectsDuplicateEmployeeDay(t *testing.T) {
	t.Parallel()

	employees, projects := fixtures()
	var assignments []domain.Assignment
	resolver := NewResolver(true)
	req := Request{EmployeeID: "EMP001", ProjectID: "PROJ-001", Date: "2025-06-14"}

	_, err := resolver.CreateAssignment(req, employees, projects, &assignments)
	require.NoError(t, err)

	_, err = resolver.CreateAssignment(req, employees, projects, &assignments)
	var dup *domain.DuplicateAssignmentError
	require.ErrorAs(t, err, &dup)
	require.True(t, errors.Is(err, domain.ErrDuplicateAssignment))
	require.Equal(t, "EMP001", dup.EmployeeID)
	require.Equal(t, "2025-06-14", dup.Date)
	require.Len(t, assignments, 1)
}

func TestCreateAssignment_SameEmployeeDifferentDayIsAllowed(t *testing.T) {
	t.Parallel()

	employees, projects := fixtures()
	var assignments []domain.Assignment
	resolver := NewResolver(true)

	_, err := resolver.CreateAssignment(Request{EmployeeID: "EMP001", ProjectID: "PROJ-001", Date: "2025-06-14"}, employees, projects, &assignments)
	require.NoError(t, err)
	second, err := resolver.CreateAssignment(Request{EmployeeID: "EMP001", ProjectID: "PROJ-001", Date: "2025-06-15"}, employees, projects, &assignments)
	require.NoError(t, err)
	require.EqualValues(t, 2, second.ID)
}

func TestCreateAssignment_UnknownEmployeeStrict(t *testing.T) {
	t.Parallel()

	employees, projects := fixtures()
	var assignments []domain.Assignment

	_, err := NewResolver(true).CreateAssignment(Request{
		EmployeeID: "EMP999",
		ProjectID:  "PROJ-001",
		Date:       "2025-06-15",
	}, employees, projects, &assignments)

	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "employee", nf.Resource)
	require.Equal(t, "EMP999", nf.ID)
	require.Empty(t, assignments)
}

func TestCreateAssignment_UnknownReferencesLenient(t *testing.T) {
	t.Parallel()

	employees, projects := fixtures()
	var assignments []domain.Assignment
	resolver := NewResolver(false)

	a, err := resolver.CreateAssignment(Request{EmployeeID: "EMP999", ProjectID: "PROJ-001", Date: "2025-06-15"}, employees, projects, &assignments)
	require.NoError(t, err)
	require.Equal(t, UnknownEmployee, a.EmployeeName)
	require.Equal(t, "Downtown Office Building", a.ProjectName)

	b, err := resolver.CreateAssignment(Request{EmployeeID: "EMP001", ProjectID: "PROJ-404", Date: "2025-06-15"}, employees, projects, &assignments)
	require.NoError(t, err)
	require.Equal(t, "John Smith", b.EmployeeName)
	require.Equal(t, UnknownProject, b.ProjectName)

	c, err := resolver.CreateAssignment(Request{EmployeeID: "EMP998", ProjectID: "PROJ-001", Date: "2025-06-15"}, employees, projects, &assignments)
	require.NoError(t, err)
	require.Equal(t, UnknownEmployee, c.EmployeeName)
}

func TestCreateAssignment_Validation(t *testing.T) {
	t.Parallel()

	employees, projects := fixtures()
	cases := []struct {
		name  string
		req   Request
		field string
	}{
		{name: "missing employee", req: Request{ProjectID: "PROJ-001", Date: "2025-06-14"}, field: "employee_id"},
		{name: "missing project", req: Request{EmployeeID: "EMP001", Date: "2025-06-14"}, field: "project_id"},
		{name: "missing date", req: Request{EmployeeID: "EMP001", ProjectID: "PROJ-001"}, field: "assignment_date"},
		{name: "malformed date", req: Request{EmployeeID: "EMP001", ProjectID: "PROJ-001", Date: "06/14/2025"}, field: "assignment_date"},
		{name: "blank employee", req: Request{EmployeeID: "   ", ProjectID: "PROJ-001", Date: "2025-06-14"}, field: "employee_id"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var assignments []domain.Assignment
			_, err := NewResolver(true).CreateAssignment(tc.req, employees, projects, &assignments)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tc.field, ve.Field)
			require.Empty(t, assignments)
		})
	}
}

func TestCreateAssignment_IDsStrictlyIncrease(t *testing.T) {
	t.Parallel()

	employees := []domain.Employee{{ID: "EMP001", Name: "A"}, {ID: "EMP002", Name: "B"}}
	_, projects := fixtures()
	resolver := NewResolver(true)
	assignments := []domain.Assignment{{ID: 7, EmployeeID: "EMP002", Date: "2025-01-01"}}

	dates := []string{"2025-06-01", "2025-06-02", "2025-06-02", "2025-06-03"}
	var last int64 = 7
	for _, d := range dates {
		a, err := resolver.CreateAssignment(Request{EmployeeID: "EMP001", ProjectID: "PROJ-001", Date: d}, employees, projects, &assignments)
		if err != nil {
			require.ErrorIs(t, err, domain.ErrDuplicateAssignment)
			continue
		}
		require.Greater(t, a.ID, last)
		last = a.ID
	}
	require.Len(t, assignments, 4)
	require.EqualValues(t, 10, last)
}

func TestResolve_TrimsAndNormalizes(t *testing.T) {
	t.Parallel()

	a, err := NewResolver(true).Resolve(Request{
		EmployeeID: " EMP001 ",
		ProjectID:  "PROJ-001",
		Date:       " 2025-06-14 ",
		Notes:      "  bring harness ",
	}, &domain.Employee{ID: "EMP001", Name: "John Smith"}, &domain.Project{ID: "PROJ-001", Name: "Depot"})
	require.NoError(t, err)
	require.Equal(t, "EMP001", a.EmployeeID)
	require.Equal(t, "2025-06-14", a.Date)
	require.Equal(t, "bring harness", a.Notes)
	require.Zero(t, a.ID)
}
