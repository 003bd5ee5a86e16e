package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/metropower/dashboard/internal/domain"
)

func TestToCSV_Empty(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", ToCSV(nil))
	require.Equal(t, "", ToCSV([]Record{}))
}

func TestToCSV_HeaderAndRows(t *testing.T) {
	t.Parallel()

	records := []Record{
		{{Name: "id", Value: 1}, {Name: "name", Value: "Ann"}, {Name: "active", Value: true}},
		{{Name: "id", Value: 2}, {Name: "name", Value: nil}, {Name: "active", Value: false}},
		{{Name: "id", Value: 3}, {Name: "name", Value: "Bo"}, {Name: "active", Value: true}},
	}

	out := ToCSV(records)
	require.Equal(t, "id,name,active\n1,Ann,true\n2,,false\n3,Bo,true", out)
	require.Len(t, strings.Split(out, "\n"), len(records)+1)
	require.False(t, strings.HasSuffix(out, "\n"))
}

func TestToCSV_Escaping(t *testing.T) {
	t.Parallel()

	records := []Record{
		{{Name: "location", Value: "Atlanta, GA"}, {Name: "quote", Value: `He said "hi"`}, {Name: "plain", Value: "ok"}},
	}

	require.Equal(t, "location,quote,plain\n\"Atlanta, GA\",\"He said \"\"hi\"\"\",ok", ToCSV(records))
}

func TestToCSV_ScalarFormatting(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 6, 14, 15, 4, 0, 0, time.UTC)
	budget := 2500000.5
	records := []Record{
		{
			{Name: "date", Value: day},
			{Name: "budget", Value: 2500000.0},
			{Name: "ptr", Value: &budget},
			{Name: "count", Value: int64(12)},
		},
	}

	require.Equal(t, "date,budget,ptr,count\n2025-06-14,2500000,2500000.5,12", ToCSV(records))
}

func TestToCSV_LenientOnHeterogeneousRecords(t *testing.T) {
	t.Parallel()

	records := []Record{
		{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}},
		{{Name: "b", Value: "4"}, {Name: "c", Value: "5"}},
	}

	require.Equal(t, "a,b\n1,2\n,4", ToCSV(records))

	_, err := ToCSVStrict(records)
	require.ErrorIs(t, err, ErrHeterogeneousRecords)
}

func TestToCSVStrict_AcceptsReorderedFields(t *testing.T) {
	t.Parallel()

	records := []Record{
		{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}},
		{{Name: "b", Value: "4"}, {Name: "a", Value: "3"}},
	}

	out, err := ToCSVStrict(records)
	require.NoError(t, err)
	require.Equal(t, "a,b\n1,2\n3,4", out)
}

func TestAssignmentRecords(t *testing.T) {
	t.Parallel()

	out := ToCSV(AssignmentRecords([]domain.Assignment{{
		ID:           1,
		EmployeeID:   "EMP001",
		EmployeeName: "Smith, John",
		ProjectID:    "PROJ-001",
		ProjectName:  "Downtown Office Building",
		Date:         "2025-06-14",
	}}))

	require.Equal(t,
		"assignment_id,employee_id,employee_name,project_id,project_name,assignment_date,notes\n"+
			"1,EMP001,\"Smith, John\",PROJ-001,Downtown Office Building,2025-06-14,",
		out)
}

func TestProjectRecords_OptionalBudget(t *testing.T) {
	t.Parallel()

	budget := 1200.75
	records := ProjectRecords([]domain.Project{
		{ID: "PROJ-001", Name: "A", Number: "P-1", Status: domain.ProjectStatusActive, StartDate: "2025-01-01", Budget: &budget},
		{ID: "PROJ-002", Name: "B", Number: "P-2", Status: domain.ProjectStatusOnHold, StartDate: "2025-02-01", Location: "Atlanta, GA"},
	})

	lines := strings.Split(ToCSV(records), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "project_id,name,number,status,start_date,end_date,location,description,budget", lines[0])
	require.Equal(t, "PROJ-001,A,P-1,Active,2025-01-01,,,,1200.75", lines[1])
	require.Equal(t, "PROJ-002,B,P-2,On Hold,2025-02-01,,\"Atlanta, GA\",,", lines[2])
}

func TestParseTypeAndFilename(t *testing.T) {
	t.Parallel()

	typ, err := ParseType("employees")
	require.NoError(t, err)
	require.Equal(t, TypeEmployees, typ)

	_, err = ParseType("tickets")
	require.ErrorIs(t, err, domain.ErrValidation)

	require.Equal(t, "assignments_2025-06-14.csv", Filename(TypeAssignments, time.Date(2025, 6, 14, 23, 0, 0, 0, time.UTC)))
}

func TestRecordMarshalJSON_KeepsFieldOrder(t *testing.T) {
	t.Parallel()

	rec := Record{{Name: "zeta", Value: "z"}, {Name: "alpha", Value: nil}, {Name: "day", Value: time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)}}
	raw, err := json.Marshal([]Record{rec})
	require.NoError(t, err)
	require.Equal(t, `[{"zeta":"z","alpha":null,"day":"2025-06-14"}]`, string(raw))
}
