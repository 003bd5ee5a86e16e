package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/metropower/dashboard/internal/domain"
)

const sampleSeed = `
employees:
  - employee_id: EMP001
    name: Jane Doe
    position: Electrician
    employee_number: "1001"
    hire_date: "2020-01-15"
projects:
  - project_id: PROJ-001
    name: Substation Retrofit
    number: "24-117"
    status: On Hold
    start_date: "2025-01-06"
    budget: 2500000
assignments:
  - employee_id: EMP001
    project_id: PROJ-001
    assignment_date: "2025-06-14"
users:
  - username: viewer
    password: s3cret
    role: viewer
`

func TestLoadSeed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSeed), 0o600))

	data, err := LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, data.Employees, 1)
	require.Len(t, data.Projects, 1)
	require.Len(t, data.Assignments, 1)
	require.Len(t, data.Users, 1)

	emp := data.Employees[0].Employee()
	require.Equal(t, "EMP001", emp.ID)
	require.Equal(t, domain.EmployeeStatusActive, emp.Status)

	proj := data.Projects[0].Project()
	require.Equal(t, domain.ProjectStatusOnHold, proj.Status)
	require.NotNil(t, proj.Budget)
	require.InDelta(t, 2500000, *proj.Budget, 0.001)

	require.Equal(t, "2025-06-14", data.Assignments[0].Date)
	require.Equal(t, "viewer", data.Users[0].Role)
}

func TestDecodeSeed_RejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	_, err := DecodeSeed([]byte("employees:\n  - employee_id: EMP001\n    salary: 10\n"))
	require.Error(t, err)
}

func TestLoadSeed_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadSeed(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorContains(t, err, "read seed file")
}
