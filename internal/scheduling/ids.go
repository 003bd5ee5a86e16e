package scheduling

import (
	"context"
	"fmt"

	"github.com/metropower/dashboard/internal/domain"
)

// Entity names a collection that receives synthesized identifiers.
type Entity string

const (
	EntityEmployee Entity = "employee"
	EntityProject  Entity = "project"
)

// Sequence hands out the next number for an entity. Implementations backed by a
// shared store must be atomic across processes.
type Sequence interface {
	Next(ctx context.Context, entity Entity) (int64, error)
}

// EmployeeID formats the n-th employee identifier, e.g. EMP001.
func EmployeeID(n int64) string {
	return fmt.Sprintf("EMP%03d", n)
}

// ProjectID formats the n-th project identifier, e.g. PROJ-001.
func ProjectID(n int64) string {
	return fmt.Sprintf("PROJ-%03d", n)
}

// FormatID formats n for entity.
func FormatID(entity Entity, n int64) string {
	if entity == EntityProject {
		return ProjectID(n)
	}
	return EmployeeID(n)
}

// NextAssignmentID returns max(existing ids) + 1. It only sees the ids still in
// the slice: once the highest assignment is removed its id comes back. Stores
// that delete assignments must track the last issued id themselves, as
// repository.MemoryStore does.
func NextAssignmentID(assignments []domain.Assignment) int64 {
	var maxID int64
	for _, a := range assignments {
		if a.ID > maxID {
			maxID = a.ID
		}
	}
	return maxID + 1
}
