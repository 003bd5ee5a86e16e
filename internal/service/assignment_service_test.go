package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/metropower/dashboard/internal/domain"
	"github.com/metropower/dashboard/internal/events"
	"github.com/metropower/dashboard/internal/repository"
	"github.com/metropower/dashboard/internal/scheduling"
)

func TestAssignmentService_CreateResolvesNames(t *testing.T) {
	t.Parallel()

	f := newFixture(t, true)
	f.seedBasics(t)
	ctx := WithActor(context.Background(), "admin")

	a, err := f.assignments.Create(ctx, scheduling.Request{EmployeeID: "EMP001", ProjectID: "PROJ-001", Date: "2025-06-14"})
	require.NoError(t, err)
	require.EqualValues(t, 1, a.ID)
	require.Equal(t, "Jane Doe", a.EmployeeName)
	require.Equal(t, "Substation Retrofit", a.ProjectName)

	require.Len(t, f.published, 1)
	require.Equal(t, events.EventAssignmentCreated, f.published[0].Type)
	require.Equal(t, "admin", f.published[0].Actor)
}

func TestAssignmentService_RejectsDuplicate(t *testing.T) {
	t.Parallel()

	f := newFixture(t, true)
	f.seedBasics(t)
	ctx := context.Background()
	req := scheduling.Request{EmployeeID: "EMP001", ProjectID: "PROJ-001", Date: "2025-06-14"}

	_, err := f.assignments.Create(ctx, req)
	require.NoError(t, err)

	_, err = f.assignments.Create(ctx, req)
	var dup *domain.DuplicateAssignmentError
	require.ErrorAs(t, err, &dup)

	all, err := f.assignments.List(ctx, repository.AssignmentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestAssignmentService_StrictAndLenientReferences(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	req := scheduling.Request{EmployeeID: "EMP999", ProjectID: "PROJ-001", Date: "2025-06-14"}

	strict := newFixture(t, true)
	strict.seedBasics(t)
	_, err := strict.assignments.Create(ctx, req)
	require.ErrorIs(t, err, domain.ErrNotFound)

	lenient := newFixture(t, false)
	lenient.seedBasics(t)
	a, err := lenient.assignments.Create(ctx, req)
	require.NoError(t, err)
	require.Equal(t, scheduling.UnknownEmployee, a.EmployeeName)
	require.Equal(t, "Substation Retrofit", a.ProjectName)
}

func TestAssignmentService_Validation(t *testing.T) {
	t.Parallel()

	f := newFixture(t, true)
	ctx := context.Background()

	_, err := f.assignments.Create(ctx, scheduling.Request{ProjectID: "PROJ-001", Date: "2025-06-14"})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.assignments.List(ctx, repository.AssignmentFilter{From: "2025-06-30", To: "2025-06-01"})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.assignments.List(ctx, repository.AssignmentFilter{From: "June"})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestAssignmentService_ConcurrentCreatesBookOnce(t *testing.T) {
	t.Parallel()

	f := newFixture(t, true)
	f.seedBasics(t)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.assignments.Create(ctx, scheduling.Request{EmployeeID: "EMP001", ProjectID: "PROJ-001", Date: "2025-06-14"})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, success)
}

func TestAssignmentService_Delete(t *testing.T) {
	t.Parallel()

	f := newFixture(t, true)
	f.seedBasics(t)
	ctx := context.Background()

	a, err := f.assignments.Create(ctx, scheduling.Request{EmployeeID: "EMP001", ProjectID: "PROJ-001", Date: "2025-06-14"})
	require.NoError(t, err)

	require.NoError(t, f.assignments.Delete(ctx, a.ID))
	_, err = f.assignments.Get(ctx, a.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, f.assignments.Delete(ctx, a.ID), domain.ErrNotFound)
	require.Equal(t, events.EventAssignmentDeleted, f.published[len(f.published)-1].Type)

	// The same slot can be booked again.
	_, err = f.assignments.Create(ctx, scheduling.Request{EmployeeID: "EMP001", ProjectID: "PROJ-001", Date: "2025-06-14"})
	require.NoError(t, err)
}
