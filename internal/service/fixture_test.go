package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/metropower/dashboard/internal/config"
	"github.com/metropower/dashboard/internal/events"
	"github.com/metropower/dashboard/internal/repository"
	"github.com/metropower/dashboard/internal/scheduling"
)

type fixture struct {
	store       *repository.MemoryStore
	dispatcher  events.Dispatcher
	employees   *EmployeeService
	projects    *ProjectService
	assignments *AssignmentService
	auth        *AuthService
	published   []events.Event
}

func newFixture(t *testing.T, strict bool) *fixture {
	t.Helper()

	store := repository.NewMemoryStore()
	f := &fixture{store: store, dispatcher: events.NewInMemoryDispatcher(zap.NewNop())}
	for _, et := range events.AllTypes {
		f.dispatcher.Subscribe(et, func(_ context.Context, e events.Event) error {
			f.published = append(f.published, e)
			return nil
		})
	}

	f.employees = NewEmployeeService(store.Employees(), store, store, f.dispatcher)
	f.projects = NewProjectService(store.Projects(), store, store, f.dispatcher)
	f.assignments = NewAssignmentService(AssignmentDependencies{
		AssignmentRepo: store.Assignments(),
		EmployeeRepo:   store.Employees(),
		ProjectRepo:    store.Projects(),
		Transactor:     store,
		Dispatcher:     f.dispatcher,
	}, scheduling.NewResolver(strict))
	f.auth = NewAuthService(config.AuthConfig{BcryptCost: 4}, store.Users(), zap.NewNop())
	return f
}

func (f *fixture) seedBasics(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	_, err := f.employees.Create(ctx, EmployeeInput{Name: "Jane Doe", Position: "Electrician", HireDate: "2020-01-15"})
	require.NoError(t, err)
	_, err = f.projects.Create(ctx, ProjectInput{Name: "Substation Retrofit", Number: "24-117", StartDate: "2025-01-06"})
	require.NoError(t, err)
	f.published = nil
}
