package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/metropower/dashboard/internal/domain"
	"github.com/metropower/dashboard/internal/scheduling"
)

type memoryTxKey struct{}

// MemoryStore keeps every collection in process. Units of work started with
// WithinReadWrite are serialized; individual reads and writes take a data lock.
type MemoryStore struct {
	txMu sync.Mutex

	mu          sync.RWMutex
	employees   []domain.Employee
	projects    []domain.Project
	assignments []domain.Assignment
	users       []domain.User
	issued      map[scheduling.Entity]int64
	lastAssign  int64
	lastUser    int64
	now         func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		issued: make(map[scheduling.Entity]int64),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithinReadWrite runs fn while holding the store-wide writer lock.
func (s *MemoryStore) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if ctx.Value(memoryTxKey{}) != nil {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(context.WithValue(ctx, memoryTxKey{}, true))
}

// WithinReadOnly runs fn directly; reads are consistent per call.
func (s *MemoryStore) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// Next returns the collection length plus one, never reissuing a number.
func (s *MemoryStore) Next(_ context.Context, entity scheduling.Entity) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var size int64
	switch entity {
	case scheduling.EntityEmployee:
		size = int64(len(s.employees))
	case scheduling.EntityProject:
		size = int64(len(s.projects))
	default:
		return 0, fmt.Errorf("no sequence for %q", entity)
	}
	n := size + 1
	if last := s.issued[entity]; n <= last {
		n = last + 1
	}
	s.issued[entity] = n
	return n, nil
}

// Employees exposes the employee collection as a repository.
func (s *MemoryStore) Employees() EmployeeRepository { return memoryEmployees{s} }

// Projects exposes the project collection as a repository.
func (s *MemoryStore) Projects() ProjectRepository { return memoryProjects{s} }

// Assignments exposes the assignment collection as a repository.
func (s *MemoryStore) Assignments() AssignmentRepository { return memoryAssignments{s} }

// Users exposes the operator collection as a repository.
func (s *MemoryStore) Users() UserRepository { return memoryUsers{s} }

type memoryEmployees struct{ s *MemoryStore }

func (r memoryEmployees) Create(_ context.Context, e *domain.Employee) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.employees {
		if existing.ID == e.ID {
			return fmt.Errorf("employee %q: %w", e.ID, domain.ErrAlreadyExists)
		}
	}
	e.CreatedAt = s.now()
	e.UpdatedAt = e.CreatedAt
	s.employees = append(s.employees, *e)
	return nil
}

func (r memoryEmployees) Update(_ context.Context, e *domain.Employee) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.employees {
		if s.employees[i].ID == e.ID {
			e.CreatedAt = s.employees[i].CreatedAt
			e.UpdatedAt = s.now()
			s.employees[i] = *e
			return nil
		}
	}
	return notFound("employee", e.ID)
}

func (r memoryEmployees) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.employees {
		if s.employees[i].ID == id {
			e := s.employees[i]
			return &e, nil
		}
	}
	return nil, notFound("employee", id)
}

func (r memoryEmployees) List(_ context.Context, filter EmployeeFilter) ([]domain.Employee, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		result = append(result, e)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r memoryEmployees) Count(context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.employees)), nil
}

type memoryProjects struct{ s *MemoryStore }

func (r memoryProjects) Create(_ context.Context, p *domain.Project) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.projects {
		if existing.ID == p.ID {
			return fmt.Errorf("project %q: %w", p.ID, domain.ErrAlreadyExists)
		}
	}
	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt
	s.projects = append(s.projects, *p)
	return nil
}

func (r memoryProjects) Update(_ context.Context, p *domain.Project) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ID == p.ID {
			p.CreatedAt = s.projects[i].CreatedAt
			p.UpdatedAt = s.now()
			s.projects[i] = *p
			return nil
		}
	}
	return notFound("project", p.ID)
}

func (r memoryProjects) GetByID(_ context.Context, id string) (*domain.Project, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			p := s.projects[i]
			return &p, nil
		}
	}
	return nil, notFound("project", id)
}

func (r memoryProjects) List(_ context.Context, filter ProjectFilter) ([]domain.Project, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		result = append(result, p)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r memoryProjects) Count(context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.projects)), nil
}

type memoryAssignments struct{ s *MemoryStore }

// Create enforces referential integrity only for the duplicate rule; callers
// decide how unknown employees and projects are handled.
func (r memoryAssignments) Create(_ context.Context, a *domain.Assignment) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if scheduling.FindDuplicate(s.assignments, a.EmployeeID, a.Date) != nil {
		return &domain.DuplicateAssignmentError{EmployeeID: a.EmployeeID, Date: a.Date}
	}
	// Ids keep growing after deletes.
	next := scheduling.NextAssignmentID(s.assignments)
	if next <= s.lastAssign {
		next = s.lastAssign + 1
	}
	s.lastAssign = next
	a.ID = next
	a.CreatedAt = s.now()
	s.assignments = append(s.assignments, *a)
	return nil
}

func (r memoryAssignments) GetByID(_ context.Context, id int64) (*domain.Assignment, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.assignments {
		if s.assignments[i].ID == id {
			a := s.assignments[i]
			return &a, nil
		}
	}
	return nil, notFound("assignment", strconv.FormatInt(id, 10))
}

func (r memoryAssignments) FindByEmployeeDate(_ context.Context, employeeID, date string) (*domain.Assignment, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	if found := scheduling.FindDuplicate(s.assignments, employeeID, date); found != nil {
		a := *found
		return &a, nil
	}
	return nil, notFound("assignment", employeeID+"@"+date)
}

func (r memoryAssignments) List(_ context.Context, filter AssignmentFilter) ([]domain.Assignment, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Assignment, 0, len(s.assignments))
	for _, a := range s.assignments {
		// ISO dates compare correctly as strings.
		if filter.From != "" && a.Date < filter.From {
			continue
		}
		if filter.To != "" && a.Date > filter.To {
			continue
		}
		if filter.EmployeeID != "" && a.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.ProjectID != "" && a.ProjectID != filter.ProjectID {
			continue
		}
		result = append(result, a)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r memoryAssignments) Delete(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.assignments {
		if s.assignments[i].ID == id {
			s.assignments = append(s.assignments[:i], s.assignments[i+1:]...)
			return nil
		}
	}
	return notFound("assignment", strconv.FormatInt(id, 10))
}

type memoryUsers struct{ s *MemoryStore }

func (r memoryUsers) Create(_ context.Context, u *domain.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return fmt.Errorf("user %q: %w", u.Username, domain.ErrAlreadyExists)
		}
	}
	s.lastUser++
	u.ID = s.lastUser
	u.CreatedAt = s.now()
	s.users = append(s.users, *u)
	return nil
}

func (r memoryUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].Username == username {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, notFound("user", username)
}

func (r memoryUsers) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return notFound("user", strconv.FormatInt(id, 10))
}
