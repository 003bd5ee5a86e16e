package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/metropower/dashboard/internal/domain"
	"github.com/metropower/dashboard/internal/persistence"
)

const employeeColumns = `employee_id, name, position, status, employee_number,
               to_char(hire_date, 'YYYY-MM-DD'), phone, email, notes, created_at, updated_at`

type employeeRepository struct {
	db persistence.Queryer
}

// NewEmployeeRepository returns a Postgres-backed implementation.
func NewEmployeeRepository(db persistence.Queryer) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	const query = `
        INSERT INTO employees (employee_id, name, position, status, employee_number, hire_date, phone, email, notes)
        VALUES ($1,$2,$3,$4,$5,$6::date,$7,$8,$9)
        RETURNING created_at, updated_at`
	err := persistence.QueryerFromContext(ctx, r.db).QueryRow(ctx, query,
		e.ID,
		e.Name,
		e.Position,
		string(e.Status),
		e.EmployeeNumber,
		e.HireDate,
		nullable(e.Phone),
		nullable(e.Email),
		nullable(e.Notes),
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	return translatePgError(err, "employee", e.ID)
}

func (r *employeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	const query = `
        UPDATE employees SET name=$1, position=$2, status=$3, employee_number=$4, hire_date=$5::date,
            phone=$6, email=$7, notes=$8, updated_at=NOW()
        WHERE employee_id=$9
        RETURNING updated_at`
	err := persistence.QueryerFromContext(ctx, r.db).QueryRow(ctx, query,
		e.Name,
		e.Position,
		string(e.Status),
		e.EmployeeNumber,
		e.HireDate,
		nullable(e.Phone),
		nullable(e.Email),
		nullable(e.Notes),
		e.ID,
	).Scan(&e.UpdatedAt)
	return translatePgError(err, "employee", e.ID)
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id=$1`
	e, err := scanEmployee(persistence.QueryerFromContext(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		return nil, translatePgError(err, "employee", id)
	}
	return e, nil
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	query := fmt.Sprintf(`SELECT %s FROM employees WHERE %s ORDER BY employee_id`,
		employeeColumns, strings.Join(clauses, " AND "))

	rows, err := persistence.QueryerFromContext(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	return result, rows.Err()
}

func (r *employeeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := persistence.QueryerFromContext(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&n)
	return n, err
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var (
		e                   domain.Employee
		status              string
		phone, email, notes sql.NullString
	)
	if err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Position,
		&status,
		&e.EmployeeNumber,
		&e.HireDate,
		&phone,
		&email,
		&notes,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	e.Status = domain.EmployeeStatus(status)
	e.Phone = phone.String
	e.Email = email.String
	e.Notes = notes.String
	return &e, nil
}
