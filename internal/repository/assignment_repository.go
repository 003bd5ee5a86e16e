package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/metropower/dashboard/internal/domain"
	"github.com/metropower/dashboard/internal/persistence"
)

const assignmentColumns = `assignment_id, employee_id, employee_name, project_id, project_name,
               to_char(assignment_date, 'YYYY-MM-DD'), notes, created_at`

type assignmentRepository struct {
	db persistence.Queryer
}

// NewAssignmentRepository returns a Postgres-backed implementation relying on
// the (employee_id, assignment_date) unique constraint.
func NewAssignmentRepository(db persistence.Queryer) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, a *domain.Assignment) error {
	const query = `
        INSERT INTO assignments (employee_id, employee_name, project_id, project_name, assignment_date, notes)
        VALUES ($1,$2,$3,$4,$5::date,$6)
        RETURNING assignment_id, created_at`
	err := persistence.QueryerFromContext(ctx, r.db).QueryRow(ctx, query,
		a.EmployeeID,
		a.EmployeeName,
		a.ProjectID,
		a.ProjectName,
		a.Date,
		nullable(a.Notes),
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return translateAssignmentError(err, a)
	}
	return nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id int64) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE assignment_id=$1`
	a, err := scanAssignment(persistence.QueryerFromContext(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		return nil, translatePgError(err, "assignment", strconv.FormatInt(id, 10))
	}
	return a, nil
}

func (r *assignmentRepository) FindByEmployeeDate(ctx context.Context, employeeID, date string) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE employee_id=$1 AND assignment_date=$2::date`
	a, err := scanAssignment(persistence.QueryerFromContext(ctx, r.db).QueryRow(ctx, query, employeeID, date))
	if err != nil {
		return nil, translatePgError(err, "assignment", employeeID+"@"+date)
	}
	return a, nil
}

func (r *assignmentRepository) List(ctx context.Context, filter AssignmentFilter) ([]domain.Assignment, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.From != "" {
		args = append(args, filter.From)
		clauses = append(clauses, fmt.Sprintf("assignment_date >= $%d::date", len(args)))
	}
	if filter.To != "" {
		args = append(args, filter.To)
		clauses = append(clauses, fmt.Sprintf("assignment_date <= $%d::date", len(args)))
	}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		clauses = append(clauses, fmt.Sprintf("employee_id=$%d", len(args)))
	}
	if filter.ProjectID != "" {
		args = append(args, filter.ProjectID)
		clauses = append(clauses, fmt.Sprintf("project_id=$%d", len(args)))
	}
	query := fmt.Sprintf(`SELECT %s FROM assignments WHERE %s ORDER BY assignment_date, assignment_id`,
		assignmentColumns, strings.Join(clauses, " AND "))

	rows, err := persistence.QueryerFromContext(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	return result, rows.Err()
}

func (r *assignmentRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := persistence.QueryerFromContext(ctx, r.db).Exec(ctx, `DELETE FROM assignments WHERE assignment_id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return notFound("assignment", strconv.FormatInt(id, 10))
	}
	return nil
}

func scanAssignment(row pgx.Row) (*domain.Assignment, error) {
	var (
		a     domain.Assignment
		notes sql.NullString
	)
	if err := row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.EmployeeName,
		&a.ProjectID,
		&a.ProjectName,
		&a.Date,
		&notes,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	a.Notes = notes.String
	return &a, nil
}
