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

const projectColumns = `project_id, name, number, status, to_char(start_date, 'YYYY-MM-DD'),
               to_char(end_date, 'YYYY-MM-DD'), location, description, budget::float8, created_at, updated_at`

type projectRepository struct {
	db persistence.Queryer
}

// NewProjectRepository returns a Postgres-backed implementation.
func NewProjectRepository(db persistence.Queryer) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	const query = `
        INSERT INTO projects (project_id, name, number, status, start_date, end_date, location, description, budget)
        VALUES ($1,$2,$3,$4,$5::date,$6::date,$7,$8,$9)
        RETURNING created_at, updated_at`
	err := persistence.QueryerFromContext(ctx, r.db).QueryRow(ctx, query,
		p.ID,
		p.Name,
		p.Number,
		string(p.Status),
		p.StartDate,
		nullable(p.EndDate),
		nullable(p.Location),
		nullable(p.Description),
		p.Budget,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return translatePgError(err, "project", p.ID)
}

func (r *projectRepository) Update(ctx context.Context, p *domain.Project) error {
	const query = `
        UPDATE projects SET name=$1, number=$2, status=$3, start_date=$4::date, end_date=$5::date,
            location=$6, description=$7, budget=$8, updated_at=NOW()
        WHERE project_id=$9
        RETURNING updated_at`
	err := persistence.QueryerFromContext(ctx, r.db).QueryRow(ctx, query,
		p.Name,
		p.Number,
		string(p.Status),
		p.StartDate,
		nullable(p.EndDate),
		nullable(p.Location),
		nullable(p.Description),
		p.Budget,
		p.ID,
	).Scan(&p.UpdatedAt)
	return translatePgError(err, "project", p.ID)
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id=$1`
	p, err := scanProject(persistence.QueryerFromContext(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		return nil, translatePgError(err, "project", id)
	}
	return p, nil
}

func (r *projectRepository) List(ctx context.Context, filter ProjectFilter) ([]domain.Project, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE %s ORDER BY project_id`,
		projectColumns, strings.Join(clauses, " AND "))

	rows, err := persistence.QueryerFromContext(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *projectRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := persistence.QueryerFromContext(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n)
	return n, err
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var (
		p                              domain.Project
		status                         string
		endDate, location, description sql.NullString
		budget                         sql.NullFloat64
	)
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Number,
		&status,
		&p.StartDate,
		&endDate,
		&location,
		&description,
		&budget,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Status = domain.ProjectStatus(status)
	p.EndDate = endDate.String
	p.Location = location.String
	p.Description = description.String
	if budget.Valid {
		v := budget.Float64
		p.Budget = &v
	}
	return &p, nil
}
