package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/metropower/dashboard/internal/domain"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
)

func notFound(resource, id string) error {
	return &domain.NotFoundError{Resource: resource, ID: id}
}

// translatePgError maps driver errors for a single-row operation on resource/id.
func translatePgError(err error, resource, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound(resource, id)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%s %q: %w", resource, id, domain.ErrAlreadyExists)
		case checkViolationCode:
			field := strings.TrimSuffix(strings.TrimPrefix(pgErr.ConstraintName, resource+"s_"), "_check")
			return domain.Invalid(field, "violates "+pgErr.ConstraintName)
		}
	}
	return err
}

// translateAssignmentError maps constraint violations raised by assignment inserts.
func translateAssignmentError(err error, a *domain.Assignment) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return &domain.DuplicateAssignmentError{EmployeeID: a.EmployeeID, Date: a.Date}
		case foreignKeyViolationCode:
			if strings.Contains(pgErr.ConstraintName, "project") {
				return notFound("project", a.ProjectID)
			}
			return notFound("employee", a.EmployeeID)
		}
	}
	return translatePgError(err, "assignment", fmt.Sprint(a.ID))
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
