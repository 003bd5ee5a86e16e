package repository

import (
	"context"
	"fmt"

	"github.com/metropower/dashboard/internal/persistence"
	"github.com/metropower/dashboard/internal/scheduling"
)

var sequenceNames = map[scheduling.Entity]string{
	scheduling.EntityEmployee: "employee_seq",
	scheduling.EntityProject:  "project_seq",
}

// PostgresSequence draws identifiers from database sequences.
type PostgresSequence struct {
	db persistence.Queryer
}

// NewPostgresSequence returns a sequence backed by nextval.
func NewPostgresSequence(db persistence.Queryer) *PostgresSequence {
	return &PostgresSequence{db: db}
}

// Next returns nextval of the entity's sequence.
func (s *PostgresSequence) Next(ctx context.Context, entity scheduling.Entity) (int64, error) {
	name, ok := sequenceNames[entity]
	if !ok {
		return 0, fmt.Errorf("no sequence for %q", entity)
	}
	var n int64
	if err := persistence.QueryerFromContext(ctx, s.db).QueryRow(ctx, `SELECT nextval($1::regclass)`, name).Scan(&n); err != nil {
		return 0, fmt.Errorf("next %s id: %w", entity, err)
	}
	return n, nil
}
