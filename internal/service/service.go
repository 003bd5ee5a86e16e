package service

import (
	"context"
	"errors"
	"strings"

	"github.com/metropower/dashboard/internal/domain"
	"github.com/metropower/dashboard/internal/scheduling"
)

// maxIDAttempts bounds retries when a synthesized identifier is already taken.
const maxIDAttempts = 5

// Transactor runs a unit of work atomically. Both *persistence.TransactionManager
// and *repository.MemoryStore satisfy it.
type Transactor interface {
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
}

type actorKey struct{}

// WithActor records the operator on whose behalf the call runs.
func WithActor(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, actorKey{}, username)
}

func actorFrom(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok {
		return actor
	}
	return ""
}

// createWithSequence draws identifiers until insert succeeds or a non-conflict error occurs.
func createWithSequence(ctx context.Context, seq scheduling.Sequence, entity scheduling.Entity, insert func(id string) error) error {
	var lastErr error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		n, err := seq.Next(ctx, entity)
		if err != nil {
			return err
		}
		lastErr = insert(scheduling.FormatID(entity, n))
		if !errors.Is(lastErr, domain.ErrAlreadyExists) {
			return lastErr
		}
	}
	return lastErr
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

func optionalDate(field, value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	return domain.NormalizeDate(field, value)
}
