package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/metropower/dashboard/internal/scheduling"
)

const sequenceKeyPrefix = "metropower:seq:"

type sequenceClient interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// RedisSequence hands out identifiers with INCR so concurrent instances never collide.
type RedisSequence struct {
	client sequenceClient
}

// NewRedisSequence wraps an established Redis connection.
func NewRedisSequence(r *Redis) *RedisSequence {
	return &RedisSequence{client: r.Client}
}

// SequenceKey returns the Redis key holding the counter for entity.
func SequenceKey(entity scheduling.Entity) string {
	return sequenceKeyPrefix + string(entity)
}

// Seed initializes the counter to current unless it already exists.
func (s *RedisSequence) Seed(ctx context.Context, entity scheduling.Entity, current int64) (bool, error) {
	ok, err := s.client.SetNX(ctx, SequenceKey(entity), current, 0).Result()
	if err != nil {
		return false, fmt.Errorf("seed %s sequence: %w", entity, err)
	}
	return ok, nil
}

// Next increments and returns the counter for entity.
func (s *RedisSequence) Next(ctx context.Context, entity scheduling.Entity) (int64, error) {
	n, err := s.client.Incr(ctx, SequenceKey(entity)).Result()
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", entity, err)
	}
	return n, nil
}
