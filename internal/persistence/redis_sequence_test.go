package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/metropower/dashboard/internal/scheduling"
)

type fakeCounterStore struct {
	values map[string]int64
	err    error
}

func (f *fakeCounterStore) Incr(_ context.Context, key string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	f.values[key]++
	return redis.NewIntResult(f.values[key], nil)
}

func (f *fakeCounterStore) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	if _, exists := f.values[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	f.values[key] = value.(int64)
	return redis.NewBoolResult(true, nil)
}

func TestRedisSequence_SeedThenNext(t *testing.T) {
	t.Parallel()

	store := &fakeCounterStore{values: map[string]int64{}}
	seq := &RedisSequence{client: store}
	ctx := context.Background()

	seeded, err := seq.Seed(ctx, scheduling.EntityEmployee, 4)
	require.NoError(t, err)
	require.True(t, seeded)

	seeded, err = seq.Seed(ctx, scheduling.EntityEmployee, 0)
	require.NoError(t, err)
	require.False(t, seeded)

	n, err := seq.Next(ctx, scheduling.EntityEmployee)
	require.NoError(t, err)
	require.EqualValues(t, 5, n)
	require.Equal(t, "EMP005", scheduling.EmployeeID(n))

	n, err = seq.Next(ctx, scheduling.EntityProject)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	require.Contains(t, store.values, "metropower:seq:project")
}

func TestRedisSequence_PropagatesErrors(t *testing.T) {
	t.Parallel()

	seq := &RedisSequence{client: &fakeCounterStore{values: map[string]int64{}, err: errors.New("connection refused")}}
	_, err := seq.Next(context.Background(), scheduling.EntityProject)
	require.ErrorContains(t, err, "next project id")
}
