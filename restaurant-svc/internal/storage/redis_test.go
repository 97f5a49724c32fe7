package storage_test

import (
	"context"
	"testing"
	"time"

	"brasserie/restaurant-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettlementCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := storage.NewSettlementCache(client, time.Hour)
	ctx := context.Background()

	settled, err := cache.IsSettled(ctx, 42)
	require.NoError(t, err)
	assert.False(t, settled)

	require.NoError(t, cache.MarkSettled(ctx, 42))

	settled, err = cache.IsSettled(ctx, 42)
	require.NoError(t, err)
	assert.True(t, settled)
	assert.True(t, mr.Exists("settled:order:42"))

	mr.FastForward(2 * time.Hour)
	settled, err = cache.IsSettled(ctx, 42)
	require.NoError(t, err)
	assert.False(t, settled)
}

func TestSettlementCache_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := storage.NewSettlementCache(client, time.Hour)
	mr.Close()

	_, err := cache.IsSettled(context.Background(), 1)
	assert.Error(t, err)
}
