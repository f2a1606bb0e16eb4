//go:build integration

package infra

// Run with: go test -tags integration ./internal/infra/...

import (
	"context"
	"testing"
	"time"

	"inventario/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	rdb, err := NewRedis(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestPrecioCache(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()
	cache := NewPrecioCache(rdb)
	presID := uuid.New()

	_, ok := cache.Get(ctx, presID)
	assert.False(t, ok)

	v, ok := cache.Version(ctx, presID)
	require.True(t, ok)
	assert.Zero(t, v)

	viejo := &model.Precio{
		ID:             uuid.New(),
		PresentationID: presID,
		Price:          decimal.RequireFromString("120.50"),
		IVARate:        decimal.NewFromInt(19),
		IsActive:       true,
	}
	assert.True(t, cache.Set(ctx, viejo, v))
	got, ok := cache.Get(ctx, presID)
	require.True(t, ok)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("120.5")))

	ttl, err := rdb.TTL(ctx, precioKey(presID)).Result()
	require.NoError(t, err)
	assert.InDelta(t, precioCacheTTL.Seconds(), ttl.Seconds(), 5)

	cache.Invalidate(ctx, presID)
	_, ok = cache.Get(ctx, presID)
	assert.False(t, ok)

	// A reader holding the version from before the invalidation cannot write back.
	assert.False(t, cache.Set(ctx, viejo, v))
	_, ok = cache.Get(ctx, presID)
	assert.False(t, ok)

	v2, ok := cache.Version(ctx, presID)
	require.True(t, ok)
	assert.Equal(t, int64(1), v2)
	assert.True(t, cache.Set(ctx, viejo, v2))
}

func TestRedisLocker(t *testing.T) {
	rdb := newTestRedis(t)
	l := NewRedisLocker(rdb)
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "stock:a:b")
	require.NoError(t, err)

	// A second holder waits until the first releases.
	acquired := make(chan struct{})
	go func() {
		second, err := l.Lock(ctx, "stock:a:b")
		if err == nil {
			close(acquired)
			second()
		}
	}()

	select {
	case <-acquired:
		t.Fatal("lock acquired while held")
	case <-time.After(200 * time.Millisecond):
	}

	unlock()
	select {
	case <-acquired:
	case <-time.After(5 * time.Second):
		t.Fatal("lock not handed over after release")
	}

	shortCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	held, err := l.Lock(ctx, "stock:c:d")
	require.NoError(t, err)
	defer held()
	_, err = l.Lock(shortCtx, "stock:c:d")
	assert.ErrorIs(t, err, ErrLockTimeout)
}
