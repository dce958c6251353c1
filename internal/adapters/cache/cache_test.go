package cache

import (
	"context"
	"fuel-route-service/internal/adapters/repositories"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/ports"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRoute() ports.RouteResult {
	return ports.RouteResult{
		Geometry: []domain.Coordinates{
			{Lat: 41.8781, Lon: -87.6298},
			{Lat: 38.6270, Lon: -90.1994},
		},
		DistanceMeters:  475000,
		DurationSeconds: 17000,
	}
}

func TestSqliteGeocodeCache(t *testing.T) {
	ctx := context.Background()
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, repositories.InitSchema(ctx, conn))

	c := NewSqliteGeocodeCache(conn, 0)

	got, err := c.GetMany(ctx, []string{"chicago, il"})
	require.NoError(t, err)
	assert.Empty(t, got)

	chicago := domain.Coordinates{Lat: 41.8781, Lon: -87.6298}
	require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinates{"chicago, il": chicago}))

	got, err = c.GetMany(ctx, []string{"chicago, il", "chicago, il", " ", "denver, co"})
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Coordinates{"chicago, il": chicago}, got)
}

func TestSqliteGeocodeCacheMaxAge(t *testing.T) {
	ctx := context.Background()
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, repositories.InitSchema(ctx, conn))

	_, err = conn.ExecContext(ctx,
		`INSERT INTO geocode_cache (address, lon, lat, updated_at) VALUES (?, ?, ?, ?)`,
		"old", -90.0, 38.0, time.Now().Add(-48*time.Hour).Unix())
	require.NoError(t, err)

	got, err := NewSqliteGeocodeCache(conn, 24*time.Hour).GetMany(ctx, []string{"old"})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = NewSqliteGeocodeCache(conn, 0).GetMany(ctx, []string{"old"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRedisRouteCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewRedisRouteCache(client, time.Hour)
	t.Cleanup(func() { _ = c.Close() })

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	want := sampleRoute()
	require.NoError(t, c.Put(ctx, "k", want))
	assert.True(t, mr.Exists(routeKeyPrefix+"k"))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	mr.FastForward(2 * time.Hour)

	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisRouteCacheCorruptEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set(routeKeyPrefix+"bad", "{not json"))

	c := NewRedisRouteCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour)
	t.Cleanup(func() { _ = c.Close() })

	_, _, err := c.Get(context.Background(), "bad")
	require.Error(t, err)
}

func TestNewRedisRouteCacheFromURL(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := NewRedisRouteCacheFromURL(context.Background(), "redis://"+mr.Addr(), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	_, err = NewRedisRouteCacheFromURL(context.Background(), "://bad", time.Minute)
	require.Error(t, err)
}

func TestMemoryRouteCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	c := NewMemoryRouteCache(time.Minute, 0)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Put(ctx, "k", sampleRoute()))

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryRouteCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryRouteCache(time.Hour, 2)

	require.NoError(t, c.Put(ctx, "a", sampleRoute()))
	require.NoError(t, c.Put(ctx, "b", sampleRoute()))

	// Reading a makes b the eviction candidate.
	_, ok, err := c.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, c.Put(ctx, "c", sampleRoute()))
	assert.Equal(t, 2, c.Len())

	_, ok, _ = c.Get(ctx, "b")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "a")
	assert.True(t, ok)
	_, ok, _ = c.Get(ctx, "c")
	assert.True(t, ok)
}

func TestMemoryRouteCacheSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	c := NewMemoryRouteCache(time.Minute, 0)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Put(ctx, "old", sampleRoute()))
	now = now.Add(30 * time.Second)
	require.NoError(t, c.Put(ctx, "new", sampleRoute()))

	now = now.Add(45 * time.Second)
	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 1, c.Len())

	_, ok, err := c.Get(ctx, "new")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryRouteCacheExpiredReadKeepsFreshPut(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	c := NewMemoryRouteCache(time.Minute, 0)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Put(ctx, "k", sampleRoute()))
	now = now.Add(2 * time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _, _ = c.Get(ctx, "k")
		}()
		go func() {
			defer wg.Done()
			_ = c.Put(ctx, "k", sampleRoute())
		}()
	}
	wg.Wait()

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok, "a put at the current time must survive concurrent expired reads")
}
