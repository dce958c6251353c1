package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
	"time"

	"github.com/redis/go-redis/v9"
)

const routeKeyPrefix = "fuelroute:route:"

// Stored form of a route; geometry is kept in [lon, lat] order.
type routeEntry struct {
	Geometry        [][]float64 `json:"geometry"`
	DistanceMeters  float64     `json:"distance_meters"`
	DurationSeconds float64     `json:"duration_seconds"`
}

// RedisRouteCache stores route geometries in Redis with a fixed TTL.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{client: client, ttl: ttl}
}

// NewRedisRouteCacheFromURL parses a redis:// URL and verifies the server
// is reachable.
func NewRedisRouteCacheFromURL(ctx context.Context, url string, ttl time.Duration) (*RedisRouteCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis route cache: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis route cache: ping: %w", err)
	}
	return NewRedisRouteCache(client, ttl), nil
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) (_ ports.RouteResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.redis.Get")(&err)

	b, err := c.client.Get(ctx, routeKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache key=%q: %w", key, err)
	}

	var e routeEntry
	if err := json.Unmarshal(b, &e); err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("decode route cache key=%q: %w", key, err)
	}

	geometry, err := domain.FromLonLat(e.Geometry)
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("decode route cache key=%q: %w", key, err)
	}

	return ports.RouteResult{
		Geometry:        geometry,
		DistanceMeters:  e.DistanceMeters,
		DurationSeconds: e.DurationSeconds,
	}, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, key string, route ports.RouteResult) error {
	b, err := json.Marshal(routeEntry{
		Geometry:        domain.ToLonLat(route.Geometry),
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
	})
	if err != nil {
		return fmt.Errorf("encode route cache key=%q: %w", key, err)
	}

	if err := c.client.Set(ctx, routeKeyPrefix+key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("put route cache key=%q: %w", key, err)
	}
	return nil
}

func (c *RedisRouteCache) Close() error { return c.client.Close() }
