package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"organ-transport-service/internal/domain"
	"organ-transport-service/internal/ports"
)

// RedisEstimateCache is a Redis-backed cache for provider route estimates,
// shared between service instances. Entries expire so stale road data
// eventually refreshes.
type RedisEstimateCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisEstimateCache(redisURL string) (*RedisEstimateCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis estimate cache: parse url: %w", err)
	}
	return &RedisEstimateCache{rdb: redis.NewClient(opt), ttl: 30 * 24 * time.Hour}, nil
}

// NewRedisEstimateCacheFromClient wraps an existing client (tests).
func NewRedisEstimateCacheFromClient(rdb *redis.Client) *RedisEstimateCache {
	return &RedisEstimateCache{rdb: rdb, ttl: 30 * 24 * time.Hour}
}

func (r *RedisEstimateCache) key(origin, destination domain.Coordinates) string {
	return "estimate:" + coordKey(origin) + "|" + coordKey(destination)
}

// Fetch a cached estimate for one coordinate pair.
func (r *RedisEstimateCache) Get(
	ctx context.Context,
	origin, destination domain.Coordinates,
) (ports.RouteEstimate, bool, error) {
	val, err := r.rdb.Get(ctx, r.key(origin, destination)).Result()
	if errors.Is(err, redis.Nil) {
		return ports.RouteEstimate{}, false, nil
	}
	if err != nil {
		return ports.RouteEstimate{}, false, fmt.Errorf("get estimate cache: %w", err)
	}

	var meters, seconds int
	if _, err := fmt.Sscanf(val, "%d|%d", &meters, &seconds); err != nil {
		return ports.RouteEstimate{}, false, fmt.Errorf("get estimate cache: malformed value %q: %w", val, err)
	}

	return ports.RouteEstimate{DistanceMeters: meters, DurationSeconds: seconds}, true, nil
}

// Store an estimate for one coordinate pair.
func (r *RedisEstimateCache) Put(
	ctx context.Context,
	origin, destination domain.Coordinates,
	est ports.RouteEstimate,
) error {
	val := fmt.Sprintf("%d|%d", est.DistanceMeters, est.DurationSeconds)
	if err := r.rdb.Set(ctx, r.key(origin, destination), val, r.ttl).Err(); err != nil {
		return fmt.Errorf("insert estimate cache: %w", err)
	}
	return nil
}
