package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"

	"organ-transport-service/internal/domain"
	"organ-transport-service/internal/ports"
)

func testRedisCache(t *testing.T) *RedisEstimateCache {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewRedisEstimateCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestRedisEstimateCacheRoundTrip(t *testing.T) {
	c := testRedisCache(t)
	ctx := context.Background()

	origin := domain.Coordinates{Lat: 40.7128, Lng: -74.0060}
	destination := domain.Coordinates{Lat: 40.7589, Lng: -73.9851}

	if _, ok, err := c.Get(ctx, origin, destination); err != nil || ok {
		t.Fatalf("Get on empty cache: ok=%t err=%v, want miss", ok, err)
	}

	want := ports.RouteEstimate{DistanceMeters: 7350, DurationSeconds: 912}
	if err := c.Put(ctx, origin, destination, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(ctx, origin, destination)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get: miss after Put")
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	// The reverse direction is a distinct key.
	if _, ok, err := c.Get(ctx, destination, origin); err != nil || ok {
		t.Errorf("reverse Get: ok=%t err=%v, want miss", ok, err)
	}
}

func TestRedisEstimateCacheMalformedValue(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisEstimateCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	origin := domain.Coordinates{Lat: 1, Lng: 2}
	destination := domain.Coordinates{Lat: 3, Lng: 4}
	mr.Set(c.key(origin, destination), "not-a-pair")

	if _, _, err := c.Get(context.Background(), origin, destination); err == nil {
		t.Fatal("want error for malformed cache value")
	}
}
