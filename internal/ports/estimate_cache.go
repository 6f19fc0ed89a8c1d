package ports

import (
	"context"

	"organ-transport-service/internal/domain"
)

// Port: persistent cache for provider route estimates, keyed by coordinate
// pair. Cached values are raw provider metrics; vehicle-mode multipliers are
// applied after the cache so one entry serves every mode.
type EstimateCache interface {
	// Fetch a cached estimate. The second return reports a cache hit.
	Get(ctx context.Context, origin, destination domain.Coordinates) (RouteEstimate, bool, error)
	// Store an estimate for a coordinate pair.
	Put(ctx context.Context, origin, destination domain.Coordinates, est RouteEstimate) error
}

// Port: persistent cache mapping addresses to coordinates.
type GeocodeCache interface {
	// Fetch cached coordinates for the given addresses.
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	// Store address -> coordinate mappings.
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
