package ports

import (
	"context"
	"errors"

	"organ-transport-service/internal/domain"
)

// Raw travel metrics between two coordinate pairs as reported by the
// external routing provider, before any vehicle-mode adjustment.
type RouteEstimate struct {
	DistanceMeters  int
	DurationSeconds int
}

// ErrProviderUnavailable signals that the routing provider cannot serve
// requests (missing credentials, disabled). Callers treat it the same as
// any other provider error: switch to the geodesic fallback.
var ErrProviderUnavailable = errors.New("routing provider unavailable")

// Port: boundary to the external geocoding/directions service.
type RoutingProvider interface {
	// Resolve a free-text address to coordinates.
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
	// Return road distance and travel duration between two points.
	Directions(ctx context.Context, origin, destination domain.Coordinates) (RouteEstimate, error)
}

// Optional extension of RoutingProvider that supports batched lookups.
type RouteMatrixProvider interface {
	RoutingProvider
	// Return estimates from one origin to many destinations in one call.
	MatrixRow(ctx context.Context, origin domain.Coordinates, destinations []domain.Coordinates) ([]RouteEstimate, error)
}
