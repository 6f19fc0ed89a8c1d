package routing

import (
	"context"

	"organ-transport-service/internal/domain"
	"organ-transport-service/internal/ports"
)

// NullProvider is the RoutingProvider selected when no provider credentials
// are configured. Every call reports unavailability, which downstream
// estimators translate into the geodesic fallback. Selecting it explicitly
// at construction time keeps the degraded mode a first-class configuration
// instead of a scattered nil check.
type NullProvider struct{}

func NewNullProvider() *NullProvider { return &NullProvider{} }

func (*NullProvider) Geocode(context.Context, string) (domain.Coordinates, error) {
	return domain.Coordinates{}, ports.ErrProviderUnavailable
}

func (*NullProvider) Directions(context.Context, domain.Coordinates, domain.Coordinates) (ports.RouteEstimate, error) {
	return ports.RouteEstimate{}, ports.ErrProviderUnavailable
}
