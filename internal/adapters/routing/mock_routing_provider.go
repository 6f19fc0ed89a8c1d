package routing

import (
	"context"
	"fmt"

	"organ-transport-service/internal/domain"
	"organ-transport-service/internal/ports"
)

type MockLeg struct {
	From, To domain.Coordinates
	Meters   int
	Seconds  int
}

// MockRoutingProvider is a deterministic in-memory provider for tests.
type MockRoutingProvider struct {
	legs      map[string]ports.RouteEstimate
	addresses map[string]domain.Coordinates
	// Err, when set, is returned by every call to simulate an unreachable
	// provider.
	Err error
}

func NewMockRoutingProvider(legs []MockLeg) *MockRoutingProvider {
	m := make(map[string]ports.RouteEstimate, len(legs))
	for _, l := range legs {
		m[legKey(l.From, l.To)] = ports.RouteEstimate{DistanceMeters: l.Meters, DurationSeconds: l.Seconds}
	}
	return &MockRoutingProvider{legs: m, addresses: map[string]domain.Coordinates{}}
}

func (p *MockRoutingProvider) AddAddress(address string, coords domain.Coordinates) {
	p.addresses[address] = coords
}

func (p *MockRoutingProvider) Geocode(_ context.Context, address string) (domain.Coordinates, error) {
	if p.Err != nil {
		return domain.Coordinates{}, p.Err
	}
	c, ok := p.addresses[address]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("missing address %q", address)
	}
	return c, nil
}

func (p *MockRoutingProvider) Directions(_ context.Context, origin, destination domain.Coordinates) (ports.RouteEstimate, error) {
	if p.Err != nil {
		return ports.RouteEstimate{}, p.Err
	}
	r, ok := p.legs[legKey(origin, destination)]
	if !ok {
		return ports.RouteEstimate{}, fmt.Errorf("missing leg %v -> %v", origin, destination)
	}
	return r, nil
}

func legKey(a, b domain.Coordinates) string {
	return fmt.Sprintf("%.6f,%.6f|%.6f,%.6f", a.Lat, a.Lng, b.Lat, b.Lng)
}
