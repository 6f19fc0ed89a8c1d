package registry

import (
	"context"
	"fmt"
	"log"
	"strings"

	"organ-transport-service/internal/domain"
	"organ-transport-service/internal/ports"
)

// Registry is the read-only set of named geographic points (facilities,
// checkpoints, depots) the engine plans against. Locations are immutable
// once loaded.
type Registry struct {
	locations []domain.Location
}

func New(locations []domain.Location) *Registry {
	return &Registry{locations: locations}
}

// All returns every registered location, in load order.
func (r *Registry) All() []domain.Location {
	out := make([]domain.Location, len(r.locations))
	copy(out, r.locations)
	return out
}

// Facilities returns locations organs are picked up from or delivered to.
func (r *Registry) Facilities() []domain.Location {
	return r.byKind(domain.KindFacility)
}

// Checkpoints returns the fixed monitoring waypoints.
func (r *Registry) Checkpoints() []domain.Location {
	return r.byKind(domain.KindCheckpoint)
}

func (r *Registry) byKind(kind domain.LocationKind) []domain.Location {
	out := make([]domain.Location, 0, len(r.locations))
	for _, l := range r.locations {
		if l.Kind == kind {
			out = append(out, l)
		}
	}
	return out
}

// FindFacility resolves a facility by case-insensitive substring match
// against registered names. The first match in load order wins.
func (r *Registry) FindFacility(name string) (domain.Location, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return domain.Location{}, fmt.Errorf("find facility: %w", domain.ErrLocationNotFound)
	}

	for _, l := range r.locations {
		if l.Kind != domain.KindFacility {
			continue
		}
		if strings.Contains(strings.ToLower(l.Name), needle) {
			return l, nil
		}
	}

	return domain.Location{}, fmt.Errorf("find facility %q: %w", name, domain.ErrLocationNotFound)
}

// fallbackCoords anchors locations that cannot be geocoded so planning
// still produces usable output.
var fallbackCoords = domain.Coordinates{Lat: 40.7128, Lng: -74.0060}

// ResolveCoordinates fills in coordinates for locations that were seeded
// with an address only. Cached lookups are preferred; provider failures
// degrade to a logged warning and the fallback anchor, never an error.
func ResolveCoordinates(
	ctx context.Context,
	locations []domain.Location,
	provider ports.RoutingProvider,
	cache ports.GeocodeCache,
) []domain.Location {
	pending := make([]string, 0)
	for _, l := range locations {
		if l.Coords == (domain.Coordinates{}) && l.Address != "" {
			pending = append(pending, l.Address)
		}
	}
	if len(pending) == 0 {
		return locations
	}

	cached := map[string]domain.Coordinates{}
	if cache != nil {
		var err error
		cached, err = cache.GetMany(ctx, pending)
		if err != nil {
			log.Printf("geocode cache read failed: %v", err)
			cached = map[string]domain.Coordinates{}
		}
	}

	fresh := map[string]domain.Coordinates{}
	out := make([]domain.Location, len(locations))
	for i, l := range locations {
		out[i] = l
		if l.Coords != (domain.Coordinates{}) || l.Address == "" {
			continue
		}

		if c, ok := cached[l.Address]; ok {
			out[i].Coords = c
			continue
		}

		if provider == nil {
			log.Printf("no routing provider, using fallback coordinates for %q", l.Name)
			out[i].Coords = fallbackCoords
			continue
		}

		c, err := provider.Geocode(ctx, l.Address)
		if err != nil {
			log.Printf("geocode failed for %q, using fallback coordinates: %v", l.Name, err)
			out[i].Coords = fallbackCoords
			continue
		}
		out[i].Coords = c
		fresh[l.Address] = c
	}

	if cache != nil && len(fresh) > 0 {
		if err := cache.PutMany(ctx, fresh); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return out
}
