package registry

import (
	"fmt"
	"sync"

	"organ-transport-service/internal/domain"
)

// Fleet is the mutable-but-externally-managed vehicle set. The engine
// reads and scores vehicles within one optimization call; availability is
// toggled by the external fleet system between runs. No reservation side
// effects happen here.
type Fleet struct {
	mu       sync.RWMutex
	vehicles []domain.Vehicle
}

func NewFleet(vehicles []domain.Vehicle) *Fleet {
	vs := make([]domain.Vehicle, len(vehicles))
	copy(vs, vehicles)
	return &Fleet{vehicles: vs}
}

// All returns a snapshot of the fleet in registry order.
func (f *Fleet) All() []domain.Vehicle {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]domain.Vehicle, len(f.vehicles))
	copy(out, f.vehicles)
	return out
}

// Available returns the currently available vehicles in registry order.
func (f *Fleet) Available() []domain.Vehicle {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]domain.Vehicle, 0, len(f.vehicles))
	for _, v := range f.vehicles {
		if v.Available {
			out = append(out, v)
		}
	}
	return out
}

// Size returns the total fleet size, available or not.
func (f *Fleet) Size() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.vehicles)
}

// SetAvailable toggles a vehicle's availability flag.
func (f *Fleet) SetAvailable(vehicleID string, available bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.vehicles {
		if f.vehicles[i].ID == vehicleID {
			f.vehicles[i].Available = available
			return nil
		}
	}
	return fmt.Errorf("set available: vehicle %q: %w", vehicleID, domain.ErrVehicleNotFound)
}
