package services

import (
	"organ-transport-service/internal/domain"
)

// SelectVehicle picks the best available vehicle for a pickup. Scoring favors
// closeness to the pickup point, fast vehicle classes on urgent requests, and
// higher nominal speed. Ties keep the first-seen vehicle, so results are
// deterministic for a fixed fleet order.
//
// When no vehicle is available the first fleet entry is returned anyway: the
// engine always produces a plan and leaves "truly no vehicle" handling to the
// dispatch system that owns fleet state.
func SelectVehicle(fleet []domain.Vehicle, pickup domain.Location, urgencyScore int) (domain.Vehicle, error) {
	if len(fleet) == 0 {
		return domain.Vehicle{}, domain.ErrEmptyFleet
	}

	best := -1
	bestScore := 0.0
	for i, v := range fleet {
		if !v.Available {
			continue
		}

		score := vehicleScore(v, pickup, urgencyScore)
		if best < 0 || score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best < 0 {
		return fleet[0], nil
	}
	return fleet[best], nil
}

func vehicleScore(v domain.Vehicle, pickup domain.Location, urgencyScore int) float64 {
	km := domain.GeodesicKm(v.CurrentLocation.Coords, pickup.Coords)

	score := 100 - km
	if score < 0 {
		score = 0
	}

	if urgencyScore > 90 && v.Type == domain.VehicleHelicopter {
		score += 50
	}
	if v.Type == domain.VehicleAmbulance {
		score += 30
	}

	return score + v.SpeedKmh/10
}
