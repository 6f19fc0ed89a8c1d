package services

import (
	"context"
	"errors"
	"log"
	"math"

	"organ-transport-service/internal/domain"
	"organ-transport-service/internal/metrics"
	"organ-transport-service/internal/ports"
)

// Per-mode adjustments applied to provider results. Helicopters fly direct
// paths, ambulances run traffic-priority lanes.
var modeDurationFactor = map[domain.VehicleType]float64{
	domain.VehicleHelicopter: 0.4,
	domain.VehicleAmbulance:  0.7,
}

var modeDistanceFactor = map[domain.VehicleType]float64{
	domain.VehicleHelicopter: 0.7,
}

// Average speeds used by the geodesic fallback, in km/h.
var fallbackSpeedKmh = map[domain.VehicleType]float64{
	domain.VehicleHelicopter: 200,
	domain.VehicleAmbulance:  60,
	domain.VehicleMedicalVan: 50,
}

const defaultFallbackSpeedKmh = 60

// TravelEstimate is a distance/duration pair for one leg, already adjusted
// for the vehicle mode.
type TravelEstimate struct {
	DistanceKm  float64
	DurationMin int
	Source      string // "provider" or "geodesic"
}

// Estimator computes travel estimates between coordinates. The primary path
// asks the routing provider; any provider failure degrades to a great-circle
// fallback, so Estimate never returns an error.
type Estimator struct {
	Provider ports.RoutingProvider
}

func NewEstimator(provider ports.RoutingProvider) *Estimator {
	return &Estimator{Provider: provider}
}

// Estimate returns the travel estimate from origin to destination for the
// given vehicle mode. An empty mode means unadjusted ground travel, used for
// vehicle-independent duration matrices.
func (e *Estimator) Estimate(ctx context.Context, origin, destination domain.Coordinates, mode domain.VehicleType) TravelEstimate {
	if e.Provider != nil {
		raw, err := e.Provider.Directions(ctx, origin, destination)
		if err == nil {
			metrics.EstimateRequests.WithLabelValues("provider").Inc()
			return adjustForMode(raw, mode)
		}
		if !errors.Is(err, ports.ErrProviderUnavailable) {
			log.Printf("level=warn msg=\"directions failed, using geodesic fallback\" error=%q", err)
		}
	}

	metrics.EstimateRequests.WithLabelValues("geodesic").Inc()
	return geodesicEstimate(origin, destination, mode)
}

// EstimateRow returns estimates from one origin to many destinations,
// unadjusted for mode. Batched matrix lookups are preferred when the
// provider supports them; otherwise each pair is estimated individually.
// Like Estimate, it never fails: unreachable pairs degrade to geodesic.
func (e *Estimator) EstimateRow(ctx context.Context, origin domain.Coordinates, destinations []domain.Coordinates) []TravelEstimate {
	if mp, ok := e.Provider.(ports.RouteMatrixProvider); ok {
		raw, err := mp.MatrixRow(ctx, origin, destinations)
		if err == nil && len(raw) == len(destinations) {
			metrics.EstimateRequests.WithLabelValues("provider").Add(float64(len(raw)))
			out := make([]TravelEstimate, len(raw))
			for i, r := range raw {
				out[i] = adjustForMode(r, "")
			}
			return out
		}
		if err != nil && !errors.Is(err, ports.ErrProviderUnavailable) {
			log.Printf("level=warn msg=\"matrix row failed, estimating pairs individually\" error=%q", err)
		}
	}

	out := make([]TravelEstimate, len(destinations))
	for i, d := range destinations {
		out[i] = e.Estimate(ctx, origin, d, "")
	}
	return out
}

func adjustForMode(raw ports.RouteEstimate, mode domain.VehicleType) TravelEstimate {
	distanceKm := float64(raw.DistanceMeters) / 1000
	durationMin := float64(raw.DurationSeconds) / 60

	if f, ok := modeDistanceFactor[mode]; ok {
		distanceKm *= f
	}
	if f, ok := modeDurationFactor[mode]; ok {
		durationMin *= f
	}

	return TravelEstimate{
		DistanceKm:  distanceKm,
		DurationMin: int(math.Round(durationMin)),
		Source:      "provider",
	}
}

func geodesicEstimate(origin, destination domain.Coordinates, mode domain.VehicleType) TravelEstimate {
	km := domain.GeodesicKm(origin, destination)

	speed, ok := fallbackSpeedKmh[mode]
	if !ok {
		speed = defaultFallbackSpeedKmh
	}

	return TravelEstimate{
		DistanceKm:  km,
		DurationMin: int(km / speed * 60),
		Source:      "geodesic",
	}
}
