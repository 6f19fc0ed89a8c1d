package services

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"organ-transport-service/internal/domain"
	"organ-transport-service/internal/metrics"
	"organ-transport-service/internal/platform/obs"
	"organ-transport-service/internal/registry"
	"organ-transport-service/internal/vrp"
)

const (
	maxRouteMinutes        = 720
	waitSlackMinutes       = 30
	urgencyWindowThreshold = 80
	urgentPickupWindowMin  = 60
	solverTimeBudget       = 30 * time.Second

	// Matrix rows are fetched concurrently; bound the in-flight lookups.
	matrixConcurrency = 5
)

// Optimizer assigns a batch of transport requests to fleet vehicles, jointly
// minimizing travel time. When the routing solver cannot place every
// location it falls back to per-request direct routes, so a well-formed
// non-empty batch always yields a solution.
type Optimizer struct {
	Estimator *Estimator
	Fleet     *registry.Fleet
}

func NewOptimizer(estimator *Estimator, fleet *registry.Fleet) *Optimizer {
	return &Optimizer{Estimator: estimator, Fleet: fleet}
}

// Optimize solves the multi-shipment routing problem for the batch.
// Every organ in the batch lands in exactly one route of the result.
func (o *Optimizer) Optimize(ctx context.Context, requests []domain.TransportRequest) (sol domain.RouteSolution, err error) {
	defer obs.Time(ctx, "optimize_routes")(&err)

	if len(requests) == 0 {
		return domain.RouteSolution{Routes: []domain.VehicleRoute{}}, nil
	}

	fleet := o.Fleet.All()
	if len(fleet) == 0 {
		return domain.RouteSolution{}, domain.ErrEmptyFleet
	}

	locations := dedupeLocations(requests)
	durations, distances := o.buildMatrix(ctx, locations)

	vehicles := len(fleet)
	if len(requests) < vehicles {
		vehicles = len(requests)
	}

	problem := vrp.Problem{
		Durations:        durations,
		VehicleCount:     vehicles,
		Depot:            0,
		MaxRouteMinutes:  maxRouteMinutes,
		WaitSlackMinutes: waitSlackMinutes,
		Windows:          requestWindows(requests, locations),
	}

	timer := prometheus.NewTimer(metrics.SolverDuration)
	assignment, solveErr := vrp.Solve(problem, solverTimeBudget)
	timer.ObserveDuration()

	if solveErr != nil {
		metrics.SolverRuns.WithLabelValues(string(domain.MethodFallbackDirect)).Inc()
		return o.fallbackDirect(ctx, requests, fleet), nil
	}

	metrics.SolverRuns.WithLabelValues(string(domain.MethodSolver)).Inc()
	return extractSolution(assignment, requests, fleet, locations, durations, distances), nil
}

// dedupeLocations collects the distinct pickup/delivery locations across the
// batch in first-seen order, using coordinate identity. Index 0 doubles as
// the shared depot.
func dedupeLocations(requests []domain.TransportRequest) []domain.Location {
	var out []domain.Location
	add := func(l domain.Location) {
		for _, seen := range out {
			if seen.SamePlace(l) {
				return
			}
		}
		out = append(out, l)
	}
	for _, r := range requests {
		add(r.PickupLocation)
		add(r.DeliveryLocation)
	}
	return out
}

func locationIndex(locations []domain.Location, l domain.Location) int {
	for i, cand := range locations {
		if cand.SamePlace(l) {
			return i
		}
	}
	return -1
}

// buildMatrix fills the pairwise duration (minutes) and distance (km)
// matrices. Rows are independent, so they are fetched concurrently; the
// estimator absorbs provider failures, so there is no error path.
func (o *Optimizer) buildMatrix(ctx context.Context, locations []domain.Location) ([][]int, [][]float64) {
	n := len(locations)
	durations := make([][]int, n)
	distances := make([][]float64, n)

	coords := make([]domain.Coordinates, n)
	for i, l := range locations {
		coords[i] = l.Coords
	}

	sem := make(chan struct{}, matrixConcurrency)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(row int) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			estimates := o.Estimator.EstimateRow(ctx, coords[row], coords)
			durations[row] = make([]int, n)
			distances[row] = make([]float64, n)
			for col, est := range estimates {
				if col == row {
					continue
				}
				durations[row][col] = est.DurationMin
				distances[row][col] = est.DistanceKm
			}
		}(i)
	}
	wg.Wait()

	return durations, distances
}

// requestWindows tightens arrival windows for urgent requests: pickup within
// an hour of route start, delivery within the viability window. Overlapping
// constraints on a shared node keep the tightest bound.
func requestWindows(requests []domain.TransportRequest, locations []domain.Location) map[int]vrp.Window {
	windows := make(map[int]vrp.Window)
	tighten := func(node, endMin int) {
		if node <= 0 {
			return
		}
		if w, ok := windows[node]; !ok || endMin < w.EndMin {
			windows[node] = vrp.Window{StartMin: 0, EndMin: endMin}
		}
	}

	for _, r := range requests {
		if r.UrgencyScore <= urgencyWindowThreshold {
			continue
		}
		maxHours := r.MaxTransportHours
		if maxHours <= 0 {
			maxHours = domain.DefaultMaxTransportHours
		}
		tighten(locationIndex(locations, r.PickupLocation), urgentPickupWindowMin)
		tighten(locationIndex(locations, r.DeliveryLocation), maxHours*60)
	}
	return windows
}

// extractSolution turns solver node sequences into vehicle routes and
// attributes each organ to the route visiting its pickup. Pickups at the
// depot node, which every route passes through, are attributed via their
// delivery node instead.
func extractSolution(assignment vrp.Solution, requests []domain.TransportRequest, fleet []domain.Vehicle, locations []domain.Location, durations [][]int, distances [][]float64) domain.RouteSolution {
	type keptRoute struct {
		nodes []int
		route domain.VehicleRoute
	}

	var kept []keptRoute
	for v, nodes := range assignment.Routes {
		if len(nodes) < 2 {
			continue
		}

		locs := make([]domain.Location, len(nodes))
		distanceKm := 0.0
		minutes := 0
		for i, node := range nodes {
			locs[i] = locations[node]
			if i > 0 {
				distanceKm += distances[nodes[i-1]][node]
				minutes += durations[nodes[i-1]][node]
			}
		}

		kept = append(kept, keptRoute{
			nodes: nodes,
			route: domain.VehicleRoute{
				Vehicle:     fleet[v],
				Locations:   locs,
				DistanceKm:  distanceKm,
				TimeMinutes: minutes,
			},
		})
	}

	// Degenerate batch where everything shares the depot location: one
	// route covering the single place.
	if len(kept) == 0 {
		kept = append(kept, keptRoute{
			nodes: []int{0},
			route: domain.VehicleRoute{Vehicle: fleet[0], Locations: []domain.Location{locations[0]}},
		})
	}

	findRoute := func(node int) int {
		for i, k := range kept {
			for _, n := range k.nodes {
				if n == node {
					return i
				}
			}
		}
		return 0
	}

	for _, r := range requests {
		pickup := locationIndex(locations, r.PickupLocation)
		target := 0
		switch {
		case pickup > 0:
			target = findRoute(pickup)
		default:
			if delivery := locationIndex(locations, r.DeliveryLocation); delivery > 0 {
				target = findRoute(delivery)
			}
		}
		kept[target].route.OrganIDs = append(kept[target].route.OrganIDs, r.OrganID)
	}

	sol := domain.RouteSolution{Method: domain.MethodSolver}
	for _, k := range kept {
		sol.Routes = append(sol.Routes, k.route)
		sol.TotalDistanceKm += k.route.DistanceKm
		sol.TotalTimeMinutes += k.route.TimeMinutes
	}
	return sol
}

// fallbackDirect assigns request i to vehicle i modulo the fleet size and
// chains each vehicle's requests into one direct pickup-delivery route.
// Spreading overflow requests across vehicles keeps every organ routed while
// holding the route count at min(fleet, batch) when the solver is out.
func (o *Optimizer) fallbackDirect(ctx context.Context, requests []domain.TransportRequest, fleet []domain.Vehicle) domain.RouteSolution {
	perVehicle := make([][]domain.TransportRequest, len(fleet))
	for i, r := range requests {
		v := i % len(fleet)
		perVehicle[v] = append(perVehicle[v], r)
	}

	sol := domain.RouteSolution{Method: domain.MethodFallbackDirect}
	for v, assigned := range perVehicle {
		if len(assigned) == 0 {
			continue
		}

		route := domain.VehicleRoute{Vehicle: fleet[v]}
		var prev *domain.Location
		for _, r := range assigned {
			if prev != nil && !prev.SamePlace(r.PickupLocation) {
				leg := o.Estimator.Estimate(ctx, prev.Coords, r.PickupLocation.Coords, fleet[v].Type)
				route.DistanceKm += leg.DistanceKm
				route.TimeMinutes += leg.DurationMin
			}

			leg := o.Estimator.Estimate(ctx, r.PickupLocation.Coords, r.DeliveryLocation.Coords, fleet[v].Type)
			route.DistanceKm += leg.DistanceKm
			route.TimeMinutes += leg.DurationMin

			route.Locations = append(route.Locations, r.PickupLocation, r.DeliveryLocation)
			route.OrganIDs = append(route.OrganIDs, r.OrganID)

			delivery := r.DeliveryLocation
			prev = &delivery
		}

		sol.Routes = append(sol.Routes, route)
		sol.TotalDistanceKm += route.DistanceKm
		sol.TotalTimeMinutes += route.TimeMinutes
	}
	return sol
}
