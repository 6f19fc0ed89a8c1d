package services

import (
	"context"
	"errors"
	"sort"
	"testing"

	"organ-transport-service/internal/domain"
	"organ-transport-service/internal/registry"
)

func facility(name string, lat, lng float64) domain.Location {
	return domain.Location{Name: name, Coords: domain.Coordinates{Lat: lat, Lng: lng}, Kind: domain.KindFacility}
}

func ambulanceFleet(ids ...string) *registry.Fleet {
	var vehicles []domain.Vehicle
	for _, id := range ids {
		vehicles = append(vehicles, domain.Vehicle{
			ID:              id,
			Type:            domain.VehicleAmbulance,
			CurrentLocation: facility("Depot", 40.7128, -74.0060),
			SpeedKmh:        80,
			Available:       true,
		})
	}
	return registry.NewFleet(vehicles)
}

func solutionOrganIDs(t *testing.T, sol domain.RouteSolution) []string {
	t.Helper()
	var ids []string
	for _, r := range sol.Routes {
		ids = append(ids, r.OrganIDs...)
	}
	sort.Strings(ids)
	return ids
}

func TestOptimizeEmptyBatch(t *testing.T) {
	o := NewOptimizer(NewEstimator(nil), ambulanceFleet("AMB001"))

	sol, err := o.Optimize(context.Background(), nil)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if len(sol.Routes) != 0 || sol.TotalDistanceKm != 0 || sol.TotalTimeMinutes != 0 {
		t.Errorf("got %+v, want empty solution", sol)
	}
}

func TestOptimizeEmptyFleet(t *testing.T) {
	o := NewOptimizer(NewEstimator(nil), registry.NewFleet(nil))

	reqs := []domain.TransportRequest{{
		OrganID:          "ORG-001",
		PickupLocation:   facility("A", 40.7128, -74.0060),
		DeliveryLocation: facility("B", 40.7589, -73.9851),
	}}
	if _, err := o.Optimize(context.Background(), reqs); !errors.Is(err, domain.ErrEmptyFleet) {
		t.Fatalf("got err=%v, want ErrEmptyFleet", err)
	}
}

func TestOptimizeSolverConservesOrgans(t *testing.T) {
	o := NewOptimizer(NewEstimator(nil), ambulanceFleet("AMB001", "AMB002"))

	a := facility("City General", 40.7128, -74.0060)
	b := facility("Metro Medical", 40.7589, -73.9851)
	c := facility("Regional Trauma", 40.7505, -73.9934)
	d := facility("University Hospital", 40.7282, -73.9942)

	reqs := []domain.TransportRequest{
		{OrganID: "ORG-001", PickupLocation: a, DeliveryLocation: b},
		{OrganID: "ORG-002", PickupLocation: c, DeliveryLocation: d},
		{OrganID: "ORG-003", PickupLocation: b, DeliveryLocation: d},
	}

	sol, err := o.Optimize(context.Background(), reqs)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if sol.Method != domain.MethodSolver {
		t.Fatalf("method = %q, want solver", sol.Method)
	}
	if len(sol.Routes) > 2 {
		t.Errorf("got %d routes, want at most min(fleet, batch) = 2", len(sol.Routes))
	}

	got := solutionOrganIDs(t, sol)
	want := []string{"ORG-001", "ORG-002", "ORG-003"}
	if len(got) != len(want) {
		t.Fatalf("organ IDs %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("organ IDs %v, want %v", got, want)
		}
	}
}

func TestOptimizeUrgentPickupVisitedEarly(t *testing.T) {
	o := NewOptimizer(NewEstimator(nil), ambulanceFleet("AMB001"))

	// The depot-adjacent urgent pickup must be reached within an hour, so
	// the distant routine delivery cannot come first.
	a := facility("City General", 40.7128, -74.0060)
	b := facility("Shore Hospital", 40.2188, -74.0060) // ~55 min away
	c := facility("Metro Medical", 40.7589, -73.9851)  // ~5 min away
	d := facility("Uptown Transplant", 40.7700, -73.9800)

	reqs := []domain.TransportRequest{
		{OrganID: "ORG-001", PickupLocation: a, DeliveryLocation: b, UrgencyScore: 40},
		{OrganID: "ORG-002", PickupLocation: c, DeliveryLocation: d, UrgencyScore: 95},
	}

	sol, err := o.Optimize(context.Background(), reqs)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if sol.Method != domain.MethodSolver {
		t.Fatalf("method = %q, want solver", sol.Method)
	}

	route := sol.Routes[0]
	e := NewEstimator(nil)
	arrival := 0
	reached := false
	for i := 1; i < len(route.Locations); i++ {
		arrival += e.Estimate(context.Background(), route.Locations[i-1].Coords, route.Locations[i].Coords, "").DurationMin
		if route.Locations[i].SamePlace(c) {
			reached = true
			if arrival > 60 {
				t.Errorf("urgent pickup reached at %d min, want within 60", arrival)
			}
			break
		}
	}
	if !reached {
		t.Fatal("urgent pickup location missing from route")
	}
}

func TestOptimizeFallbackDirectChainsOverflow(t *testing.T) {
	o := NewOptimizer(NewEstimator(nil), ambulanceFleet("AMB001"))

	// Coast-to-coast legs blow the 720-minute route cap, forcing the
	// fallback path.
	east := facility("East Coast Hub", 40.7128, -74.0060)
	west := facility("West Coast Hub", 34.0522, -118.2437)

	reqs := []domain.TransportRequest{
		{OrganID: "ORG-001", PickupLocation: east, DeliveryLocation: west},
		{OrganID: "ORG-002", PickupLocation: east, DeliveryLocation: west},
		{OrganID: "ORG-003", PickupLocation: east, DeliveryLocation: west},
	}

	sol, err := o.Optimize(context.Background(), reqs)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if sol.Method != domain.MethodFallbackDirect {
		t.Fatalf("method = %q, want fallback_direct", sol.Method)
	}
	if len(sol.Routes) != 1 {
		t.Fatalf("got %d routes, want 1 (single vehicle)", len(sol.Routes))
	}
	if got := solutionOrganIDs(t, sol); len(got) != 3 {
		t.Errorf("organ IDs %v, want all three chained onto the one vehicle", got)
	}
	if sol.TotalTimeMinutes <= 0 || sol.TotalDistanceKm <= 0 {
		t.Errorf("totals = %.1f km / %d min, want positive", sol.TotalDistanceKm, sol.TotalTimeMinutes)
	}
}

func TestOptimizeFleetBoundUnderFallback(t *testing.T) {
	o := NewOptimizer(NewEstimator(nil), ambulanceFleet("AMB001", "AMB002"))

	east := facility("East Coast Hub", 40.7128, -74.0060)
	west := facility("West Coast Hub", 34.0522, -118.2437)

	reqs := []domain.TransportRequest{
		{OrganID: "ORG-001", PickupLocation: east, DeliveryLocation: west},
		{OrganID: "ORG-002", PickupLocation: west, DeliveryLocation: east},
		{OrganID: "ORG-003", PickupLocation: east, DeliveryLocation: west},
	}

	sol, err := o.Optimize(context.Background(), reqs)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if sol.Method != domain.MethodFallbackDirect {
		t.Fatalf("method = %q, want fallback_direct", sol.Method)
	}
	if len(sol.Routes) > 2 {
		t.Errorf("got %d routes, want at most fleet size 2", len(sol.Routes))
	}
	if got := solutionOrganIDs(t, sol); len(got) != 3 {
		t.Errorf("organ IDs %v, want all three", got)
	}
}
