package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"organ-transport-service/internal/adapters/routing"
	"organ-transport-service/internal/domain"
)

var (
	cityGeneral  = domain.Coordinates{Lat: 40.7128, Lng: -74.0060}
	metroMedical = domain.Coordinates{Lat: 40.7589, Lng: -73.9851}
)

func TestEstimateProviderPathAppliesModeFactors(t *testing.T) {
	provider := routing.NewMockRoutingProvider([]routing.MockLeg{
		{From: cityGeneral, To: metroMedical, Meters: 10000, Seconds: 600},
	})
	e := NewEstimator(provider)

	cases := []struct {
		mode         domain.VehicleType
		wantKm       float64
		wantDuration int
	}{
		{domain.VehicleMedicalVan, 10, 10},
		{domain.VehicleAmbulance, 10, 7},
		{domain.VehicleHelicopter, 7, 4},
	}

	for _, c := range cases {
		got := e.Estimate(context.Background(), cityGeneral, metroMedical, c.mode)
		if got.Source != "provider" {
			t.Errorf("%s: source = %q, want provider", c.mode, got.Source)
		}
		if math.Abs(got.DistanceKm-c.wantKm) > 1e-9 {
			t.Errorf("%s: distance = %.3f km, want %.3f", c.mode, got.DistanceKm, c.wantKm)
		}
		if got.DurationMin != c.wantDuration {
			t.Errorf("%s: duration = %d min, want %d", c.mode, got.DurationMin, c.wantDuration)
		}
	}
}

func TestEstimateFallsBackToGeodesic(t *testing.T) {
	provider := routing.NewMockRoutingProvider(nil)
	provider.Err = errors.New("connection refused")
	e := NewEstimator(provider)

	got := e.Estimate(context.Background(), cityGeneral, metroMedical, domain.VehicleAmbulance)

	wantKm := domain.GeodesicKm(cityGeneral, metroMedical)
	if got.Source != "geodesic" {
		t.Fatalf("source = %q, want geodesic", got.Source)
	}
	if math.Abs(got.DistanceKm-wantKm) > 1e-9 {
		t.Errorf("distance = %.3f km, want geodesic %.3f", got.DistanceKm, wantKm)
	}
	// The two hospitals sit about 5.3 km apart; at 60 km/h that is 5 minutes
	// once truncated.
	if wantKm < 5.0 || wantKm > 5.6 {
		t.Fatalf("geodesic sanity check: %.3f km, want about 5.3", wantKm)
	}
	if got.DurationMin != int(wantKm/60*60) {
		t.Errorf("duration = %d min, want %d", got.DurationMin, int(wantKm))
	}
}

func TestEstimateFallbackSpeedTable(t *testing.T) {
	e := NewEstimator(nil)
	km := domain.GeodesicKm(cityGeneral, metroMedical)

	cases := []struct {
		mode  domain.VehicleType
		speed float64
	}{
		{domain.VehicleHelicopter, 200},
		{domain.VehicleAmbulance, 60},
		{domain.VehicleMedicalVan, 50},
		{"", 60},
	}
	for _, c := range cases {
		got := e.Estimate(context.Background(), cityGeneral, metroMedical, c.mode)
		if want := int(km / c.speed * 60); got.DurationMin != want {
			t.Errorf("%q: duration = %d min, want %d", c.mode, got.DurationMin, want)
		}
	}
}

func TestEstimateRowDegradesPerPair(t *testing.T) {
	provider := routing.NewMockRoutingProvider(nil)
	provider.Err = errors.New("timeout")
	e := NewEstimator(provider)

	dests := []domain.Coordinates{cityGeneral, metroMedical}
	row := e.EstimateRow(context.Background(), cityGeneral, dests)

	if len(row) != 2 {
		t.Fatalf("got %d estimates, want 2", len(row))
	}
	if row[0].DistanceKm != 0 {
		t.Errorf("self leg distance = %.3f, want 0", row[0].DistanceKm)
	}
	if row[1].Source != "geodesic" {
		t.Errorf("source = %q, want geodesic", row[1].Source)
	}
}
