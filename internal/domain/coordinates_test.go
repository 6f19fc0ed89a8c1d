package domain

import (
	"math"
	"testing"
)

func TestGeodesicKm(t *testing.T) {
	newYork := Coordinates{Lat: 40.7128, Lng: -74.0060}
	losAngeles := Coordinates{Lat: 34.0522, Lng: -118.2437}

	got := GeodesicKm(newYork, losAngeles)

	// great-circle NYC -> LA is roughly 3936 km
	if math.Abs(got-3936) > 10 {
		t.Errorf("GeodesicKm = %.1f, want ~3936", got)
	}

	if d := GeodesicKm(newYork, newYork); d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}
}

func TestSamePlace(t *testing.T) {
	a := Location{Name: "City General", Coords: Coordinates{Lat: 40.7128, Lng: -74.0060}}
	b := Location{Name: "City General Hospital", Coords: Coordinates{Lat: 40.7128, Lng: -74.0060}}
	c := Location{Name: "City General", Coords: Coordinates{Lat: 40.7129, Lng: -74.0060}}

	if !a.SamePlace(b) {
		t.Error("locations with identical coordinates should be the same place")
	}
	if a.SamePlace(c) {
		t.Error("locations with different coordinates should not be the same place")
	}
}
