package registry

import (
	"context"
	"errors"
	"testing"

	"organ-transport-service/internal/adapters/routing"
	"organ-transport-service/internal/domain"
)

func TestFindFacilitySubstringMatch(t *testing.T) {
	locations, _ := DefaultNetwork()
	reg := New(locations)

	cases := []struct {
		query string
		want  string
	}{
		{"City General Hospital", "City General Hospital"},
		{"city general", "City General Hospital"},
		{"METRO", "Metro Medical Center"},
		{"transplant", "Specialty Transplant Center"},
	}
	for _, c := range cases {
		got, err := reg.FindFacility(c.query)
		if err != nil {
			t.Errorf("FindFacility(%q): %v", c.query, err)
			continue
		}
		if got.Name != c.want {
			t.Errorf("FindFacility(%q) = %q, want %q", c.query, got.Name, c.want)
		}
	}
}

func TestFindFacilityUnknown(t *testing.T) {
	locations, _ := DefaultNetwork()
	reg := New(locations)

	if _, err := reg.FindFacility("Nonexistent Clinic"); !errors.Is(err, domain.ErrLocationNotFound) {
		t.Fatalf("got err=%v, want ErrLocationNotFound", err)
	}
}

func TestFindFacilityIgnoresCheckpoints(t *testing.T) {
	locations, _ := DefaultNetwork()
	reg := New(locations)

	// "Medical District Bridge" is a checkpoint, not a pickup/delivery site.
	if _, err := reg.FindFacility("bridge"); !errors.Is(err, domain.ErrLocationNotFound) {
		t.Fatalf("got err=%v, want ErrLocationNotFound for checkpoint name", err)
	}
}

func TestKindFilters(t *testing.T) {
	locations, _ := DefaultNetwork()
	reg := New(locations)

	if got := len(reg.Facilities()); got != 5 {
		t.Errorf("got %d facilities, want 5", got)
	}
	if got := len(reg.Checkpoints()); got != 4 {
		t.Errorf("got %d checkpoints, want 4", got)
	}
}

func TestResolveCoordinatesGeocodesAddressOnlyEntries(t *testing.T) {
	provider := routing.NewMockRoutingProvider(nil)
	provider.AddAddress("456 Health Plaza", domain.Coordinates{Lat: 40.7589, Lng: -73.9851})

	locations := []domain.Location{
		{Name: "Already Placed", Coords: domain.Coordinates{Lat: 40.7128, Lng: -74.0060}, Kind: domain.KindFacility},
		{Name: "Needs Geocoding", Address: "456 Health Plaza", Kind: domain.KindFacility},
	}

	resolved := ResolveCoordinates(context.Background(), locations, provider, nil)

	if resolved[0].Coords != locations[0].Coords {
		t.Errorf("resolved[0] coords changed: %+v", resolved[0].Coords)
	}
	want := domain.Coordinates{Lat: 40.7589, Lng: -73.9851}
	if resolved[1].Coords != want {
		t.Errorf("resolved[1] coords = %+v, want %+v", resolved[1].Coords, want)
	}
}

func TestResolveCoordinatesFallsBackOnProviderFailure(t *testing.T) {
	provider := routing.NewMockRoutingProvider(nil)
	provider.Err = errors.New("provider down")

	locations := []domain.Location{
		{Name: "Needs Geocoding", Address: "456 Health Plaza", Kind: domain.KindFacility},
	}

	resolved := ResolveCoordinates(context.Background(), locations, provider, nil)
	if resolved[0].Coords == (domain.Coordinates{}) {
		t.Fatal("coords left empty, want fallback anchor")
	}
}
