package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"organ-transport-service/internal/domain"
)

// Seed is the YAML-loadable network definition: locations plus the
// vehicle fleet. Vehicles reference their starting location by name.
type Seed struct {
	Locations []seedLocation `yaml:"locations"`
	Vehicles  []seedVehicle  `yaml:"vehicles"`
}

type seedLocation struct {
	Name    string  `yaml:"name"`
	Address string  `yaml:"address"`
	Lat     float64 `yaml:"lat"`
	Lng     float64 `yaml:"lng"`
	Kind    string  `yaml:"kind"`
	Contact string  `yaml:"contact"`
}

type seedVehicle struct {
	ID                    string  `yaml:"id"`
	Type                  string  `yaml:"type"`
	Location              string  `yaml:"location"`
	Capacity              int     `yaml:"capacity"`
	SpeedKmh              float64 `yaml:"speed_kmh"`
	Available             bool    `yaml:"available"`
	TemperatureControlled bool    `yaml:"temperature_controlled"`
}

// LoadSeed parses a YAML seed file into locations and vehicles. Vehicle
// location names must resolve against the seeded locations.
func LoadSeed(path string) ([]domain.Location, []domain.Vehicle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load seed: read %q: %w", path, err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, nil, fmt.Errorf("load seed: parse %q: %w", path, err)
	}

	return buildNetwork(seed)
}

func buildNetwork(seed Seed) ([]domain.Location, []domain.Vehicle, error) {
	locations := make([]domain.Location, 0, len(seed.Locations))
	byName := make(map[string]domain.Location, len(seed.Locations))
	for _, sl := range seed.Locations {
		if sl.Name == "" {
			return nil, nil, fmt.Errorf("load seed: location with empty name")
		}

		kind := domain.LocationKind(sl.Kind)
		switch kind {
		case domain.KindFacility, domain.KindCheckpoint, domain.KindDepot:
		default:
			return nil, nil, fmt.Errorf("load seed: location %q has unknown kind %q", sl.Name, sl.Kind)
		}

		loc := domain.Location{
			Name:    sl.Name,
			Address: sl.Address,
			Coords:  domain.Coordinates{Lat: sl.Lat, Lng: sl.Lng},
			Kind:    kind,
			Contact: sl.Contact,
		}
		locations = append(locations, loc)
		byName[sl.Name] = loc
	}

	vehicles := make([]domain.Vehicle, 0, len(seed.Vehicles))
	for _, sv := range seed.Vehicles {
		loc, ok := byName[sv.Location]
		if !ok {
			return nil, nil, fmt.Errorf("load seed: vehicle %q references unknown location %q", sv.ID, sv.Location)
		}

		vehicles = append(vehicles, domain.Vehicle{
			ID:                    sv.ID,
			Type:                  domain.VehicleType(sv.Type),
			CurrentLocation:       loc,
			Capacity:              sv.Capacity,
			SpeedKmh:              sv.SpeedKmh,
			Available:             sv.Available,
			TemperatureControlled: sv.TemperatureControlled,
		})
	}

	return locations, vehicles, nil
}

// DefaultNetwork returns the compiled-in metro network used when no seed
// file is configured: five facilities, four checkpoints, five vehicles.
func DefaultNetwork() ([]domain.Location, []domain.Vehicle) {
	locations, vehicles, err := buildNetwork(defaultSeed)
	if err != nil {
		// defaultSeed is a compile-time constant set; a failure here is a bug.
		panic(err)
	}
	return locations, vehicles
}

var defaultSeed = Seed{
	Locations: []seedLocation{
		{Name: "City General Hospital", Address: "123 Medical Center Dr, Downtown, New York, NY", Lat: 40.7128, Lng: -74.0060, Kind: "facility", Contact: "+1-555-0123"},
		{Name: "Metro Medical Center", Address: "456 Health Plaza, Uptown, New York, NY", Lat: 40.7589, Lng: -73.9851, Kind: "facility", Contact: "+1-555-0456"},
		{Name: "Regional Trauma Center", Address: "789 Emergency Ave, Midtown, New York, NY", Lat: 40.7505, Lng: -73.9934, Kind: "facility", Contact: "+1-555-0789"},
		{Name: "University Hospital", Address: "321 Campus Blvd, University District, New York, NY", Lat: 40.7282, Lng: -73.9942, Kind: "facility", Contact: "+1-555-0321"},
		{Name: "Specialty Transplant Center", Address: "654 Organ Ave, Medical District, New York, NY", Lat: 40.7614, Lng: -73.9776, Kind: "facility", Contact: "+1-555-0654"},
		{Name: "Highway Junction A", Address: "Interstate 95 & Route 1, New York, NY", Lat: 40.7305, Lng: -74.0031, Kind: "checkpoint"},
		{Name: "Medical District Bridge", Address: "Health Sciences Bridge, New York, NY", Lat: 40.7421, Lng: -73.9897, Kind: "checkpoint"},
		{Name: "Airport Medical Hub", Address: "JFK International Airport, Queens, NY", Lat: 40.6413, Lng: -73.7781, Kind: "checkpoint"},
		{Name: "Emergency Relay Station", Address: "Central Emergency Services, New York, NY", Lat: 40.7831, Lng: -73.9712, Kind: "checkpoint"},
	},
	Vehicles: []seedVehicle{
		{ID: "MED001", Type: "medical_helicopter", Location: "City General Hospital", Capacity: 2, SpeedKmh: 200, Available: true, TemperatureControlled: true},
		{ID: "AMB001", Type: "ambulance", Location: "Metro Medical Center", Capacity: 4, SpeedKmh: 80, Available: true, TemperatureControlled: true},
		{ID: "AMB002", Type: "ambulance", Location: "Regional Trauma Center", Capacity: 4, SpeedKmh: 80, Available: true, TemperatureControlled: true},
		{ID: "VAN001", Type: "medical_van", Location: "University Hospital", Capacity: 6, SpeedKmh: 60, Available: true, TemperatureControlled: true},
		{ID: "MED002", Type: "medical_helicopter", Location: "Specialty Transplant Center", Capacity: 2, SpeedKmh: 200, Available: true, TemperatureControlled: true},
	},
}
