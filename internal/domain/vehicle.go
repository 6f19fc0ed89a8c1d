package domain

// VehicleType classifies fleet vehicles. The estimator and selector key
// operational constants (speeds, duration multipliers, bonuses) on it.
type VehicleType string

const (
	VehicleAmbulance  VehicleType = "ambulance"
	VehicleMedicalVan VehicleType = "medical_van"
	VehicleHelicopter VehicleType = "medical_helicopter"
)

// Represents a transport vehicle in the fleet.
// Availability may be toggled externally between optimization runs; the
// engine reads it but never mutates it (reservation is owned by the
// external fleet system).
type Vehicle struct {
	ID                    string
	Type                  VehicleType
	CurrentLocation       Location
	Capacity              int
	SpeedKmh              float64
	Available             bool
	TemperatureControlled bool
}
