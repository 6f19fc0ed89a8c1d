package domain

import "time"

// TransportStatus is the lifecycle state of a transport plan. Transitions
// are driven by the external system (start, delay, complete); the engine
// only computes plans and derives monitoring values from status + timestamps.
type TransportStatus string

const (
	StatusPlanned    TransportStatus = "planned"
	StatusInProgress TransportStatus = "in_progress"
	StatusDelivered  TransportStatus = "delivered"
	StatusDelayed    TransportStatus = "delayed"
	StatusFailed     TransportStatus = "failed"
)

// DefaultTemperatureC is the storage temperature target applied when a
// request does not specify one.
const DefaultTemperatureC = 4.0

// DefaultMaxTransportHours is the viability ceiling applied when organ
// data does not carry an organ-type-specific one.
const DefaultMaxTransportHours = 8

// Represents a single organ transport request. Read-only input to the
// engine; never mutated internally.
type TransportRequest struct {
	OrganID              string
	OrganType            string
	PickupLocation       Location
	DeliveryLocation     Location
	HarvestTime          time.Time
	MaxTransportHours    int
	UrgencyScore         int
	TemperatureRequiredC float64
	SpecialRequirements  []string
}

// Route is the pickup-to-delivery leg of a transport plan together with
// the monitoring checkpoints selected along the way.
type Route struct {
	Pickup      Location
	Delivery    Location
	DistanceKm  float64
	DurationMin int
	Checkpoints []Checkpoint
}

// Checkpoint is a fixed waypoint used for progress and quality monitoring.
// It is not necessarily on the literal driving path.
type Checkpoint struct {
	Location       Location
	RequiredChecks []string
}

// Schedule holds the computed timing envelope of a plan.
type Schedule struct {
	PickupTime        time.Time
	EstimatedDelivery time.Time
	MaxTransportHours int
	BufferMinutes     int
}

// Monitoring holds the targets the in-flight monitor compares against.
type Monitoring struct {
	TemperatureTargetC float64
	GPSTracking        bool
	RealTimeUpdates    bool
	EmergencyContacts  []string
}

// Compliance is the documentation checklist attached to every plan.
type Compliance struct {
	DocumentationRequired bool
	ChainOfCustody        bool
	QualityChecks         []string
}

// TransportPlan is the complete plan for one shipment: route, vehicle,
// schedule, monitoring targets, and compliance checklist. Constructed once
// by the planner and treated as immutable afterwards; only Status and
// StartedAt change, through the plan store.
type TransportPlan struct {
	TransportID string
	OrganID     string
	OrganType   string
	Route       Route
	Vehicle     Vehicle
	Schedule    Schedule
	Monitoring  Monitoring
	Compliance  Compliance
	Status      TransportStatus
	CreatedAt   time.Time
	StartedAt   *time.Time
}
