package dto

import (
	"time"

	"organ-transport-service/internal/domain"
)

type PlanTransportRequest struct {
	OrganID              string     `json:"organ_id"`
	OrganType            string     `json:"organ_type"`
	Pickup               string     `json:"pickup"`
	Delivery             string     `json:"delivery"`
	UrgencyScore         int        `json:"urgency_score"`
	HarvestTime          *time.Time `json:"harvest_time"`
	MaxTransportHours    int        `json:"max_transport_hours"`
	TemperatureRequiredC float64    `json:"temperature_required_c"`
	SpecialRequirements  []string   `json:"special_requirements"`
}

type LocationResponse struct {
	Name    string             `json:"name"`
	Address string             `json:"address,omitempty"`
	Coords  domain.Coordinates `json:"coords"`
	Kind    string             `json:"kind"`
	Contact string             `json:"contact,omitempty"`
}

type CheckpointResponse struct {
	Location       LocationResponse `json:"location"`
	RequiredChecks []string         `json:"required_checks"`
}

type RouteResponse struct {
	Pickup      LocationResponse     `json:"pickup"`
	Delivery    LocationResponse     `json:"delivery"`
	DistanceKm  float64              `json:"distance_km"`
	DurationMin int                  `json:"duration_min"`
	Checkpoints []CheckpointResponse `json:"checkpoints"`
}

type VehicleResponse struct {
	ID                    string  `json:"id"`
	Type                  string  `json:"type"`
	CurrentLocation       string  `json:"current_location"`
	Capacity              int     `json:"capacity"`
	SpeedKmh              float64 `json:"speed_kmh"`
	Available             bool    `json:"available"`
	TemperatureControlled bool    `json:"temperature_controlled"`
}

type ScheduleResponse struct {
	PickupTime        time.Time `json:"pickup_time"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
	MaxTransportHours int       `json:"max_transport_hours"`
	BufferMinutes     int       `json:"buffer_minutes"`
}

type MonitoringResponse struct {
	TemperatureTargetC float64  `json:"temperature_target_c"`
	GPSTracking        bool     `json:"gps_tracking"`
	RealTimeUpdates    bool     `json:"real_time_updates"`
	EmergencyContacts  []string `json:"emergency_contacts"`
}

type ComplianceResponse struct {
	DocumentationRequired bool     `json:"documentation_required"`
	ChainOfCustody        bool     `json:"chain_of_custody"`
	QualityChecks         []string `json:"quality_checks"`
}

type TransportPlanResponse struct {
	TransportID string             `json:"transport_id"`
	OrganID     string             `json:"organ_id"`
	OrganType   string             `json:"organ_type"`
	Route       RouteResponse      `json:"route"`
	Vehicle     VehicleResponse    `json:"vehicle"`
	Schedule    ScheduleResponse   `json:"schedule"`
	Monitoring  MonitoringResponse `json:"monitoring"`
	Compliance  ComplianceResponse `json:"compliance"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	StartedAt   *time.Time         `json:"started_at,omitempty"`
}

type ListTransportsResponse struct {
	Transports []TransportPlanResponse `json:"transports"`
}

func NewLocationResponse(l domain.Location) LocationResponse {
	return LocationResponse{
		Name:    l.Name,
		Address: l.Address,
		Coords:  l.Coords,
		Kind:    string(l.Kind),
		Contact: l.Contact,
	}
}

func NewVehicleResponse(v domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:                    v.ID,
		Type:                  string(v.Type),
		CurrentLocation:       v.CurrentLocation.Name,
		Capacity:              v.Capacity,
		SpeedKmh:              v.SpeedKmh,
		Available:             v.Available,
		TemperatureControlled: v.TemperatureControlled,
	}
}

func NewTransportPlanResponse(p domain.TransportPlan) TransportPlanResponse {
	checkpoints := make([]CheckpointResponse, 0, len(p.Route.Checkpoints))
	for _, cp := range p.Route.Checkpoints {
		checkpoints = append(checkpoints, CheckpointResponse{
			Location:       NewLocationResponse(cp.Location),
			RequiredChecks: cp.RequiredChecks,
		})
	}

	return TransportPlanResponse{
		TransportID: p.TransportID,
		OrganID:     p.OrganID,
		OrganType:   p.OrganType,
		Route: RouteResponse{
			Pickup:      NewLocationResponse(p.Route.Pickup),
			Delivery:    NewLocationResponse(p.Route.Delivery),
			DistanceKm:  p.Route.DistanceKm,
			DurationMin: p.Route.DurationMin,
			Checkpoints: checkpoints,
		},
		Vehicle: NewVehicleResponse(p.Vehicle),
		Schedule: ScheduleResponse{
			PickupTime:        p.Schedule.PickupTime,
			EstimatedDelivery: p.Schedule.EstimatedDelivery,
			MaxTransportHours: p.Schedule.MaxTransportHours,
			BufferMinutes:     p.Schedule.BufferMinutes,
		},
		Monitoring: MonitoringResponse{
			TemperatureTargetC: p.Monitoring.TemperatureTargetC,
			GPSTracking:        p.Monitoring.GPSTracking,
			RealTimeUpdates:    p.Monitoring.RealTimeUpdates,
			EmergencyContacts:  p.Monitoring.EmergencyContacts,
		},
		Compliance: ComplianceResponse{
			DocumentationRequired: p.Compliance.DocumentationRequired,
			ChainOfCustody:        p.Compliance.ChainOfCustody,
			QualityChecks:         p.Compliance.QualityChecks,
		},
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		StartedAt: p.StartedAt,
	}
}
