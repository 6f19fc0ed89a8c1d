package services

import (
	"time"

	"github.com/zoobzio/clockz"

	"organ-transport-service/internal/domain"
)

// Progress tops out below 100 while in transit; only an explicit delivery
// event reports 100, which keeps clock drift from signaling early arrival.
const progressCapPercent = 95

// TrackingView is the monitor's snapshot of one transport. Location and
// temperature are derived estimates for display until live telemetry is
// attached.
type TrackingView struct {
	TransportID         string                 `json:"transport_id"`
	Status              domain.TransportStatus `json:"status"`
	ProgressPercent     int                    `json:"progress_percent"`
	EstimatedArrival    time.Time              `json:"estimated_arrival"`
	CurrentLocation     domain.Coordinates     `json:"current_location"`
	CurrentTemperatureC float64                `json:"current_temperature_c"`
	Alerts              []string               `json:"alerts"`
}

// Monitor derives live-looking tracking state from a plan's status and
// timestamps. It owns no scheduler; status transitions come from outside.
type Monitor struct {
	Clock clockz.Clock
}

func NewMonitor(clock clockz.Clock) *Monitor {
	return &Monitor{Clock: clock}
}

// Track computes progress, position and arrival estimates for a plan.
// Alerts are caller-supplied conditions and pass through unchanged.
func (m *Monitor) Track(plan domain.TransportPlan, alerts []string) TrackingView {
	started := plan.CreatedAt
	if plan.StartedAt != nil {
		started = *plan.StartedAt
	}
	eta := started.Add(time.Duration(plan.Route.DurationMin) * time.Minute)

	progress := 0
	switch plan.Status {
	case domain.StatusPlanned:
		progress = 0
	case domain.StatusDelivered:
		progress = 100
	default:
		progress = elapsedProgress(m.Clock.Now(), started, plan.Route.DurationMin)
	}

	if alerts == nil {
		alerts = []string{}
	}

	return TrackingView{
		TransportID:         plan.TransportID,
		Status:              plan.Status,
		ProgressPercent:     progress,
		EstimatedArrival:    eta,
		CurrentLocation:     interpolatePosition(plan.Route, progress),
		CurrentTemperatureC: plan.Monitoring.TemperatureTargetC,
		Alerts:              alerts,
	}
}

func elapsedProgress(now, started time.Time, durationMin int) int {
	if durationMin <= 0 {
		return progressCapPercent
	}
	elapsed := now.Sub(started).Minutes()
	if elapsed <= 0 {
		return 0
	}

	progress := int(elapsed / float64(durationMin) * 100)
	if progress > progressCapPercent {
		return progressCapPercent
	}
	return progress
}

// interpolatePosition places the transport along the straight pickup to
// delivery line. Display-only until a GPS feed replaces it.
func interpolatePosition(route domain.Route, progress int) domain.Coordinates {
	f := float64(progress) / 100
	return domain.Coordinates{
		Lat: route.Pickup.Coords.Lat + (route.Delivery.Coords.Lat-route.Pickup.Coords.Lat)*f,
		Lng: route.Pickup.Coords.Lng + (route.Delivery.Coords.Lng-route.Pickup.Coords.Lng)*f,
	}
}
