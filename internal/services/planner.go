package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/clockz"

	"organ-transport-service/internal/domain"
	"organ-transport-service/internal/platform/obs"
	"organ-transport-service/internal/registry"
)

const scheduleBufferMinutes = 30

// Checkpoints within this factor of the direct distance count as "roughly on
// the way". Cheap filter, not true path intersection.
const checkpointDetourFactor = 1.2

var checkpointChecks = []string{"temperature_check", "container_integrity", "custody_signature"}

var complianceChecks = []string{
	"temperature_log_review",
	"chain_of_custody_signatures",
	"container_seal_verification",
	"recipient_identity_confirmation",
}

// PlanTransportInput carries the organ data and facility names for a single
// shipment. Zero MaxTransportHours and TemperatureRequiredC take the domain
// defaults.
type PlanTransportInput struct {
	OrganID              string
	OrganType            string
	PickupName           string
	DeliveryName         string
	UrgencyScore         int
	HarvestTime          time.Time
	MaxTransportHours    int
	TemperatureRequiredC float64
	SpecialRequirements  []string
}

// Planner composes the estimator, registry and fleet into single-shipment
// transport plans. It performs no persistence; callers store the result.
type Planner struct {
	Estimator *Estimator
	Registry  *registry.Registry
	Fleet     *registry.Fleet
	Clock     clockz.Clock
}

func NewPlanner(estimator *Estimator, reg *registry.Registry, fleet *registry.Fleet, clock clockz.Clock) *Planner {
	return &Planner{Estimator: estimator, Registry: reg, Fleet: fleet, Clock: clock}
}

// PlanTransport resolves both facilities, picks a vehicle, estimates the
// route and assembles a complete plan in status planned.
func (p *Planner) PlanTransport(ctx context.Context, in PlanTransportInput) (plan domain.TransportPlan, err error) {
	defer obs.Time(ctx, "plan_transport")(&err)

	pickup, err := p.Registry.FindFacility(in.PickupName)
	if err != nil {
		return domain.TransportPlan{}, fmt.Errorf("plan transport: resolve pickup %q: %w", in.PickupName, err)
	}
	delivery, err := p.Registry.FindFacility(in.DeliveryName)
	if err != nil {
		return domain.TransportPlan{}, fmt.Errorf("plan transport: resolve delivery %q: %w", in.DeliveryName, err)
	}

	vehicle, err := SelectVehicle(p.Fleet.All(), pickup, in.UrgencyScore)
	if err != nil {
		return domain.TransportPlan{}, fmt.Errorf("plan transport: select vehicle: %w", err)
	}

	est := p.Estimator.Estimate(ctx, pickup.Coords, delivery.Coords, vehicle.Type)

	maxHours := in.MaxTransportHours
	if maxHours <= 0 {
		maxHours = domain.DefaultMaxTransportHours
	}
	targetTemp := in.TemperatureRequiredC
	if targetTemp == 0 {
		targetTemp = domain.DefaultTemperatureC
	}

	now := p.Clock.Now()

	plan = domain.TransportPlan{
		TransportID: uuid.NewString(),
		OrganID:     in.OrganID,
		OrganType:   in.OrganType,
		Route: domain.Route{
			Pickup:      pickup,
			Delivery:    delivery,
			DistanceKm:  est.DistanceKm,
			DurationMin: est.DurationMin,
			Checkpoints: p.routeCheckpoints(pickup, delivery),
		},
		Vehicle: vehicle,
		Schedule: domain.Schedule{
			PickupTime:        now,
			EstimatedDelivery: now.Add(time.Duration(est.DurationMin) * time.Minute),
			MaxTransportHours: maxHours,
			BufferMinutes:     scheduleBufferMinutes,
		},
		Monitoring: domain.Monitoring{
			TemperatureTargetC: targetTemp,
			GPSTracking:        true,
			RealTimeUpdates:    true,
			EmergencyContacts:  emergencyContacts(pickup, delivery),
		},
		Compliance: domain.Compliance{
			DocumentationRequired: true,
			ChainOfCustody:        true,
			QualityChecks:         qualityChecks(in.SpecialRequirements),
		},
		Status:    domain.StatusPlanned,
		CreatedAt: now,
	}
	return plan, nil
}

// routeCheckpoints returns every registered checkpoint whose detour from the
// direct pickup-delivery line stays within the detour factor.
func (p *Planner) routeCheckpoints(pickup, delivery domain.Location) []domain.Checkpoint {
	direct := domain.GeodesicKm(pickup.Coords, delivery.Coords)

	var out []domain.Checkpoint
	for _, cp := range p.Registry.Checkpoints() {
		detour := domain.GeodesicKm(pickup.Coords, cp.Coords) + domain.GeodesicKm(cp.Coords, delivery.Coords)
		if detour <= checkpointDetourFactor*direct {
			out = append(out, domain.Checkpoint{
				Location:       cp,
				RequiredChecks: checkpointChecks,
			})
		}
	}
	return out
}

// qualityChecks extends the standard checklist with any request-specific
// requirements.
func qualityChecks(special []string) []string {
	checks := make([]string, 0, len(complianceChecks)+len(special))
	checks = append(checks, complianceChecks...)
	return append(checks, special...)
}

func emergencyContacts(locations ...domain.Location) []string {
	var contacts []string
	for _, l := range locations {
		if l.Contact != "" {
			contacts = append(contacts, l.Contact)
		}
	}
	return contacts
}
