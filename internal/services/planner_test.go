package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zoobzio/clockz"

	"organ-transport-service/internal/domain"
	"organ-transport-service/internal/registry"
)

func testNetwork() (*registry.Registry, *registry.Fleet) {
	locations := []domain.Location{
		{Name: "City General Hospital", Coords: cityGeneral, Kind: domain.KindFacility, Contact: "+1-212-555-0100"},
		{Name: "Metro Medical Center", Coords: metroMedical, Kind: domain.KindFacility, Contact: "+1-212-555-0200"},
		// Midway between the two hospitals, well inside the detour bound.
		{Name: "Medical District Bridge", Coords: domain.Coordinates{Lat: 40.7360, Lng: -73.9955}, Kind: domain.KindCheckpoint},
		// Far off the corridor.
		{Name: "Airport Medical Hub", Coords: domain.Coordinates{Lat: 40.6413, Lng: -73.7781}, Kind: domain.KindCheckpoint},
	}
	vehicles := []domain.Vehicle{
		{ID: "AMB001", Type: domain.VehicleAmbulance, CurrentLocation: locations[0], SpeedKmh: 80, Available: true},
	}
	return registry.New(locations), registry.NewFleet(vehicles)
}

func TestPlanTransportAssemblesPlan(t *testing.T) {
	reg, fleet := testNetwork()
	clock := clockz.NewFakeClock()
	planner := NewPlanner(NewEstimator(nil), reg, fleet, clock)

	plan, err := planner.PlanTransport(context.Background(), PlanTransportInput{
		OrganID:      "ORG-001",
		OrganType:    "heart",
		PickupName:   "city general",
		DeliveryName: "METRO",
		UrgencyScore: 70,
	})
	if err != nil {
		t.Fatalf("PlanTransport: %v", err)
	}

	if plan.TransportID == "" {
		t.Error("transport ID is empty")
	}
	if plan.Status != domain.StatusPlanned {
		t.Errorf("status = %q, want planned", plan.Status)
	}
	if plan.Route.Pickup.Name != "City General Hospital" {
		t.Errorf("pickup = %q, substring match failed", plan.Route.Pickup.Name)
	}
	if plan.Route.Delivery.Name != "Metro Medical Center" {
		t.Errorf("delivery = %q, substring match failed", plan.Route.Delivery.Name)
	}
	if plan.Vehicle.ID != "AMB001" {
		t.Errorf("vehicle = %q, want AMB001", plan.Vehicle.ID)
	}

	now := clock.Now()
	if !plan.Schedule.PickupTime.Equal(now) {
		t.Errorf("pickupTime = %v, want clock now %v", plan.Schedule.PickupTime, now)
	}
	wantDelivery := now.Add(time.Duration(plan.Route.DurationMin) * time.Minute)
	if !plan.Schedule.EstimatedDelivery.Equal(wantDelivery) {
		t.Errorf("estimatedDelivery = %v, want %v", plan.Schedule.EstimatedDelivery, wantDelivery)
	}
	if plan.Schedule.BufferMinutes != 30 {
		t.Errorf("bufferMinutes = %d, want 30", plan.Schedule.BufferMinutes)
	}
	if plan.Schedule.MaxTransportHours != domain.DefaultMaxTransportHours {
		t.Errorf("maxTransportHours = %d, want default %d", plan.Schedule.MaxTransportHours, domain.DefaultMaxTransportHours)
	}
	if plan.Monitoring.TemperatureTargetC != domain.DefaultTemperatureC {
		t.Errorf("temperature target = %.1f, want default %.1f", plan.Monitoring.TemperatureTargetC, domain.DefaultTemperatureC)
	}
	if len(plan.Monitoring.EmergencyContacts) != 2 {
		t.Errorf("got %d emergency contacts, want both facility contacts", len(plan.Monitoring.EmergencyContacts))
	}
}

func TestPlanTransportCheckpointFilter(t *testing.T) {
	reg, fleet := testNetwork()
	planner := NewPlanner(NewEstimator(nil), reg, fleet, clockz.NewFakeClock())

	plan, err := planner.PlanTransport(context.Background(), PlanTransportInput{
		OrganID:      "ORG-002",
		OrganType:    "kidney",
		PickupName:   "City General",
		DeliveryName: "Metro Medical",
	})
	if err != nil {
		t.Fatalf("PlanTransport: %v", err)
	}

	if len(plan.Route.Checkpoints) != 1 {
		t.Fatalf("got %d checkpoints, want 1 (only the on-corridor one)", len(plan.Route.Checkpoints))
	}
	if got := plan.Route.Checkpoints[0].Location.Name; got != "Medical District Bridge" {
		t.Errorf("checkpoint = %q, want Medical District Bridge", got)
	}
	if len(plan.Route.Checkpoints[0].RequiredChecks) == 0 {
		t.Error("checkpoint has no required checks")
	}
}

func TestPlanTransportUnknownFacility(t *testing.T) {
	reg, fleet := testNetwork()
	planner := NewPlanner(NewEstimator(nil), reg, fleet, clockz.NewFakeClock())

	_, err := planner.PlanTransport(context.Background(), PlanTransportInput{
		OrganID:      "ORG-003",
		OrganType:    "liver",
		PickupName:   "Nonexistent Clinic",
		DeliveryName: "Metro Medical",
	})
	if !errors.Is(err, domain.ErrLocationNotFound) {
		t.Fatalf("got err=%v, want ErrLocationNotFound", err)
	}
}

func TestPlanTransportHonorsOrganOverrides(t *testing.T) {
	reg, fleet := testNetwork()
	planner := NewPlanner(NewEstimator(nil), reg, fleet, clockz.NewFakeClock())

	plan, err := planner.PlanTransport(context.Background(), PlanTransportInput{
		OrganID:              "ORG-004",
		OrganType:            "heart",
		PickupName:           "City General",
		DeliveryName:         "Metro Medical",
		MaxTransportHours:    4,
		TemperatureRequiredC: 6.5,
	})
	if err != nil {
		t.Fatalf("PlanTransport: %v", err)
	}
	if plan.Schedule.MaxTransportHours != 4 {
		t.Errorf("maxTransportHours = %d, want 4", plan.Schedule.MaxTransportHours)
	}
	if plan.Monitoring.TemperatureTargetC != 6.5 {
		t.Errorf("temperature target = %.1f, want 6.5", plan.Monitoring.TemperatureTargetC)
	}
}
