package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/zoobzio/clockz"

	"organ-transport-service/internal/adapters/repositories"
	"organ-transport-service/internal/api/dto"
	"organ-transport-service/internal/registry"
	"organ-transport-service/internal/services"
)

func testServer(t *testing.T) (*httptest.Server, *clockz.FakeClock) {
	t.Helper()

	locations, vehicles := registry.DefaultNetwork()
	reg := registry.New(locations)
	fleet := registry.NewFleet(vehicles)
	clock := clockz.NewFakeClock()
	estimator := services.NewEstimator(nil)

	srv := httptest.NewServer(NewRouter(Deps{
		Planner:   services.NewPlanner(estimator, reg, fleet, clock),
		Optimizer: services.NewOptimizer(estimator, fleet),
		Monitor:   services.NewMonitor(clock),
		Store:     repositories.NewMemoryPlanStore(),
		Registry:  reg,
		Fleet:     fleet,
		Clock:     clock,
	}))
	t.Cleanup(srv.Close)
	return srv, clock
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	res, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return res
}

func decodeBody(t *testing.T, res *http.Response, v any) {
	t.Helper()
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestTransportLifecycle(t *testing.T) {
	srv, clock := testServer(t)

	res := postJSON(t, srv.URL+"/plans", `{
		"organ_id": "ORG-001",
		"organ_type": "heart",
		"pickup": "city general",
		"delivery": "metro medical",
		"urgency_score": 95
	}`)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("POST /plans status = %d, want 201", res.StatusCode)
	}
	var plan dto.TransportPlanResponse
	decodeBody(t, res, &plan)

	if plan.TransportID == "" || plan.Status != "planned" {
		t.Fatalf("plan = %+v, want planned with an id", plan)
	}
	if plan.Vehicle.Type != "medical_helicopter" {
		t.Errorf("vehicle type = %q, want helicopter for urgency 95", plan.Vehicle.Type)
	}

	res = postJSON(t, srv.URL+"/transports/"+plan.TransportID+"/start", "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("start status = %d, want 200", res.StatusCode)
	}
	var started dto.TransportPlanResponse
	decodeBody(t, res, &started)
	if started.Status != "in_progress" || started.StartedAt == nil {
		t.Fatalf("after start: status=%q startedAt=%v", started.Status, started.StartedAt)
	}

	clock.Advance(time.Duration(plan.Route.DurationMin) * 10 * time.Minute)

	res, err := http.Get(srv.URL + "/transports/" + plan.TransportID + "/track")
	if err != nil {
		t.Fatalf("GET track: %v", err)
	}
	var view services.TrackingView
	decodeBody(t, res, &view)
	if view.ProgressPercent != 95 {
		t.Errorf("progress = %d, want cap 95 while in transit", view.ProgressPercent)
	}

	res = postJSON(t, srv.URL+"/transports/"+plan.TransportID+"/complete", "")
	var completed dto.TransportPlanResponse
	decodeBody(t, res, &completed)
	if completed.Status != "delivered" {
		t.Fatalf("after complete: status = %q, want delivered", completed.Status)
	}

	res, err = http.Get(srv.URL + "/transports/" + plan.TransportID + "/report")
	if err != nil {
		t.Fatalf("GET report: %v", err)
	}
	var report services.TransportReport
	decodeBody(t, res, &report)
	if report.EfficiencyScore <= 0 || len(report.Recommendations) == 0 {
		t.Errorf("report = %+v, want scored with recommendations", report)
	}
}

func TestPlanUnknownFacility(t *testing.T) {
	srv, _ := testServer(t)

	res := postJSON(t, srv.URL+"/plans", `{
		"organ_id": "ORG-002",
		"organ_type": "kidney",
		"pickup": "nowhere clinic",
		"delivery": "metro medical"
	}`)
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for unknown facility", res.StatusCode)
	}
}

func TestTrackUnknownTransport(t *testing.T) {
	srv, _ := testServer(t)

	res, err := http.Get(srv.URL + "/transports/no-such-id/track")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.StatusCode)
	}
}

func TestOptimizeEndpoint(t *testing.T) {
	srv, _ := testServer(t)

	res := postJSON(t, srv.URL+"/optimize", `{
		"requests": [
			{"organ_id": "ORG-001", "organ_type": "heart", "pickup": "city general", "delivery": "metro medical", "urgency_score": 90},
			{"organ_id": "ORG-002", "organ_type": "kidney", "pickup": "regional trauma", "delivery": "university", "urgency_score": 40}
		]
	}`)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("POST /optimize status = %d, want 200", res.StatusCode)
	}
	var sol dto.RouteSolutionResponse
	decodeBody(t, res, &sol)

	organs := 0
	for _, r := range sol.Routes {
		organs += len(r.OrganIDs)
	}
	if organs != 2 {
		t.Errorf("got %d routed organs, want 2", organs)
	}
	if sol.Method == "" {
		t.Error("method missing from solution")
	}
}

func TestNetworkAndHealthEndpoints(t *testing.T) {
	srv, _ := testServer(t)

	res, err := http.Get(srv.URL + "/locations")
	if err != nil {
		t.Fatal(err)
	}
	var locs struct {
		Locations []dto.LocationResponse `json:"locations"`
	}
	decodeBody(t, res, &locs)
	if len(locs.Locations) != 9 {
		t.Errorf("got %d locations, want 9", len(locs.Locations))
	}

	res, err = http.Get(srv.URL + "/fleet")
	if err != nil {
		t.Fatal(err)
	}
	var fleet struct {
		Vehicles []dto.VehicleResponse `json:"vehicles"`
	}
	decodeBody(t, res, &fleet)
	if len(fleet.Vehicles) != 5 {
		t.Errorf("got %d vehicles, want 5", len(fleet.Vehicles))
	}

	res, err = http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	var health map[string]string
	decodeBody(t, res, &health)
	if health["status"] != "ok" || health["routing"] != "fallback" {
		t.Errorf("health = %v, want ok with fallback routing", health)
	}
}
