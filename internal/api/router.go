package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zoobzio/clockz"

	"organ-transport-service/internal/api/handlers"
	"organ-transport-service/internal/metrics"
	"organ-transport-service/internal/ports"
	"organ-transport-service/internal/registry"
	"organ-transport-service/internal/services"
)

// Deps carries everything the HTTP layer needs. Handlers stay unaware of
// concrete adapters; this is the API composition root.
type Deps struct {
	Planner            *services.Planner
	Optimizer          *services.Optimizer
	Monitor            *services.Monitor
	Store              ports.PlanStore
	Registry           *registry.Registry
	Fleet              *registry.Fleet
	Clock              clockz.Clock
	ProviderConfigured bool
}

func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	transports := &handlers.TransportHandler{
		Planner: d.Planner,
		Monitor: d.Monitor,
		Store:   d.Store,
		Clock:   d.Clock,
	}
	optimize := &handlers.OptimizeHandler{Optimizer: d.Optimizer, Registry: d.Registry}
	network := &handlers.RegistryHandler{Registry: d.Registry, Fleet: d.Fleet}
	health := &handlers.HealthHandler{ProviderConfigured: d.ProviderConfigured}

	mux.HandleFunc("POST /plans", transports.Plan)
	mux.HandleFunc("POST /optimize", optimize.Optimize)

	mux.HandleFunc("GET /transports", transports.List)
	mux.HandleFunc("GET /transports/{id}/track", transports.Track)
	mux.HandleFunc("POST /transports/{id}/start", transports.Start)
	mux.HandleFunc("POST /transports/{id}/delay", transports.Delay)
	mux.HandleFunc("POST /transports/{id}/complete", transports.Complete)
	mux.HandleFunc("GET /transports/{id}/report", transports.Report)

	mux.HandleFunc("GET /locations", network.Locations)
	mux.HandleFunc("GET /fleet", network.Vehicles)
	mux.HandleFunc("POST /fleet/{id}/availability", network.SetAvailability)

	mux.HandleFunc("GET /health", health.Health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return withObservability(mux)
}
