package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// EstimateRequests counts route estimates by source (provider or fallback).
	EstimateRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_estimates_total", Help: "Route estimates by source."},
		[]string{"source"},
	)
	// SolverRuns counts optimization runs by resulting method.
	SolverRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "optimizer_runs_total", Help: "Optimizer runs by method."},
		[]string{"method"},
	)
	// SolverDuration tracks solver wall-clock time in seconds.
	SolverDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "optimizer_solve_duration_seconds", Help: "VRP solve duration in seconds.", Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 15, 30, 60}},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(EstimateRequests)
		Registry.MustRegister(SolverRuns)
		Registry.MustRegister(SolverDuration)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
