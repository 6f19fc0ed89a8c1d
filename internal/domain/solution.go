package domain

// OptimizationMethod identifies which code path produced a RouteSolution.
type OptimizationMethod string

const (
	MethodSolver         OptimizationMethod = "solver"
	MethodFallbackDirect OptimizationMethod = "fallback_direct"
)

// VehicleRoute is one vehicle's ordered sequence of visited locations and
// the organs it carries.
type VehicleRoute struct {
	Vehicle     Vehicle
	Locations   []Location
	OrganIDs    []string
	DistanceKm  float64
	TimeMinutes int
}

// RouteSolution is the output of the multi-shipment optimizer. Every organ
// in the request batch appears in exactly one route, regardless of method.
type RouteSolution struct {
	Routes           []VehicleRoute
	TotalDistanceKm  float64
	TotalTimeMinutes int
	Method           OptimizationMethod
}
