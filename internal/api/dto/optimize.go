package dto

import (
	"organ-transport-service/internal/domain"
)

type OptimizeItem struct {
	OrganID           string `json:"organ_id"`
	OrganType         string `json:"organ_type"`
	Pickup            string `json:"pickup"`
	Delivery          string `json:"delivery"`
	UrgencyScore      int    `json:"urgency_score"`
	MaxTransportHours int    `json:"max_transport_hours"`
}

type OptimizeRequest struct {
	Requests []OptimizeItem `json:"requests"`
}

type VehicleRouteResponse struct {
	VehicleID   string             `json:"vehicle_id"`
	VehicleType string             `json:"vehicle_type"`
	Locations   []LocationResponse `json:"locations"`
	OrganIDs    []string           `json:"organ_ids"`
	DistanceKm  float64            `json:"distance_km"`
	TimeMinutes int                `json:"time_minutes"`
}

type RouteSolutionResponse struct {
	Routes           []VehicleRouteResponse `json:"routes"`
	TotalDistanceKm  float64                `json:"total_distance_km"`
	TotalTimeMinutes int                    `json:"total_time_minutes"`
	Method           string                 `json:"method"`
}

func NewRouteSolutionResponse(sol domain.RouteSolution) RouteSolutionResponse {
	res := RouteSolutionResponse{
		Routes:           make([]VehicleRouteResponse, 0, len(sol.Routes)),
		TotalDistanceKm:  sol.TotalDistanceKm,
		TotalTimeMinutes: sol.TotalTimeMinutes,
		Method:           string(sol.Method),
	}
	for _, r := range sol.Routes {
		locs := make([]LocationResponse, 0, len(r.Locations))
		for _, l := range r.Locations {
			locs = append(locs, NewLocationResponse(l))
		}
		res.Routes = append(res.Routes, VehicleRouteResponse{
			VehicleID:   r.Vehicle.ID,
			VehicleType: string(r.Vehicle.Type),
			Locations:   locs,
			OrganIDs:    r.OrganIDs,
			DistanceKm:  r.DistanceKm,
			TimeMinutes: r.TimeMinutes,
		})
	}
	return res
}
