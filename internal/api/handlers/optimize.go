package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"organ-transport-service/internal/api/dto"
	"organ-transport-service/internal/domain"
	"organ-transport-service/internal/registry"
	"organ-transport-service/internal/services"
)

// OptimizeHandler serves batch route optimization across the fleet.
type OptimizeHandler struct {
	Optimizer *services.Optimizer
	Registry  *registry.Registry
}

func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req dto.OptimizeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	requests, err := h.toDomainRequests(req.Requests)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sol, err := h.Optimizer.Optimize(r.Context(), requests)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyFleet) {
			writeError(w, r, http.StatusConflict, "no vehicles registered")
			return
		}
		log.Printf("optimize failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewRouteSolutionResponse(sol))
}

func (h *OptimizeHandler) toDomainRequests(items []dto.OptimizeItem) ([]domain.TransportRequest, error) {
	seen := make(map[string]struct{}, len(items))
	out := make([]domain.TransportRequest, 0, len(items))

	for i, item := range items {
		if strings.TrimSpace(item.OrganID) == "" {
			return nil, fmt.Errorf("requests[%d]: organ_id is required", i)
		}
		if _, dup := seen[item.OrganID]; dup {
			return nil, fmt.Errorf("requests[%d]: duplicate organ_id %q", i, item.OrganID)
		}
		seen[item.OrganID] = struct{}{}

		if item.UrgencyScore < 0 || item.UrgencyScore > 100 {
			return nil, fmt.Errorf("requests[%d]: urgency_score must be between 0 and 100", i)
		}

		pickup, err := h.Registry.FindFacility(item.Pickup)
		if err != nil {
			return nil, fmt.Errorf("requests[%d]: unknown pickup %q", i, item.Pickup)
		}
		delivery, err := h.Registry.FindFacility(item.Delivery)
		if err != nil {
			return nil, fmt.Errorf("requests[%d]: unknown delivery %q", i, item.Delivery)
		}

		out = append(out, domain.TransportRequest{
			OrganID:           item.OrganID,
			OrganType:         item.OrganType,
			PickupLocation:    pickup,
			DeliveryLocation:  delivery,
			MaxTransportHours: item.MaxTransportHours,
			UrgencyScore:      item.UrgencyScore,
		})
	}
	return out, nil
}
