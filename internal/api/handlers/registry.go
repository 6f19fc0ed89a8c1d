package handlers

import (
	"errors"
	"log"
	"net/http"

	"organ-transport-service/internal/api/dto"
	"organ-transport-service/internal/domain"
	"organ-transport-service/internal/registry"
)

// RegistryHandler exposes the location network and the vehicle fleet for
// display and dispatch tooling.
type RegistryHandler struct {
	Registry *registry.Registry
	Fleet    *registry.Fleet
}

func (h *RegistryHandler) Locations(w http.ResponseWriter, r *http.Request) {
	all := h.Registry.All()
	res := make([]dto.LocationResponse, 0, len(all))
	for _, l := range all {
		res = append(res, dto.NewLocationResponse(l))
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"locations": res})
}

func (h *RegistryHandler) Vehicles(w http.ResponseWriter, r *http.Request) {
	all := h.Fleet.All()
	res := make([]dto.VehicleResponse, 0, len(all))
	for _, v := range all {
		res = append(res, dto.NewVehicleResponse(v))
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"vehicles": res})
}

type availabilityRequest struct {
	Available bool `json:"available"`
}

// SetAvailability flips a vehicle's availability flag. Dispatch systems call
// this when a vehicle is reserved or released.
func (h *RegistryHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	id := r.PathValue("id")
	if err := h.Fleet.SetAvailable(id, req.Available); err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			writeError(w, r, http.StatusNotFound, "vehicle not found")
			return
		}
		log.Printf("set vehicle availability failed: id=%s err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"id": id, "available": req.Available})
}
