package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/zoobzio/clockz"

	"organ-transport-service/internal/api/dto"
	"organ-transport-service/internal/domain"
	"organ-transport-service/internal/ports"
	"organ-transport-service/internal/services"
)

// TransportHandler serves single-shipment planning and the lifecycle of
// stored transports.
type TransportHandler struct {
	Planner *services.Planner
	Monitor *services.Monitor
	Store   ports.PlanStore
	Clock   clockz.Clock
}

// Plan creates a transport plan for one organ and stores it.
func (h *TransportHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanTransportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	if strings.TrimSpace(req.OrganID) == "" || strings.TrimSpace(req.OrganType) == "" {
		writeError(w, r, http.StatusBadRequest, "organ_id and organ_type are required")
		return
	}
	if strings.TrimSpace(req.Pickup) == "" || strings.TrimSpace(req.Delivery) == "" {
		writeError(w, r, http.StatusBadRequest, "pickup and delivery are required")
		return
	}
	if req.UrgencyScore < 0 || req.UrgencyScore > 100 {
		writeError(w, r, http.StatusBadRequest, "urgency_score must be between 0 and 100")
		return
	}
	if req.TemperatureRequiredC < 0 {
		writeError(w, r, http.StatusBadRequest, "temperature_required_c must not be negative")
		return
	}

	in := services.PlanTransportInput{
		OrganID:              req.OrganID,
		OrganType:            req.OrganType,
		PickupName:           req.Pickup,
		DeliveryName:         req.Delivery,
		UrgencyScore:         req.UrgencyScore,
		MaxTransportHours:    req.MaxTransportHours,
		TemperatureRequiredC: req.TemperatureRequiredC,
		SpecialRequirements:  req.SpecialRequirements,
	}
	if req.HarvestTime != nil {
		in.HarvestTime = *req.HarvestTime
	}

	plan, err := h.Planner.PlanTransport(r.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrLocationNotFound) {
			writeError(w, r, http.StatusBadRequest, "unknown pickup or delivery facility")
			return
		}
		if errors.Is(err, domain.ErrEmptyFleet) {
			writeError(w, r, http.StatusConflict, "no vehicles registered")
			return
		}
		log.Printf("plan transport failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.Store.Create(r.Context(), plan); err != nil {
		log.Printf("store transport plan failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.NewTransportPlanResponse(plan))
}

// List returns all transports still in flight, newest first.
func (h *TransportHandler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Store.ListActive(r.Context())
	if err != nil {
		log.Printf("list transports failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTransportsResponse{Transports: make([]dto.TransportPlanResponse, 0, len(plans))}
	for _, p := range plans {
		res.Transports = append(res.Transports, dto.NewTransportPlanResponse(p))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Track reports derived progress, position and arrival estimates.
func (h *TransportHandler) Track(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}

	var alerts []string
	if raw := strings.TrimSpace(r.URL.Query().Get("alerts")); raw != "" {
		alerts = strings.Split(raw, ",")
	}

	writeJSON(w, r, http.StatusOK, h.Monitor.Track(plan, alerts))
}

// Start marks a transport in progress.
func (h *TransportHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, domain.StatusInProgress)
}

// Delay flags a transport as behind schedule.
func (h *TransportHandler) Delay(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, domain.StatusDelayed)
}

// Complete marks a transport delivered.
func (h *TransportHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, domain.StatusDelivered)
}

// Report summarizes efficiency, risk and operating procedures for a plan.
func (h *TransportHandler) Report(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, services.BuildReport(plan))
}

func (h *TransportHandler) transition(w http.ResponseWriter, r *http.Request, status domain.TransportStatus) {
	id := r.PathValue("id")
	plan, err := h.Store.SetStatus(r.Context(), id, status, h.Clock.Now())
	if err != nil {
		if errors.Is(err, domain.ErrTransportNotFound) {
			writeError(w, r, http.StatusNotFound, "transport not found")
			return
		}
		log.Printf("set transport status failed: id=%s status=%s err=%v", id, status, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewTransportPlanResponse(plan))
}

func (h *TransportHandler) loadPlan(w http.ResponseWriter, r *http.Request) (domain.TransportPlan, bool) {
	id := r.PathValue("id")
	plan, err := h.Store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrTransportNotFound) {
			writeError(w, r, http.StatusNotFound, "transport not found")
			return domain.TransportPlan{}, false
		}
		log.Printf("load transport failed: id=%s err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return domain.TransportPlan{}, false
	}
	return plan, true
}
