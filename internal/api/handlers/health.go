package handlers

import (
	"net/http"
)

// HealthHandler reports liveness plus whether the live routing provider is
// configured (estimates run on the geodesic fallback otherwise).
type HealthHandler struct {
	ProviderConfigured bool
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	routing := "fallback"
	if h.ProviderConfigured {
		routing = "configured"
	}
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"routing": routing,
	})
}
