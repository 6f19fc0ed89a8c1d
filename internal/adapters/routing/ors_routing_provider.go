package routing

import (
	"errors"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"organ-transport-service/internal/ports"
)

// ORSRoutingProvider implements RoutingProvider using OpenRouteService.
//
// It coordinates:
//   - Geocoding of free-text addresses
//   - Directions and matrix lookups between coordinate pairs
//   - Persistent estimate caching
//   - External API calls with retry/backoff and client-side rate limiting
//
// The provider is safe for concurrent use.
type ORSRoutingProvider struct {
	session       *http.Client
	apiKey        string
	baseURL       string
	profile       string
	limiter       *rate.Limiter
	estimateCache ports.EstimateCache
}

func NewORSRoutingProvider(apiKey string, estimateCache ports.EstimateCache) (*ORSRoutingProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSRoutingProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		profile: "driving-car",
		// Free-tier ORS allows 40 requests/minute; stay under it.
		limiter:       rate.NewLimiter(rate.Every(1600*time.Millisecond), 4),
		estimateCache: estimateCache,
	}

	return provider, nil
}
