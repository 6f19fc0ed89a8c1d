package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"

	"organ-transport-service/internal/domain"
	"organ-transport-service/internal/platform/obs"
	"organ-transport-service/internal/ports"
)

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
	} `json:"routes"`
}

// Directions returns road distance and duration between two points using
// the OpenRouteService directions endpoint. Results are served from the
// persistent estimate cache when available.
func (o *ORSRoutingProvider) Directions(
	ctx context.Context,
	origin, destination domain.Coordinates,
) (_ ports.RouteEstimate, err error) {
	defer obs.Time(ctx, "ors.Directions")(&err)

	// Check persistent cache before issuing an external API call.
	if o.estimateCache != nil {
		est, ok, err := o.estimateCache.Get(ctx, origin, destination)
		if err != nil {
			log.Printf("estimate cache read failed: %v", err)
		} else if ok {
			return est, nil
		}
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)

	payload, err := json.Marshal(directionsRequest{
		Coordinates: [][]float64{origin.CoordsToList(), destination.CoordsToList()},
	})
	if err != nil {
		return ports.RouteEstimate{}, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return ports.RouteEstimate{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return ports.RouteEstimate{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(dr.Routes) == 0 {
		return ports.RouteEstimate{}, fmt.Errorf("directions returned no routes")
	}

	// ORS returns float metrics; round to nearest integer for domain consistency.
	est := ports.RouteEstimate{
		DistanceMeters:  int(math.Round(dr.Routes[0].Summary.Distance)),
		DurationSeconds: int(math.Round(dr.Routes[0].Summary.Duration)),
	}

	if o.estimateCache != nil {
		if err := o.estimateCache.Put(ctx, origin, destination, est); err != nil {
			log.Printf("estimate cache write failed: %v", err)
		}
	}

	return est, nil
}
