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

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// MatrixRow returns estimates from one origin to many destinations using
// the OpenRouteService matrix endpoint. Cached pairs are not re-fetched;
// only cache misses go out in a single batched call.
func (o *ORSRoutingProvider) MatrixRow(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (_ []ports.RouteEstimate, err error) {
	defer obs.Time(ctx, "ors.MatrixRow")(&err)

	if len(destinations) == 0 {
		return []ports.RouteEstimate{}, nil
	}

	out := make([]ports.RouteEstimate, len(destinations))
	missIdx := make([]int, 0, len(destinations))

	for i, dest := range destinations {
		if o.estimateCache != nil {
			est, ok, err := o.estimateCache.Get(ctx, origin, dest)
			if err != nil {
				log.Printf("estimate cache read failed: %v", err)
			} else if ok {
				out[i] = est
				continue
			}
		}
		missIdx = append(missIdx, i)
	}

	if len(missIdx) == 0 {
		return out, nil
	}

	fetched, err := o.fetchMatrixRow(ctx, origin, missIdx, destinations)
	if err != nil {
		return nil, err
	}

	for j, i := range missIdx {
		out[i] = fetched[j]
		if o.estimateCache != nil {
			if err := o.estimateCache.Put(ctx, origin, destinations[i], fetched[j]); err != nil {
				log.Printf("estimate cache write failed: %v", err)
			}
		}
	}

	return out, nil
}

func (o *ORSRoutingProvider) fetchMatrixRow(
	ctx context.Context,
	origin domain.Coordinates,
	missIdx []int,
	destinations []domain.Coordinates,
) ([]ports.RouteEstimate, error) {
	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)

	locations := make([][]float64, 0, 1+len(missIdx))
	locations = append(locations, origin.CoordsToList())
	for _, i := range missIdx {
		locations = append(locations, destinations[i].CoordsToList())
	}

	destIdx := make([]int, 0, len(missIdx))
	for i := 1; i < len(locations); i++ {
		destIdx = append(destIdx, i)
	}

	payload, err := json.Marshal(matrixRequest{
		Locations:    locations,
		Destinations: destIdx,
		Metrics:      []string{"distance", "duration"},
		Sources:      []int{0},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Distances) != 1 || len(mr.Durations) != 1 {
		return nil, fmt.Errorf(
			"expected 1 source row; got distances=%d durations=%d",
			len(mr.Distances), len(mr.Durations),
		)
	}

	rowDistances := mr.Distances[0]
	rowDurations := mr.Durations[0]

	if len(rowDistances) != len(missIdx) || len(rowDurations) != len(missIdx) {
		return nil, fmt.Errorf(
			"row lengths do not match destinations: distances=%d durations=%d destinations=%d",
			len(rowDistances), len(rowDurations), len(missIdx),
		)
	}

	fetched := make([]ports.RouteEstimate, len(missIdx))
	for i := range missIdx {
		metersPtr := rowDistances[i]
		secondsPtr := rowDurations[i]

		if metersPtr == nil || secondsPtr == nil {
			return nil, fmt.Errorf("matrix returned invalid metrics for destination %d", i)
		}

		fetched[i] = ports.RouteEstimate{
			DistanceMeters:  int(math.Round(*metersPtr)),
			DurationSeconds: int(math.Round(*secondsPtr)),
		}
	}

	return fetched, nil
}
