package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"organ-transport-service/internal/domain"
	"organ-transport-service/internal/platform/obs"
	"organ-transport-service/internal/ports"
)

// SQLEstimateCache is a Postgres-backed cache for provider route estimates,
// keyed by origin/destination coordinate pair.
type SQLEstimateCache struct {
	DB *sql.DB
}

func NewSQLEstimateCache(db *sql.DB) *SQLEstimateCache {
	return &SQLEstimateCache{DB: db}
}

// Fetch a cached estimate for one coordinate pair.
func (s *SQLEstimateCache) Get(
	ctx context.Context,
	origin, destination domain.Coordinates,
) (_ ports.RouteEstimate, _ bool, err error) {
	defer obs.Time(ctx, "estimate.cache.Get")(&err)

	if s.DB == nil {
		return ports.RouteEstimate{}, false, errors.New("estimate cache: db is nil")
	}

	q := `
	SELECT distance_meters, duration_seconds
	FROM estimate_cache
	WHERE origin = $1 AND destination = $2;
	`

	var meters, seconds int
	err = s.DB.QueryRowContext(ctx, q, coordKey(origin), coordKey(destination)).Scan(&meters, &seconds)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.RouteEstimate{}, false, nil
	}
	if err != nil {
		return ports.RouteEstimate{}, false, fmt.Errorf("get estimate cache: query estimate_cache table: %w", err)
	}

	return ports.RouteEstimate{DistanceMeters: meters, DurationSeconds: seconds}, true, nil
}

// Store an estimate for one coordinate pair.
func (s *SQLEstimateCache) Put(
	ctx context.Context,
	origin, destination domain.Coordinates,
	est ports.RouteEstimate,
) error {
	if s.DB == nil {
		return errors.New("estimate cache: db is nil")
	}

	q := `
	INSERT INTO estimate_cache (origin, destination, distance_meters, duration_seconds)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds;
	`

	if _, err := s.DB.ExecContext(ctx, q, coordKey(origin), coordKey(destination), est.DistanceMeters, est.DurationSeconds); err != nil {
		return fmt.Errorf("insert estimate cache: %w", err)
	}

	return nil
}
