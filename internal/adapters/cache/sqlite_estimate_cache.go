package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"organ-transport-service/internal/domain"
	"organ-transport-service/internal/ports"
)

// SQLite-backed cache for provider route estimates. Used for single-node
// deployments and local runs where no Postgres or Redis is configured.
type SqliteEstimateCache struct {
	DB *sql.DB
}

func NewSqliteEstimateCache(db *sql.DB) *SqliteEstimateCache {
	return &SqliteEstimateCache{DB: db}
}

// Fetch a cached estimate for one coordinate pair.
func (s *SqliteEstimateCache) Get(
	ctx context.Context,
	origin, destination domain.Coordinates,
) (ports.RouteEstimate, bool, error) {
	if s.DB == nil {
		return ports.RouteEstimate{}, false, errors.New("estimate cache: db is nil")
	}

	q := `
	SELECT distance_meters, duration_seconds
	FROM estimate_cache
	WHERE origin = ? AND destination = ?;
	`

	var meters, seconds int
	err := s.DB.QueryRowContext(ctx, q, coordKey(origin), coordKey(destination)).Scan(&meters, &seconds)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.RouteEstimate{}, false, nil
	}
	if err != nil {
		return ports.RouteEstimate{}, false, fmt.Errorf("get estimate cache: query estimate_cache table: %w", err)
	}

	return ports.RouteEstimate{DistanceMeters: meters, DurationSeconds: seconds}, true, nil
}

// Store an estimate for one coordinate pair.
func (s *SqliteEstimateCache) Put(
	ctx context.Context,
	origin, destination domain.Coordinates,
	est ports.RouteEstimate,
) error {
	if s.DB == nil {
		return errors.New("estimate cache: db is nil")
	}

	q := `
	INSERT INTO estimate_cache (origin, destination, distance_meters, duration_seconds)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_meters = excluded.distance_meters,
		duration_seconds = excluded.duration_seconds;
	`

	if _, err := s.DB.ExecContext(ctx, q, coordKey(origin), coordKey(destination), est.DistanceMeters, est.DurationSeconds); err != nil {
		return fmt.Errorf("insert estimate cache: %w", err)
	}

	return nil
}
