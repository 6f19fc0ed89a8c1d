package ports

import (
	"context"
	"time"

	"organ-transport-service/internal/domain"
)

// Port: storage for created transport plans so active transports can be
// tracked by ID. Status transitions mutate only the status/started fields;
// the rest of the plan stays immutable.
type PlanStore interface {
	Create(ctx context.Context, plan domain.TransportPlan) error
	Get(ctx context.Context, transportID string) (domain.TransportPlan, error)
	// ListActive returns plans still in flight (planned, in progress or
	// delayed).
	ListActive(ctx context.Context) ([]domain.TransportPlan, error)
	// SetStatus transitions a plan; startedAt is recorded when the new
	// status is in_progress.
	SetStatus(ctx context.Context, transportID string, status domain.TransportStatus, at time.Time) (domain.TransportPlan, error)
}
