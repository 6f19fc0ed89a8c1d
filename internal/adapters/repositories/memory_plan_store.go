package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"organ-transport-service/internal/domain"
)

// MemoryPlanStore keeps created transport plans in memory so active
// transports can be tracked by ID. Plan payloads are immutable; only the
// status and started-at fields change through SetStatus.
type MemoryPlanStore struct {
	mu    sync.RWMutex
	plans map[string]domain.TransportPlan
}

func NewMemoryPlanStore() *MemoryPlanStore {
	return &MemoryPlanStore{plans: map[string]domain.TransportPlan{}}
}

func (m *MemoryPlanStore) Create(_ context.Context, plan domain.TransportPlan) error {
	if plan.TransportID == "" {
		return fmt.Errorf("create plan: transport id must be non-empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.plans[plan.TransportID]; ok {
		return fmt.Errorf("create plan: transport %q already exists", plan.TransportID)
	}
	m.plans[plan.TransportID] = plan
	return nil
}

func (m *MemoryPlanStore) Get(_ context.Context, transportID string) (domain.TransportPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plan, ok := m.plans[transportID]
	if !ok {
		return domain.TransportPlan{}, fmt.Errorf("get plan %q: %w", transportID, domain.ErrTransportNotFound)
	}
	return plan, nil
}

// ListActive returns plans still in flight (planned, in progress or
// delayed), newest first.
func (m *MemoryPlanStore) ListActive(_ context.Context) ([]domain.TransportPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.TransportPlan, 0, len(m.plans))
	for _, p := range m.plans {
		switch p.Status {
		case domain.StatusPlanned, domain.StatusInProgress, domain.StatusDelayed:
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// SetStatus transitions a plan, recording startedAt on entry to in_progress.
func (m *MemoryPlanStore) SetStatus(
	_ context.Context,
	transportID string,
	status domain.TransportStatus,
	at time.Time,
) (domain.TransportPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	plan, ok := m.plans[transportID]
	if !ok {
		return domain.TransportPlan{}, fmt.Errorf("set status for %q: %w", transportID, domain.ErrTransportNotFound)
	}

	plan.Status = status
	if status == domain.StatusInProgress && plan.StartedAt == nil {
		started := at
		plan.StartedAt = &started
	}
	m.plans[transportID] = plan
	return plan, nil
}
