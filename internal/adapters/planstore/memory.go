package planstore

import (
	"context"
	"delivery-planner/internal/domain"
	"delivery-planner/internal/ports"
	"errors"
	"fmt"
	"sync"
)

// MemoryPlanStore keeps finished plans in process memory.
type MemoryPlanStore struct {
	mu    sync.RWMutex
	plans map[string]*domain.FleetPlan
}

func NewMemoryPlanStore() *MemoryPlanStore {
	return &MemoryPlanStore{plans: make(map[string]*domain.FleetPlan)}
}

func (s *MemoryPlanStore) SavePlan(ctx context.Context, plan *domain.FleetPlan) error {
	if plan == nil || plan.ID == "" {
		return errors.New("memory plan store: plan must have an id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[plan.ID] = plan
	return nil
}

func (s *MemoryPlanStore) GetPlan(ctx context.Context, id string) (*domain.FleetPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[id]
	if !ok {
		return nil, fmt.Errorf("memory plan store: id=%s: %w", id, ports.ErrPlanNotFound)
	}
	return plan, nil
}
