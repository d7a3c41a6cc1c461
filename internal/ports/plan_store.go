package ports

import (
	"context"
	"delivery-planner/internal/domain"
	"errors"
)

var ErrPlanNotFound = errors.New("plan not found")

// Port: persistence for finished fleet plans, read back by the delivery
// simulation and reporting collaborators.
type PlanStore interface {
	SavePlan(ctx context.Context, plan *domain.FleetPlan) error
	// Return the plan with id or ErrPlanNotFound.
	GetPlan(ctx context.Context, id string) (*domain.FleetPlan, error)
}
