package services

import (
	"context"
	"delivery-planner/internal/domain"
	"delivery-planner/internal/metrics"
	"delivery-planner/internal/platform/obs"
	"delivery-planner/internal/policy"
	"delivery-planner/internal/ports"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type PlanDeliveriesRequest struct {
	TruckCount    int
	TruckCapacity int
	Hub           int
	MaxPasses     int
	Seed          RouteSeed
	ReturnToHub   bool
	Rules         *policy.RuleSet
}

type truckResult struct {
	plan *domain.TruckPlan
	err  error
}

// PlanDeliveries runs one full planning pass: load the dataset, assign every
// package to a truck, then optimize each truck's route.
//
// Trucks are optimized concurrently; each goroutine owns one truck and they
// share only the read-only matrix and package store.
func PlanDeliveries(
	ctx context.Context,
	req PlanDeliveriesRequest,
	repo ports.PackageRepository,
	source ports.DistanceMatrixSource,
) (_ *domain.FleetPlan, err error) {
	defer obs.Time(ctx, "services.PlanDeliveries")(&err)

	rules := req.Rules
	if rules == nil {
		rules = policy.DefaultRuleSet()
	}

	pkgs, err := repo.ListPackages(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: list packages: %w", err)
	}

	matrix, err := source.LoadDistanceMatrix(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: load distance matrix: %w", err)
	}

	if !matrix.Contains(req.Hub) {
		return nil, fmt.Errorf("plan deliveries: hub location %d is outside the distance matrix (size %d): %w", req.Hub, matrix.Size(), domain.ErrInvalidValue)
	}
	for _, pkg := range pkgs {
		if !matrix.Contains(pkg.LocationID) {
			return nil, fmt.Errorf(
				"plan deliveries: package_id=%d has location %d outside the distance matrix (size %d): %w",
				pkg.PackageID, pkg.LocationID, matrix.Size(), domain.ErrInvalidValue,
			)
		}
	}

	if err := rules.ParseNotes(pkgs); err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	store, err := domain.StoreFrom(pkgs)
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: build package store: %w", err)
	}

	fleet, err := domain.NewFleet(req.TruckCount, req.TruckCapacity, req.Hub)
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	pol, err := policy.New(rules, store)
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	loader, err := NewLoader(store, fleet)
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	if _, err := AssignPackages(pol, loader); err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	opts := TruckPlanOptions{
		Optimize:    OptimizeOptions{MaxPasses: req.MaxPasses},
		Seed:        req.Seed,
		ReturnToHub: req.ReturnToHub,
	}

	trucks := fleet.Trucks()
	results := make([]truckResult, len(trucks))
	var wg sync.WaitGroup
	for i, truck := range trucks {
		wg.Add(1)
		go func(i int, truck *domain.Truck) {
			defer wg.Done()
			plan, err := BuildTruckPlan(truck, store, matrix, opts)
			results[i] = truckResult{plan: plan, err: err}
		}(i, truck)
	}
	wg.Wait()

	out := &domain.FleetPlan{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Trucks:    make([]domain.TruckPlan, 0, len(trucks)),
	}

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		out.Trucks = append(out.Trucks, *r.plan)
		out.TotalMiles += r.plan.TotalMiles
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("plan deliveries: %w", errors.Join(errs...))
	}

	for _, tp := range out.Trucks {
		metrics.ObserveTruckPlan(tp)
	}

	return out, nil
}
