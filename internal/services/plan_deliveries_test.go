package services

import (
	"context"
	"delivery-planner/internal/adapters/distance"
	"delivery-planner/internal/adapters/repositories"
	"delivery-planner/internal/domain"
	"delivery-planner/internal/policy"
	"errors"
	"path/filepath"
	"slices"
	"sync"
	"testing"
)

func seedFixture(t *testing.T) (*repositories.MemoryPackageRepository, *distance.StaticSource) {
	t.Helper()

	ds, err := repositories.LoadDataset(filepath.Join("..", "..", "data", "seeds", "packages.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pkgs, err := ds.DomainPackages()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err := ds.Matrix()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return repositories.NewMemoryPackageRepository(pkgs), distance.NewStaticSource(m)
}

func defaultRequest() PlanDeliveriesRequest {
	return PlanDeliveriesRequest{TruckCount: 3, TruckCapacity: 16, Hub: 0}
}

func TestPlanDeliveriesSeedDataset(t *testing.T) {
	repo, source := seedFixture(t)

	plan, err := PlanDeliveries(context.Background(), defaultRequest(), repo, source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.ID == "" || plan.CreatedAt.IsZero() {
		t.Fatalf("plan id/created_at not set: %+v", plan)
	}
	if len(plan.Trucks) != 3 {
		t.Fatalf("truck plans = %d, want 3", len(plan.Trucks))
	}

	onTruck := map[int]int{}
	total := 0.0
	for _, tp := range plan.Trucks {
		if len(tp.Manifest) > 16 {
			t.Fatalf("truck %d carries %d packages, capacity 16", tp.TruckID, len(tp.Manifest))
		}
		if tp.Route[0] != 0 {
			t.Fatalf("truck %d route starts at %d, want hub", tp.TruckID, tp.Route[0])
		}
		if tp.TotalMiles > tp.InitialMiles+1e-9 {
			t.Fatalf("truck %d: optimized %v miles is longer than load order %v", tp.TruckID, tp.TotalMiles, tp.InitialMiles)
		}
		if !tp.Converged {
			t.Fatalf("truck %d did not converge", tp.TruckID)
		}
		for _, id := range tp.Manifest {
			if prev, ok := onTruck[id]; ok {
				t.Fatalf("package %d on trucks %d and %d", id, prev, tp.TruckID)
			}
			onTruck[id] = tp.TruckID
		}
		total += tp.TotalMiles
	}

	if len(onTruck) != 40 {
		t.Fatalf("planned %d packages, want 40", len(onTruck))
	}
	if total != plan.TotalMiles {
		t.Fatalf("fleet total = %v, want sum %v", plan.TotalMiles, total)
	}

	for _, id := range []int{3, 18, 36, 38} {
		if onTruck[id] != 2 {
			t.Fatalf("pinned package %d on truck %d, want 2", id, onTruck[id])
		}
	}
	for _, id := range []int{13, 14, 15, 16, 19, 20} {
		if onTruck[id] != 1 {
			t.Fatalf("grouped package %d on truck %d, want 1", id, onTruck[id])
		}
	}
}

func TestPlanDeliveriesDeterministic(t *testing.T) {
	repo, source := seedFixture(t)

	first, err := PlanDeliveries(context.Background(), defaultRequest(), repo, source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Runs share the repository and matrix; each gets its own store and fleet.
	var wg sync.WaitGroup
	plans := make([]*domain.FleetPlan, 4)
	errs := make([]error, 4)
	for i := range plans {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			plans[i], errs[i] = PlanDeliveries(context.Background(), defaultRequest(), repo, source)
		}(i)
	}
	wg.Wait()

	for i, p := range plans {
		if errs[i] != nil {
			t.Fatalf("run %d: unexpected error: %v", i, errs[i])
		}
		for j, tp := range p.Trucks {
			if !slices.Equal(tp.Route, first.Trucks[j].Route) || !slices.Equal(tp.Manifest, first.Trucks[j].Manifest) {
				t.Fatalf("run %d truck %d differs from the first run", i, tp.TruckID)
			}
		}
		if p.ID == first.ID {
			t.Fatalf("run %d reused plan id %s", i, p.ID)
		}
	}
}

func TestPlanDeliveriesErrors(t *testing.T) {
	repo, source := seedFixture(t)

	t.Run("hub outside matrix", func(t *testing.T) {
		req := defaultRequest()
		req.Hub = 99
		_, err := PlanDeliveries(context.Background(), req, repo, source)
		if !errors.Is(err, domain.ErrInvalidValue) {
			t.Fatalf("expected ErrInvalidValue, got %v", err)
		}
	})

	t.Run("fleet too small", func(t *testing.T) {
		req := defaultRequest()
		req.TruckCapacity = 10
		_, err := PlanDeliveries(context.Background(), req, repo, source)
		if !errors.Is(err, domain.ErrCapacityExceeded) {
			t.Fatalf("expected ErrCapacityExceeded, got %v", err)
		}
	})

	t.Run("pinned truck missing", func(t *testing.T) {
		req := defaultRequest()
		req.TruckCount = 1
		req.TruckCapacity = 40
		_, err := PlanDeliveries(context.Background(), req, repo, source)
		if !errors.Is(err, domain.ErrTruckNotFound) {
			t.Fatalf("expected ErrTruckNotFound, got %v", err)
		}
	})

	t.Run("conflicting group", func(t *testing.T) {
		req := defaultRequest()
		req.Rules = policy.DefaultRuleSet()
		req.Rules.Groups = []policy.Group{{Truck: 1, Packages: []int{3, 4}}}
		_, err := PlanDeliveries(context.Background(), req, repo, source)
		if !errors.Is(err, domain.ErrConstraintConflict) {
			t.Fatalf("expected ErrConstraintConflict, got %v", err)
		}
	})

	t.Run("package location outside matrix", func(t *testing.T) {
		bad := repositories.NewMemoryPackageRepository([]domain.Package{{PackageID: 1, LocationID: 500}})
		_, err := PlanDeliveries(context.Background(), defaultRequest(), bad, source)
		if !errors.Is(err, domain.ErrInvalidValue) {
			t.Fatalf("expected ErrInvalidValue, got %v", err)
		}
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := PlanDeliveries(ctx, defaultRequest(), repo, source)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}
