package services

import (
	"delivery-planner/internal/domain"
	"errors"
	"fmt"
)

type TruckPlanOptions struct {
	Optimize OptimizeOptions
	// Seed picks the starting order for 2-opt; empty means load order.
	Seed RouteSeed
	// ReturnToHub adds the closing leg back to the hub to the mile totals.
	ReturnToHub bool
}

// BuildTruckPlan optimizes a loaded truck's route and groups its manifest
// into stops. The truck itself is left unchanged.
func BuildTruckPlan(
	truck *domain.Truck,
	store *domain.PackageStore,
	m *domain.DistanceMatrix,
	opts TruckPlanOptions,
) (*domain.TruckPlan, error) {
	if truck == nil {
		return nil, errors.New("build truck plan: truck must be non-nil")
	}

	for _, loc := range truck.Route {
		if !m.Contains(loc) {
			return nil, fmt.Errorf(
				"build truck plan: truck %d: location %d is outside the distance matrix (size %d): %w",
				truck.TruckID, loc, m.Size(), domain.ErrInvalidValue,
			)
		}
	}

	start := truck.Route
	if opts.Seed == SeedNearestNeighbor {
		start = NearestNeighborOrder(truck.Route, m)
	}
	route, stats := Optimize(start, m, opts.Optimize)

	byLocation := make(map[int][]int, len(route))
	for _, id := range truck.Manifest {
		pkg, err := store.Get(id)
		if err != nil {
			return nil, fmt.Errorf("build truck plan: truck %d: %w", truck.TruckID, err)
		}
		byLocation[pkg.LocationID] = append(byLocation[pkg.LocationID], id)
	}

	stops := make([]domain.RouteStop, 0, len(route))
	// Packages addressed to the hub itself are handed over before departure.
	if ids := byLocation[truck.Hub]; len(ids) > 0 {
		stops = append(stops, domain.RouteStop{LocationID: truck.Hub, PackageIDs: ids})
	}
	for _, loc := range route {
		if loc == truck.Hub {
			continue
		}
		stops = append(stops, domain.RouteStop{LocationID: loc, PackageIDs: byLocation[loc]})
	}

	plan := &domain.TruckPlan{
		TruckID:      truck.TruckID,
		Manifest:     append([]int(nil), truck.Manifest...),
		Route:        route,
		Stops:        stops,
		InitialMiles: m.PathDistance(truck.Route),
		TotalMiles:   m.PathDistance(route),
		Passes:       stats.Passes,
		Swaps:        stats.Swaps,
		Converged:    stats.Converged,
	}

	if len(route) > 1 {
		plan.ReturnMiles = m.Distance(route[len(route)-1], truck.Hub)
	}
	if opts.ReturnToHub && len(truck.Route) > 1 {
		plan.InitialMiles += m.Distance(truck.Route[len(truck.Route)-1], truck.Hub)
		plan.TotalMiles += plan.ReturnMiles
	}

	return plan, nil
}
