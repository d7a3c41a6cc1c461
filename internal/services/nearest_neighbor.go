package services

import (
	"delivery-planner/internal/domain"
	"fmt"
	"math"
	"strings"
)

// RouteSeed selects the stop order handed to the 2-opt optimizer.
type RouteSeed string

const (
	// SeedLoadOrder keeps the order in which destinations were loaded.
	SeedLoadOrder RouteSeed = "load_order"
	// SeedNearestNeighbor reorders stops greedily before optimizing.
	SeedNearestNeighbor RouteSeed = "nearest_neighbor"
)

func ParseRouteSeed(s string) (RouteSeed, error) {
	switch RouteSeed(strings.ToLower(strings.TrimSpace(s))) {
	case "", SeedLoadOrder:
		return SeedLoadOrder, nil
	case SeedNearestNeighbor:
		return SeedNearestNeighbor, nil
	default:
		return "", &domain.InvalidValueError{
			Param:  "seed",
			Reason: fmt.Sprintf("unknown route seed %q (want load_order or nearest_neighbor)", s),
		}
	}
}

// NearestNeighborOrder reorders a route greedily: starting from route[0], it
// always moves to the closest unvisited location.
//
// Ties go to the lower location id so the order is deterministic. The input
// slice is not modified.
func NearestNeighborOrder(route []int, m *domain.DistanceMatrix) []int {
	if len(route) <= 2 {
		return append([]int(nil), route...)
	}

	remaining := make(map[int]struct{}, len(route)-1)
	for _, loc := range route[1:] {
		remaining[loc] = struct{}{}
	}

	out := make([]int, 0, len(route))
	current := route[0]
	out = append(out, current)

	for len(remaining) > 0 {
		best := -1
		minMiles := math.MaxFloat64

		// Select next stop by minimum distance (greedy step).
		for loc := range remaining {
			d := m.Distance(current, loc)
			if d < minMiles || (d == minMiles && loc < best) {
				minMiles = d
				best = loc
			}
		}

		out = append(out, best)
		delete(remaining, best)
		current = best
	}

	return out
}
