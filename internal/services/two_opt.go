package services

import (
	"delivery-planner/internal/domain"
	"slices"
)

// DefaultMaxPasses bounds the number of full 2-opt scans of one route.
const DefaultMaxPasses = 1000

type OptimizeOptions struct {
	// MaxPasses caps full scans; zero or negative means DefaultMaxPasses.
	MaxPasses int
}

type OptimizeStats struct {
	Passes int
	Swaps  int
	// Converged is false when the pass cap stopped the search while it was
	// still improving.
	Converged bool
}

// Optimize improves a route with the 2-opt edge swap heuristic.
//
// route[0] is the start (the hub) and never moves. Each pass scans position
// pairs (i, j) with 1 <= i < len-2 and i+2 <= j <= len-1; when replacing edges
// (r[i-1],r[i]) and (r[j-1],r[j]) with (r[i-1],r[j-1]) and (r[i],r[j]) is
// strictly shorter, r[i..j-1] is reversed in place and the scan carries on
// over the mutated route. Passes repeat until one makes no swap.
//
// The result is a permutation of route with the same start, a 2-opt local
// optimum, and never longer than the input. The input slice is not modified.
func Optimize(route []int, m *domain.DistanceMatrix, opts OptimizeOptions) ([]int, OptimizeStats) {
	opt := slices.Clone(route)
	stats := OptimizeStats{Converged: true}

	n := len(opt)
	if n <= 3 {
		return opt, stats
	}

	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}

	improved := true
	for improved {
		if stats.Passes == maxPasses {
			stats.Converged = false
			break
		}
		improved = false
		stats.Passes++

		for i := 1; i < n-2; i++ {
			for j := i + 1; j < n; j++ {
				if j-i == 1 {
					continue
				}
				if swapDelta(m, opt[i-1], opt[i], opt[j-1], opt[j]) < 0 {
					slices.Reverse(opt[i:j])
					stats.Swaps++
					improved = true
				}
			}
		}
	}

	return opt, stats
}

// swapDelta is the change in length from replacing edges (a,b) and (c,d)
// with (a,c) and (b,d).
func swapDelta(m *domain.DistanceMatrix, a, b, c, d int) float64 {
	return (m.Distance(a, c) + m.Distance(b, d)) - (m.Distance(a, b) + m.Distance(c, d))
}
