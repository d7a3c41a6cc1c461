package distance

import (
	"context"
	"delivery-planner/internal/domain"
	"errors"
	"fmt"
)

// Pair is one undirected matrix entry.
type Pair struct {
	From, To int
	Miles    float64
}

// StaticSource serves a fixed, in-memory distance matrix.
type StaticSource struct {
	m *domain.DistanceMatrix
}

func NewStaticSource(m *domain.DistanceMatrix) *StaticSource {
	return &StaticSource{m: m}
}

// NewStaticSourceFromPairs builds a symmetric matrix over locations 0..size-1.
// Pairs not listed default to 0, so callers should list every off-diagonal pair.
func NewStaticSourceFromPairs(size int, pairs []Pair) (*StaticSource, error) {
	rows := make([][]float64, size)
	for i := range rows {
		rows[i] = make([]float64, size)
	}
	for _, p := range pairs {
		if p.From < 0 || p.From >= size || p.To < 0 || p.To >= size {
			return nil, fmt.Errorf("static distance source: pair %d -> %d outside %d locations", p.From, p.To, size)
		}
		rows[p.From][p.To] = p.Miles
		rows[p.To][p.From] = p.Miles
	}

	m, err := domain.NewDistanceMatrix(rows)
	if err != nil {
		return nil, fmt.Errorf("static distance source: %w", err)
	}
	return &StaticSource{m: m}, nil
}

func (s *StaticSource) LoadDistanceMatrix(ctx context.Context) (*domain.DistanceMatrix, error) {
	if s.m == nil {
		return nil, errors.New("static distance source: matrix is nil")
	}
	return s.m, nil
}
