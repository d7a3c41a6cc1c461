package ports

import (
	"context"
	"delivery-planner/internal/domain"
)

// Contract for loading the static point-to-point distance matrix.
type DistanceMatrixSource interface {
	// Return the full matrix of miles between every known location.
	LoadDistanceMatrix(ctx context.Context) (*domain.DistanceMatrix, error)
}
