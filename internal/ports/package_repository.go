package ports

import (
	"context"
	"delivery-planner/internal/domain"
)

// Port: a boundary for retrieving Package entities from a data source.
type PackageRepository interface {
	// Retrieve all packages available for routing, ordered by id.
	ListPackages(ctx context.Context) ([]*domain.Package, error)
}
