package repositories

import (
	"context"
	"delivery-planner/internal/domain"
	"slices"
)

// In-memory implementation of the PackageRepository port.
// Each call returns fresh copies so concurrent planning runs never share records.
type MemoryPackageRepository struct {
	pkgs []domain.Package
}

func NewMemoryPackageRepository(pkgs []domain.Package) *MemoryPackageRepository {
	cp := slices.Clone(pkgs)
	slices.SortFunc(cp, func(a, b domain.Package) int { return a.PackageID - b.PackageID })
	return &MemoryPackageRepository{pkgs: cp}
}

func (m *MemoryPackageRepository) ListPackages(ctx context.Context) ([]*domain.Package, error) {
	out := make([]*domain.Package, 0, len(m.pkgs))
	for _, p := range m.pkgs {
		p := p
		p.Constraints.CoShipsWith = slices.Clone(p.Constraints.CoShipsWith)
		out = append(out, &p)
	}
	return out, nil
}
