package services

import (
	"delivery-planner/internal/domain"
	"errors"
	"fmt"
)

// Loader places packages from a store onto trucks of a fleet.
type Loader struct {
	Store *domain.PackageStore
	Fleet *domain.Fleet
}

func NewLoader(store *domain.PackageStore, fleet *domain.Fleet) (*Loader, error) {
	if store == nil || fleet == nil {
		return nil, errors.New("new loader: store and fleet must be non-nil")
	}
	return &Loader{Store: store, Fleet: fleet}, nil
}

// Load appends packageID to the truck manifest and its destination to the
// truck route when not already present. Fails with CapacityExceededError when
// the truck is full; nothing is changed in that case.
func (l *Loader) Load(packageID int, truckID int) error {
	pkg, err := l.Store.Get(packageID)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	truck, err := l.Fleet.Truck(truckID)
	if err != nil {
		return fmt.Errorf("load: package_id=%d: %w", packageID, err)
	}

	if err := truck.Load(pkg.PackageID, pkg.LocationID); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	return nil
}
