package services

import (
	"delivery-planner/internal/domain"
	"delivery-planner/internal/policy"
	"errors"
	"fmt"
)

// Assignment records where each package was loaded.
type Assignment struct {
	Classifications []policy.Classification
	TruckOf         map[int]int
}

// AssignPackages loads every package in the store onto the fleet.
//
// Packages are offered in priority order (all class 1, then 2, then 3) and
// by ascending id within a class, so the outcome is reproducible. Pinned
// packages always go to their required truck and slots are reserved for them
// up front, so earlier unpinned packages can never crowd them out. Unpinned
// packages prefer the truck numbered after their class and otherwise take the
// lowest-numbered truck with an unreserved slot.
//
// All classification conflicts are reported before anything is loaded.
func AssignPackages(pol *policy.Policy, loader *Loader) (*Assignment, error) {
	if pol == nil || loader == nil {
		return nil, errors.New("assign packages: policy and loader must be non-nil")
	}

	classes, err := pol.ClassifyAll()
	if err != nil {
		return nil, fmt.Errorf("assign packages: %w", err)
	}

	fleet := loader.Fleet
	reserved := make(map[int]int, fleet.Size())
	for _, c := range classes {
		if !c.Pinned() {
			continue
		}
		if _, err := fleet.Truck(c.RequiredTruck); err != nil {
			return nil, fmt.Errorf("assign packages: package_id=%d is pinned outside the fleet: %w", c.PackageID, err)
		}
		reserved[c.RequiredTruck]++
	}

	for truckID, n := range reserved {
		truck, _ := fleet.Truck(truckID)
		if n > truck.Remaining() {
			return nil, fmt.Errorf(
				"assign packages: %d packages are pinned to truck %d: %w",
				n, truckID, &domain.CapacityExceededError{TruckID: truckID, Capacity: truck.Capacity},
			)
		}
	}

	out := &Assignment{
		Classifications: classes,
		TruckOf:         make(map[int]int, len(classes)),
	}

	for _, priority := range policy.Priorities {
		for _, c := range classes {
			if c.Priority != priority {
				continue
			}

			if c.Pinned() {
				if err := loader.Load(c.PackageID, c.RequiredTruck); err != nil {
					return nil, fmt.Errorf("assign packages: package_id=%d pinned to truck %d: %w", c.PackageID, c.RequiredTruck, err)
				}
				reserved[c.RequiredTruck]--
				out.TruckOf[c.PackageID] = c.RequiredTruck
				continue
			}

			truckID, err := pickTruck(fleet, reserved, c)
			if err != nil {
				return nil, fmt.Errorf("assign packages: %w", err)
			}
			if err := loader.Load(c.PackageID, truckID); err != nil {
				return nil, fmt.Errorf("assign packages: %w", err)
			}
			out.TruckOf[c.PackageID] = truckID
		}
	}

	return out, nil
}

// pickTruck chooses a truck for an unpinned package.
func pickTruck(fleet *domain.Fleet, reserved map[int]int, c policy.Classification) (int, error) {
	preferred := int(c.Priority)
	if preferred > fleet.Size() {
		preferred = fleet.Size()
	}

	candidates := make([]int, 0, fleet.Size())
	candidates = append(candidates, preferred)
	for id := 1; id <= fleet.Size(); id++ {
		if id != preferred {
			candidates = append(candidates, id)
		}
	}

	for _, id := range candidates {
		truck, err := fleet.Truck(id)
		if err != nil {
			return 0, err
		}
		if truck.Remaining()-reserved[id] > 0 {
			return id, nil
		}
	}

	truck, _ := fleet.Truck(preferred)
	return 0, fmt.Errorf(
		"package_id=%d: no truck has a free slot: %w",
		c.PackageID, &domain.CapacityExceededError{TruckID: preferred, Capacity: truck.Capacity, PackageID: c.PackageID},
	)
}

// TruckFor returns the truck a package was loaded onto.
func (a *Assignment) TruckFor(packageID int) (int, bool) {
	id, ok := a.TruckOf[packageID]
	return id, ok
}
