package domain

import "slices"

// Delivery truck holding a package manifest and the stops needed to deliver it.
//
// Route starts at the hub and lists each distinct destination once, in the
// order packages were loaded, until the route optimizer reorders it.
// A Truck is not safe for concurrent mutation.
type Truck struct {
	TruckID  int
	Capacity int
	Hub      int
	Manifest []int
	Route    []int

	remaining int
}

func NewTruck(id int, capacity int, hub int) *Truck {
	return &Truck{
		TruckID:   id,
		Capacity:  capacity,
		Hub:       hub,
		Manifest:  make([]int, 0, capacity),
		Route:     []int{hub},
		remaining: capacity,
	}
}

// Load a single package onto the truck. The destination is appended to the
// route only if no earlier package already stops there.
func (t *Truck) Load(packageID int, locationID int) error {
	if t.remaining <= 0 {
		return &CapacityExceededError{TruckID: t.TruckID, Capacity: t.Capacity, PackageID: packageID}
	}

	t.Manifest = append(t.Manifest, packageID)
	t.remaining--

	if !t.HasLocation(locationID) {
		t.Route = append(t.Route, locationID)
	}
	return nil
}

// Remaining is the number of free package slots.
func (t *Truck) Remaining() int { return t.remaining }

func (t *Truck) IsFull() bool { return t.remaining <= 0 }

// HasLocation reports whether the route already visits loc.
func (t *Truck) HasLocation(loc int) bool { return slices.Contains(t.Route, loc) }

// Carries reports whether packageID is on the manifest.
func (t *Truck) Carries(packageID int) bool { return slices.Contains(t.Manifest, packageID) }

// Unload all packages and reset the route to the hub.
func (t *Truck) Clear() {
	t.Manifest = t.Manifest[:0]
	t.Route = []int{t.Hub}
	t.remaining = t.Capacity
}
