package domain

// Represents a single delivery unit handled by the system.
// A Package has a unique positive identifier and a destination location that
// indexes into the distance matrix. Notes are kept verbatim for reporting;
// planning decisions read the typed Constraints parsed from them at load time.
type Package struct {
	PackageID   int
	LocationID  int
	Address     string
	Deadline    Deadline
	WeightKg    float64
	Notes       string
	Status      Status
	Constraints Constraints
}

// Typed constraint flags normalized from free-form package notes.
type Constraints struct {
	// PinnedTruck is the only truck allowed to carry the package; 0 means any.
	PinnedTruck  int
	Delayed      bool
	WrongAddress bool
	// CoShipsWith lists packages the notes say must travel on the same truck.
	CoShipsWith []int
}

// Pinned reports whether the notes restrict the package to a named truck.
func (c Constraints) Pinned() bool { return c.PinnedTruck > 0 }
