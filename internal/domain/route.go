package domain

import "time"

// Represents a single stop in a delivery route.
// A RouteStop is one visit to a location, delivering every manifest package
// addressed there.
type RouteStop struct {
	LocationID int
	PackageIDs []int
}

// Represents the planned delivery route for a single truck.
// Route is the optimized visiting order starting at the hub; Stops follows it
// with the packages delivered at each location. The hub appears in Stops only
// when packages are addressed to it, and then first.
type TruckPlan struct {
	TruckID      int
	Manifest     []int
	Route        []int
	Stops        []RouteStop
	InitialMiles float64
	TotalMiles   float64
	ReturnMiles  float64
	Passes       int
	Swaps        int
	Converged    bool
}

// Represents the outcome of one planning run across the whole fleet.
// It is immutable planning data consumed by the delivery simulation and
// reporting collaborators.
type FleetPlan struct {
	ID         string
	CreatedAt  time.Time
	Trucks     []TruckPlan
	TotalMiles float64
}
