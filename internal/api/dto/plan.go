package dto

import "time"

// Zero values fall back to the server defaults.
type PlanRequest struct {
	TruckCount    int    `json:"truck_count"`
	TruckCapacity int    `json:"truck_capacity"`
	MaxPasses     int    `json:"max_passes"`
	Seed          string `json:"seed"`
	ReturnToHub   bool   `json:"return_to_hub"`
}

type PlanStopResponse struct {
	LocationID int   `json:"location_id"`
	PackageIDs []int `json:"package_ids"`
}

type TruckPlanResponse struct {
	TruckID      int                `json:"truck_id"`
	Manifest     []int              `json:"manifest"`
	Route        []int              `json:"route"`
	Stops        []PlanStopResponse `json:"stops"`
	InitialMiles float64            `json:"initial_miles"`
	TotalMiles   float64            `json:"total_miles"`
	ReturnMiles  float64            `json:"return_miles"`
	Passes       int                `json:"passes"`
	Swaps        int                `json:"swaps"`
	Converged    bool               `json:"converged"`
}

type PlanResponse struct {
	ID         string              `json:"id"`
	CreatedAt  time.Time           `json:"created_at"`
	TotalMiles float64             `json:"total_miles"`
	Trucks     []TruckPlanResponse `json:"trucks"`
}
