package dto

type ConstraintsResponse struct {
	PinnedTruck  int   `json:"pinned_truck,omitempty"`
	Delayed      bool  `json:"delayed"`
	WrongAddress bool  `json:"wrong_address"`
	CoShipsWith  []int `json:"co_ships_with,omitempty"`
}

type PackageResponse struct {
	PackageID  int     `json:"package_id"`
	LocationID int     `json:"location_id"`
	Address    string  `json:"address"`
	Deadline   string  `json:"deadline"`
	WeightKg   float64 `json:"weight_kg"`
	Notes      string  `json:"notes,omitempty"`
	Status     string  `json:"status"`

	Priority      int                 `json:"priority"`
	RequiredTruck int                 `json:"required_truck,omitempty"`
	Constraints   ConstraintsResponse `json:"constraints"`
}

type ListPackagesResponse struct {
	Packages []PackageResponse `json:"packages"`
}
