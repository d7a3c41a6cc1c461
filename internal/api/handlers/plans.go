package handlers

import (
	"delivery-planner/internal/api/dto"
	"delivery-planner/internal/domain"
	"delivery-planner/internal/metrics"
	"delivery-planner/internal/policy"
	"delivery-planner/internal/ports"
	"delivery-planner/internal/services"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
)

// PlanDefaults fill in request fields the client leaves at zero.
type PlanDefaults struct {
	TruckCount    int
	TruckCapacity int
	Hub           int
	MaxPasses     int
}

type PlanHandler struct {
	Repo     ports.PackageRepository
	Matrix   ports.DistanceMatrixSource
	Store    ports.PlanStore
	Rules    *policy.RuleSet
	Defaults PlanDefaults
}

// Plan assigns every package to a truck, optimizes each route and stores
// the result under a new plan id.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil && err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	truckCount := req.TruckCount
	if truckCount == 0 {
		truckCount = h.Defaults.TruckCount
	}
	if truckCount < 1 || truckCount > 10 {
		writeError(w, r, http.StatusBadRequest, "truck_count must be between 1 and 10")
		return
	}

	truckCap := req.TruckCapacity
	if truckCap == 0 {
		truckCap = h.Defaults.TruckCapacity
	}
	if truckCap < 1 || truckCap > 100 {
		writeError(w, r, http.StatusBadRequest, "truck_capacity must be between 1 and 100")
		return
	}

	maxPasses := req.MaxPasses
	if maxPasses == 0 {
		maxPasses = h.Defaults.MaxPasses
	}
	if maxPasses < 0 || maxPasses > 100000 {
		writeError(w, r, http.StatusBadRequest, "max_passes must be between 1 and 100000")
		return
	}

	seed, err := services.ParseRouteSeed(req.Seed)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	svcReq := services.PlanDeliveriesRequest{
		TruckCount:    truckCount,
		TruckCapacity: truckCap,
		Hub:           h.Defaults.Hub,
		MaxPasses:     maxPasses,
		Seed:          seed,
		ReturnToHub:   req.ReturnToHub,
		Rules:         h.Rules,
	}

	plan, err := services.PlanDeliveries(r.Context(), svcReq, h.Repo, h.Matrix)
	metrics.PlanRuns.WithLabelValues(outcomeOf(err)).Inc()
	if err != nil {
		writeServiceError(w, r, "plan deliveries", err)
		return
	}

	if err := h.Store.SavePlan(r.Context(), plan); err != nil {
		writeServiceError(w, r, "save plan", err)
		return
	}

	log.Printf("plan created: id=%s trucks=%d total_miles=%.1f", plan.ID, len(plan.Trucks), plan.TotalMiles)
	w.Header().Set("Location", "/plans/"+plan.ID)
	writeJSON(w, r, http.StatusCreated, toPlanResponse(plan))
}

// Get returns a stored plan by id.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/plans/"), "/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "plan not found")
		return
	}

	plan, err := h.Store.GetPlan(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "get plan", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toPlanResponse(plan))
}

func toPlanResponse(p *domain.FleetPlan) dto.PlanResponse {
	res := dto.PlanResponse{
		ID:         p.ID,
		CreatedAt:  p.CreatedAt,
		TotalMiles: p.TotalMiles,
		Trucks:     make([]dto.TruckPlanResponse, 0, len(p.Trucks)),
	}

	for _, tp := range p.Trucks {
		stops := make([]dto.PlanStopResponse, 0, len(tp.Stops))
		for _, s := range tp.Stops {
			stops = append(stops, dto.PlanStopResponse{
				LocationID: s.LocationID,
				PackageIDs: s.PackageIDs,
			})
		}

		res.Trucks = append(res.Trucks, dto.TruckPlanResponse{
			TruckID:      tp.TruckID,
			Manifest:     tp.Manifest,
			Route:        tp.Route,
			Stops:        stops,
			InitialMiles: tp.InitialMiles,
			TotalMiles:   tp.TotalMiles,
			ReturnMiles:  tp.ReturnMiles,
			Passes:       tp.Passes,
			Swaps:        tp.Swaps,
			Converged:    tp.Converged,
		})
	}

	return res
}
