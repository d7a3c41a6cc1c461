package handlers

import (
	"delivery-planner/internal/api/dto"
	"delivery-planner/internal/domain"
	"delivery-planner/internal/policy"
	"delivery-planner/internal/ports"
	"fmt"
	"net/http"
)

// PackageHandler exposes read-only package retrieval endpoints.
type PackageHandler struct {
	Repo  ports.PackageRepository
	Rules *policy.RuleSet
}

// List returns every package with its parsed constraints and priority class.
func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	pkgs, err := h.Repo.ListPackages(r.Context())
	if err != nil {
		writeServiceError(w, r, "list packages", err)
		return
	}

	classes, err := h.classify(pkgs)
	if err != nil {
		writeServiceError(w, r, "list packages", err)
		return
	}

	res := dto.ListPackagesResponse{
		Packages: make([]dto.PackageResponse, 0, len(pkgs)),
	}
	for _, p := range pkgs {
		c := classes[p.PackageID]
		res.Packages = append(res.Packages, dto.PackageResponse{
			PackageID:     p.PackageID,
			LocationID:    p.LocationID,
			Address:       p.Address,
			Deadline:      p.Deadline.String(),
			WeightKg:      p.WeightKg,
			Notes:         p.Notes,
			Status:        p.Status.String(),
			Priority:      int(c.Priority),
			RequiredTruck: c.RequiredTruck,
			Constraints: dto.ConstraintsResponse{
				PinnedTruck:  p.Constraints.PinnedTruck,
				Delayed:      p.Constraints.Delayed,
				WrongAddress: p.Constraints.WrongAddress,
				CoShipsWith:  p.Constraints.CoShipsWith,
			},
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *PackageHandler) classify(pkgs []*domain.Package) (map[int]policy.Classification, error) {
	rules := h.Rules
	if rules == nil {
		rules = policy.DefaultRuleSet()
	}

	if err := rules.ParseNotes(pkgs); err != nil {
		return nil, fmt.Errorf("classify packages: %w", err)
	}
	store, err := domain.StoreFrom(pkgs)
	if err != nil {
		return nil, fmt.Errorf("classify packages: %w", err)
	}
	pol, err := policy.New(rules, store)
	if err != nil {
		return nil, fmt.Errorf("classify packages: %w", err)
	}
	classes, err := pol.ClassifyAll()
	if err != nil {
		return nil, fmt.Errorf("classify packages: %w", err)
	}

	out := make(map[int]policy.Classification, len(classes))
	for _, c := range classes {
		out[c.PackageID] = c
	}
	return out, nil
}
