package policy

import (
	"delivery-planner/internal/domain"
	"fmt"
	"slices"
)

// Classification is the assignment decision for one package.
type Classification struct {
	PackageID int
	Priority  Priority
	// RequiredTruck is the truck the package is pinned to; 0 means any truck.
	RequiredTruck int
	// Group is the index of the ship-together group, or -1.
	Group int
}

// Pinned reports whether the package must ride a specific truck.
func (c Classification) Pinned() bool { return c.RequiredTruck > 0 }

// Policy evaluates a RuleSet against the packages of one planning run.
// It never mutates the store.
type Policy struct {
	rules   *RuleSet
	store   *domain.PackageStore
	groupOf map[int]int
}

func New(rules *RuleSet, store *domain.PackageStore) (*Policy, error) {
	if rules == nil || store == nil {
		return nil, fmt.Errorf("new policy: rules and store must be non-nil")
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("new policy: %w", err)
	}

	groupOf := make(map[int]int)
	for gi, g := range rules.Groups {
		for _, id := range g.Packages {
			groupOf[id] = gi
		}
	}

	return &Policy{rules: rules, store: store, groupOf: groupOf}, nil
}

// AssignedTruck returns the priority class of a package.
func (p *Policy) AssignedTruck(id int) (Priority, error) {
	pkg, err := p.store.Get(id)
	if err != nil {
		return 0, fmt.Errorf("assigned truck: %w", err)
	}
	return p.priority(pkg), nil
}

func (p *Policy) priority(pkg *domain.Package) Priority {
	priority := p.rules.DefaultPriority
	for _, rule := range p.rules.Rules {
		if p.matches(rule.When, pkg) {
			priority = rule.Priority
		}
	}
	return priority
}

func (p *Policy) matches(when Predicate, pkg *domain.Package) bool {
	switch when {
	case WhenDeadline:
		return pkg.Deadline.IsConcrete()
	case WhenShipTogether:
		_, ok := p.groupOf[pkg.PackageID]
		return ok
	case WhenPinnedTruck:
		return pkg.Constraints.Pinned()
	case WhenDelayed:
		return pkg.Constraints.Delayed
	case WhenWrongAddress:
		return pkg.Constraints.WrongAddress
	}
	return false
}

// GroupOf returns the ship-together group index of a package id.
func (p *Policy) GroupOf(id int) (int, bool) {
	gi, ok := p.groupOf[id]
	return gi, ok
}

// Classify returns the priority and the hard truck requirement of a package.
//
// A package pinned by its notes to one truck and by its group to another, or
// whose notes name co-shipping partners outside its group, is reported as a
// ConstraintConflictError instead of letting rule order decide.
func (p *Policy) Classify(id int) (Classification, error) {
	pkg, err := p.store.Get(id)
	if err != nil {
		return Classification{}, fmt.Errorf("classify: %w", err)
	}

	c := Classification{
		PackageID: id,
		Priority:  p.priority(pkg),
		Group:     -1,
	}

	if gi, ok := p.groupOf[id]; ok {
		c.Group = gi
		c.RequiredTruck = p.rules.Groups[gi].Truck
	}

	if pin := pkg.Constraints.PinnedTruck; pin > 0 {
		if c.RequiredTruck > 0 && c.RequiredTruck != pin {
			return Classification{}, &domain.ConstraintConflictError{
				PackageID: id,
				Trucks:    []int{c.RequiredTruck, pin},
				Reason:    fmt.Sprintf("ship-together group #%d is pinned to truck %d but notes require truck %d", c.Group+1, c.RequiredTruck, pin),
			}
		}
		c.RequiredTruck = pin
	}

	for _, partner := range pkg.Constraints.CoShipsWith {
		if _, err := p.store.Get(partner); err != nil {
			return Classification{}, fmt.Errorf("classify: package_id=%d ships with: %w", id, err)
		}
		pg, ok := p.groupOf[partner]
		if c.Group < 0 || !ok || pg != c.Group {
			return Classification{}, &domain.ConstraintConflictError{
				PackageID: id,
				Trucks:    p.partnerTrucks(c, partner),
				Reason:    fmt.Sprintf("must ship with package_id=%d but they are not in the same group", partner),
			}
		}
	}

	return c, nil
}

func (p *Policy) partnerTrucks(c Classification, partner int) []int {
	trucks := []int{c.RequiredTruck}
	if gi, ok := p.groupOf[partner]; ok {
		trucks = append(trucks, p.rules.Groups[gi].Truck)
	}
	return slices.Compact(trucks)
}

// ClassifyAll classifies every package in the store in ascending id order.
func (p *Policy) ClassifyAll() ([]Classification, error) {
	ids := p.store.IDs()
	out := make([]Classification, 0, len(ids))
	for _, id := range ids {
		c, err := p.Classify(id)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
