package policy

import (
	"delivery-planner/internal/domain"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Priority is the loading urgency of a package: 1 is loaded first.
type Priority int

const (
	PriorityUrgent      Priority = 1
	PriorityConstrained Priority = 2
	PriorityStandard    Priority = 3
)

// Priorities lists every class in loading order.
var Priorities = []Priority{PriorityUrgent, PriorityConstrained, PriorityStandard}

func (p Priority) Valid() bool { return p >= PriorityUrgent && p <= PriorityStandard }

// Predicate names a package property a Rule tests.
type Predicate string

const (
	WhenDeadline     Predicate = "deadline"
	WhenShipTogether Predicate = "ship_together"
	WhenPinnedTruck  Predicate = "pinned_truck"
	WhenDelayed      Predicate = "delayed"
	WhenWrongAddress Predicate = "wrong_address"
)

func (p Predicate) Valid() bool {
	switch p {
	case WhenDeadline, WhenShipTogether, WhenPinnedTruck, WhenDelayed, WhenWrongAddress:
		return true
	}
	return false
}

// Rule sets Priority when its predicate holds.
type Rule struct {
	When     Predicate `yaml:"when"`
	Priority Priority  `yaml:"priority"`
}

// Group is a set of packages that must travel together on Truck.
type Group struct {
	Truck    int   `yaml:"truck"`
	Packages []int `yaml:"packages"`
}

// RuleSet is the data-driven assignment table. Rules are applied in order and
// a later matching rule overrides an earlier one.
type RuleSet struct {
	DefaultPriority Priority `yaml:"default_priority"`
	Rules           []Rule   `yaml:"rules"`
	Groups          []Group  `yaml:"groups"`
	Markers         Markers  `yaml:"markers"`
}

// DefaultRuleSet reproduces the reference dispatch table.
//
// Note the wrong-address rule runs last, so a grouped package with a wrong
// address drops to priority 3 while still being pinned to its group's truck.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		DefaultPriority: PriorityStandard,
		Rules: []Rule{
			{When: WhenDeadline, Priority: PriorityUrgent},
			{When: WhenShipTogether, Priority: PriorityUrgent},
			{When: WhenPinnedTruck, Priority: PriorityConstrained},
			{When: WhenDelayed, Priority: PriorityConstrained},
			{When: WhenWrongAddress, Priority: PriorityStandard},
		},
		Groups: []Group{
			{Truck: 1, Packages: []int{13, 14, 15, 16, 19, 20}},
		},
		Markers: DefaultMarkers(),
	}
}

// Validate checks priorities, predicate names and group membership.
func (r *RuleSet) Validate() error {
	if !r.DefaultPriority.Valid() {
		return fmt.Errorf("rule set: default_priority %d must be between 1 and 3", r.DefaultPriority)
	}

	for i, rule := range r.Rules {
		if !rule.When.Valid() {
			return fmt.Errorf("rule set: rule #%d: unknown predicate %q", i+1, rule.When)
		}
		if !rule.Priority.Valid() {
			return fmt.Errorf("rule set: rule #%d: priority %d must be between 1 and 3", i+1, rule.Priority)
		}
	}

	seen := make(map[int]int)
	for gi, g := range r.Groups {
		if g.Truck < 1 {
			return fmt.Errorf("rule set: group #%d: truck must be positive, got %d", gi+1, g.Truck)
		}
		if len(g.Packages) == 0 {
			return fmt.Errorf("rule set: group #%d: must list at least one package", gi+1)
		}
		for _, id := range g.Packages {
			if id <= 0 {
				return fmt.Errorf("rule set: group #%d: invalid package id %d", gi+1, id)
			}
			if prev, ok := seen[id]; ok {
				return fmt.Errorf("rule set: package_id=%d listed in groups #%d and #%d", id, prev+1, gi+1)
			}
			seen[id] = gi
		}
	}

	return nil
}

// LoadRuleSet decodes a YAML rule table. Omitted markers fall back to the
// defaults; an omitted rules list keeps the reference order.
func LoadRuleSet(r io.Reader) (*RuleSet, error) {
	rs := DefaultRuleSet()
	rs.Groups = nil

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(rs); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("load rule set: decode yaml: %w", err)
	}

	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("load rule set: %w", err)
	}
	return rs, nil
}

// LoadRuleSetFile reads a YAML rule table from path.
func LoadRuleSetFile(path string) (*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load rule set: open %q: %w", path, err)
	}
	defer f.Close()

	return LoadRuleSet(f)
}

// ParseNotes normalizes every package's notes using the rule set markers.
func (r *RuleSet) ParseNotes(pkgs []*domain.Package) error {
	for _, p := range pkgs {
		c, err := r.Markers.Parse(p.Notes)
		if err != nil {
			return fmt.Errorf("parse notes: package_id=%d: %w", p.PackageID, err)
		}
		p.Constraints = c
	}
	return nil
}
