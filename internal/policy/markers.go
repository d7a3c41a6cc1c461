package policy

import (
	"delivery-planner/internal/domain"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Markers are the note substrings that signal a delivery constraint.
// Matching is case-insensitive; an empty marker disables that constraint.
type Markers struct {
	// PinnedTruck must be followed by a truck number, e.g. "Can only be on truck 2".
	PinnedTruck string `yaml:"pinned_truck"`
	Delayed     string `yaml:"delayed"`
	// WrongAddress flags packages whose listed address will be corrected later.
	WrongAddress string `yaml:"wrong_address"`
	// CoShipsWith must be followed by package ids, e.g. "Must be delivered with 15, 19".
	CoShipsWith string `yaml:"co_ships_with"`
}

func DefaultMarkers() Markers {
	return Markers{
		PinnedTruck:  "Can only be on truck",
		Delayed:      "Delayed on flight",
		WrongAddress: "Wrong address listed",
		CoShipsWith:  "Must be delivered with",
	}
}

var digits = regexp.MustCompile(`\d+`)

// Parse normalizes free-form notes into typed constraints.
func (m Markers) Parse(notes string) (domain.Constraints, error) {
	var c domain.Constraints
	if strings.TrimSpace(notes) == "" {
		return c, nil
	}

	c.Delayed = containsFold(notes, m.Delayed)
	c.WrongAddress = containsFold(notes, m.WrongAddress)

	if m.PinnedTruck != "" && containsFold(notes, m.PinnedTruck) {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(m.PinnedTruck) + `\s*#?(\d+)`)
		match := re.FindStringSubmatch(notes)
		if match == nil {
			return domain.Constraints{}, &domain.InvalidValueError{
				Param:  "notes",
				Reason: fmt.Sprintf("%q is not followed by a truck number", m.PinnedTruck),
			}
		}
		truck, err := strconv.Atoi(match[1])
		if err != nil || truck < 1 {
			return domain.Constraints{}, &domain.InvalidValueError{
				Param:  "notes",
				Reason: fmt.Sprintf("invalid truck number %q", match[1]),
			}
		}
		c.PinnedTruck = truck
	}

	if m.CoShipsWith != "" && containsFold(notes, m.CoShipsWith) {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(m.CoShipsWith) + `\s*((?:\d+\s*(?:,|and|&)?\s*)+)`)
		match := re.FindStringSubmatch(notes)
		if match == nil {
			return domain.Constraints{}, &domain.InvalidValueError{
				Param:  "notes",
				Reason: fmt.Sprintf("%q is not followed by package ids", m.CoShipsWith),
			}
		}
		for _, s := range digits.FindAllString(match[1], -1) {
			id, _ := strconv.Atoi(s)
			c.CoShipsWith = append(c.CoShipsWith, id)
		}
	}

	return c, nil
}

func containsFold(s, substr string) bool {
	if substr == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
