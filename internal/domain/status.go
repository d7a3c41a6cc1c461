package domain

import (
	"fmt"
	"strings"
)

// Delivery progress of a package. Only the delivery simulation mutates it.
type Status string

const (
	StatusAtHub     Status = "at_hub"
	StatusEnRoute   Status = "en_route"
	StatusDelivered Status = "delivered"
)

// ParseStatus maps stored or user supplied text to a Status.
// An empty value is treated as at_hub.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "at_hub", "at hub", "at the hub":
		return StatusAtHub, nil
	case "en_route", "en route":
		return StatusEnRoute, nil
	case "delivered":
		return StatusDelivered, nil
	}
	return "", invalid("status", "unknown status %q", s)
}

func (s Status) String() string { return string(s) }

func (s *Status) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return fmt.Errorf("unmarshal status: %w", err)
	}
	*s = parsed
	return nil
}
