package domain

import "fmt"

// Fleet owns one Truck record per truck id, numbered 1..N.
type Fleet struct {
	trucks []*Truck
}

// NewFleet builds size trucks with identical capacity, all starting at hub.
func NewFleet(size int, capacity int, hub int) (*Fleet, error) {
	if size < 1 {
		return nil, invalid("fleet size", "must be at least 1, got %d", size)
	}
	if capacity < 1 {
		return nil, invalid("truck capacity", "must be at least 1, got %d", capacity)
	}

	trucks := make([]*Truck, 0, size)
	for i := 1; i <= size; i++ {
		trucks = append(trucks, NewTruck(i, capacity, hub))
	}
	return &Fleet{trucks: trucks}, nil
}

// Truck returns the record for id.
func (f *Fleet) Truck(id int) (*Truck, error) {
	if id < 1 || id > len(f.trucks) {
		return nil, fmt.Errorf("%w: truck %d (fleet size %d)", ErrTruckNotFound, id, len(f.trucks))
	}
	return f.trucks[id-1], nil
}

// Trucks returns every truck in id order.
func (f *Fleet) Trucks() []*Truck {
	return append([]*Truck(nil), f.trucks...)
}

func (f *Fleet) Size() int { return len(f.trucks) }

// Remaining sums free slots across the fleet.
func (f *Fleet) Remaining() int {
	total := 0
	for _, t := range f.trucks {
		total += t.Remaining()
	}
	return total
}
