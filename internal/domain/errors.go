package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPackageNotFound    = errors.New("package not found")
	ErrTruckNotFound      = errors.New("truck not found")
	ErrCapacityExceeded   = errors.New("capacity exceeded")
	ErrConstraintConflict = errors.New("constraint conflict")
	ErrInvalidValue       = errors.New("value is invalid")
)

// Returned by PackageStore lookups for an unknown package id.
type PackageNotFoundError struct {
	PackageID int
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("%s: package_id=%d", ErrPackageNotFound, e.PackageID)
}

func (e *PackageNotFoundError) Unwrap() error { return ErrPackageNotFound }

// Returned when a package is loaded onto a truck with no remaining slots.
type CapacityExceededError struct {
	TruckID   int
	Capacity  int
	PackageID int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf(
		"%s: truck %d is full (capacity=%d) loading package_id=%d",
		ErrCapacityExceeded, e.TruckID, e.Capacity, e.PackageID,
	)
}

func (e *CapacityExceededError) Unwrap() error { return ErrCapacityExceeded }

// Returned when a package is required on two mutually exclusive trucks.
type ConstraintConflictError struct {
	PackageID int
	Trucks    []int
	Reason    string
}

func (e *ConstraintConflictError) Error() string {
	return fmt.Sprintf(
		"%s: package_id=%d trucks=%v: %s",
		ErrConstraintConflict, e.PackageID, e.Trucks, e.Reason,
	)
}

func (e *ConstraintConflictError) Unwrap() error { return ErrConstraintConflict }

// Returned for malformed input values (ids, deadlines, matrices).
type InvalidValueError struct {
	Param  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidValue, e.Param, e.Reason)
}

func (e *InvalidValueError) Unwrap() error { return ErrInvalidValue }

func invalid(param, format string, args ...any) error {
	return &InvalidValueError{Param: param, Reason: fmt.Sprintf(format, args...)}
}
