package ising

import (
	"errors"
	"fmt"
	"math"
)

// Error kinds for simulation operations.
var (
	// ErrDomain indicates a parameter that would make the numerics undefined
	// (non-positive temperature, odd checkerboard length, empty sample).
	ErrDomain = errors.New("ising: domain error")

	// ErrResource indicates a compute backend or buffer handle is unavailable.
	ErrResource = errors.New("ising: resource unavailable")

	// ErrConsistency indicates lattice content outside {-1, +1}.
	ErrConsistency = errors.New("ising: inconsistent lattice")
)

// Error wraps an error kind with the operation that raised it.
type Error struct {
	Op   string
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%v: %s: %s", e.Kind, e.Op, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func DomainErrorf(op, format string, args ...any) error {
	return &Error{Op: op, Kind: ErrDomain, Msg: fmt.Sprintf(format, args...)}
}

func ResourceErrorf(op, format string, args ...any) error {
	return &Error{Op: op, Kind: ErrResource, Msg: fmt.Sprintf(format, args...)}
}

func ConsistencyErrorf(op, format string, args ...any) error {
	return &Error{Op: op, Kind: ErrConsistency, Msg: fmt.Sprintf(format, args...)}
}

// ValidateParams checks the (temperature, field) pair of an update call.
func ValidateParams(op string, temperature, field float64) error {
	if math.IsNaN(temperature) || math.IsInf(temperature, 0) || temperature <= 0 {
		return DomainErrorf(op, "temperature must be positive and finite, got %v", temperature)
	}
	if math.IsNaN(field) || math.IsInf(field, 0) {
		return DomainErrorf(op, "field must be finite, got %v", field)
	}
	return nil
}

// ValidateSteps checks a Monte Carlo step count.
func ValidateSteps(op string, mcs int) error {
	if mcs <= 0 {
		return DomainErrorf(op, "mcs must be positive, got %d", mcs)
	}
	return nil
}
