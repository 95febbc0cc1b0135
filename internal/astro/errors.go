package astro

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidDate reports a calendar date or instant outside the supported range.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidArgument reports a non-finite number, an out-of-range angle,
	// an unsupported body or frame, or a degenerate vector.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDidNotConverge reports an iterative computation that exhausted its
	// step budget without meeting its tolerance.
	ErrDidNotConverge = errors.New("did not converge")
)

// checkFinite returns ErrInvalidArgument when x is NaN or infinite.
func checkFinite(name string, x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmt.Errorf("%w: %s is not finite (%v)", ErrInvalidArgument, name, x)
	}
	return nil
}

// CheckFinite is the exported form of checkFinite for callers in sibling packages.
func CheckFinite(name string, x float64) error {
	return checkFinite(name, x)
}
