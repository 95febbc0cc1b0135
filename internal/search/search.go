// Package search finds the instants where a scalar function of time
// crosses zero, given a bracketing interval or a way to seed one.
package search

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
)

var (
	// ErrNotFound reports that no root exists in the searched window.
	ErrNotFound = errors.New("event not found")

	// ErrNoBracket reports that a seeding walk could not establish a
	// bracketing interval within its allowed extent.
	ErrNoBracket = errors.New("no bracketing interval")

	// ErrDidNotConverge reports that the iteration budget ran out.
	ErrDidNotConverge = astro.ErrDidNotConverge
)

const (
	// DefaultTolerance is the root tolerance in seconds.
	DefaultTolerance = 1.0

	// DefaultMaxIterations caps refinement steps per root.
	DefaultMaxIterations = 100
)

// Func is a scalar function of time.
type Func func(t astro.Time) (float64, error)

// Counter observes search effort.
type Counter interface {
	Evaluation() // one call of the searched function
	Iteration()  // one refinement step
}

// Options tune a search. The zero value selects the defaults.
type Options struct {
	Tolerance     float64 // seconds
	MaxIterations int
	Counter       Counter
}

// WithTolerance returns a copy of o using tol seconds.
func (o Options) WithTolerance(tol float64) Options {
	o.Tolerance = tol
	return o
}

// ToleranceDays returns the tolerance in days.
func (o Options) ToleranceDays() float64 {
	tol := o.Tolerance
	if tol <= 0 || math.IsNaN(tol) {
		tol = DefaultTolerance
	}
	return tol / 86400
}

// Iterations returns the iteration cap.
func (o Options) Iterations() int {
	if o.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return o.MaxIterations
}

// Iterate records one refinement step with the counter, if any.
func (o Options) Iterate() {
	if o.Counter != nil {
		o.Counter.Iteration()
	}
}

// Eval calls f at t, recording the evaluation and rejecting non-finite values.
func (o Options) Eval(f Func, t astro.Time) (float64, error) {
	if o.Counter != nil {
		o.Counter.Evaluation()
	}
	y, err := f(t)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, fmt.Errorf("%w: search function is %v at %v", astro.ErrInvalidArgument, y, t)
	}
	return y, nil
}
