package search

import (
	"fmt"
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
)

// Step is one attempt of a seeding walk starting at t. It either reports
// done with a result, or returns the strictly later instant the walk
// resumes from.
type Step[T any] func(t astro.Time) (result T, next astro.Time, done bool, err error)

// Seed runs step from start until it reports done, for at most maxAttempts.
// Running out of attempts gives ErrNoBracket.
func Seed[T any](start astro.Time, maxAttempts int, step Step[T]) (T, error) {
	var zero T
	t := start
	for range maxAttempts {
		res, next, done, err := step(t)
		if err != nil {
			return zero, err
		}
		if done {
			return res, nil
		}
		if !(next.UT > t.UT) {
			return zero, fmt.Errorf("%w: walk from %v did not advance", ErrNoBracket, t)
		}
		t = next
	}
	return zero, fmt.Errorf("%w: %d attempts from %v", ErrNoBracket, maxAttempts, start)
}

// Bracket is an interval with opposite-signed (or zero) function values.
type Bracket struct {
	T1, T2 astro.Time
	F1, F2 float64
}

// SignChange walks forward from start in steps of stepDays until f changes
// sign, trying at most maxSteps steps.
func SignChange(f Func, start astro.Time, stepDays float64, maxSteps int, opts Options) (Bracket, error) {
	if !(stepDays > 0) || math.IsInf(stepDays, 0) {
		return Bracket{}, fmt.Errorf("%w: seeding step %v", astro.ErrInvalidArgument, stepDays)
	}
	f1, err := opts.Eval(f, start)
	if err != nil {
		return Bracket{}, err
	}
	return Seed(start, maxSteps, func(t1 astro.Time) (Bracket, astro.Time, bool, error) {
		t2, err := t1.Add(stepDays)
		if err != nil {
			return Bracket{}, t1, false, err
		}
		f2, err := opts.Eval(f, t2)
		if err != nil {
			return Bracket{}, t2, false, err
		}
		if f1*f2 <= 0 {
			return Bracket{T1: t1, T2: t2, F1: f1, F2: f2}, t2, true, nil
		}
		f1 = f2
		return Bracket{}, t2, false, nil
	})
}

// Root finds the zero inside the bracket.
func (b Bracket) Root(f Func, opts Options) (astro.Time, error) {
	return RootFrom(f, b.T1, b.T2, b.F1, b.F2, opts)
}
