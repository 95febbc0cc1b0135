package search

import (
	"fmt"
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
)

// Scan walks [t1, t2] in steps of stepDays and returns the first root of f.
func Scan(f Func, t1, t2 astro.Time, stepDays float64, opts Options) (astro.Time, error) {
	if !(stepDays > 0) || math.IsInf(stepDays, 0) {
		return astro.Time{}, fmt.Errorf("%w: scan step %v", astro.ErrInvalidArgument, stepDays)
	}
	if t2.UT < t1.UT {
		return astro.Time{}, fmt.Errorf("%w: scan window ends before it starts", astro.ErrInvalidArgument)
	}

	ta := t1
	fa, err := opts.Eval(f, ta)
	if err != nil {
		return astro.Time{}, err
	}
	if fa == 0 {
		return ta, nil
	}
	for ta.UT < t2.UT {
		tb, err := ta.Add(stepDays)
		if err != nil || tb.UT > t2.UT {
			tb = t2
		}
		fb, err := opts.Eval(f, tb)
		if err != nil {
			return astro.Time{}, err
		}
		if fb == 0 || (fa > 0) != (fb > 0) {
			return RootFrom(f, ta, tb, fa, fb, opts)
		}
		ta, fa = tb, fb
	}
	return astro.Time{}, fmt.Errorf("%w: no root between %v and %v", ErrNotFound, t1, t2)
}

// Slope returns the central-difference derivative of f per day, sampled
// dtDays apart.
func Slope(f Func, dtDays float64) Func {
	return func(t astro.Time) (float64, error) {
		y1, err := f(t.AddDays(-dtDays / 2))
		if err != nil {
			return 0, err
		}
		y2, err := f(t.AddDays(dtDays / 2))
		if err != nil {
			return 0, err
		}
		return (y2 - y1) / dtDays, nil
	}
}

// Minimum finds the local minimum of f in [t1, t2] as a root of its slope.
// f must be falling at t1 and rising at t2.
func Minimum(f Func, t1, t2 astro.Time, dtDays float64, opts Options) (astro.Time, error) {
	return extremum(Slope(f, dtDays), t1, t2, opts)
}

// Maximum finds the local maximum of f in [t1, t2].
func Maximum(f Func, t1, t2 astro.Time, dtDays float64, opts Options) (astro.Time, error) {
	slope := Slope(f, dtDays)
	return extremum(func(t astro.Time) (float64, error) {
		m, err := slope(t)
		return -m, err
	}, t1, t2, opts)
}

func extremum(slope Func, t1, t2 astro.Time, opts Options) (astro.Time, error) {
	m1, err := opts.Eval(slope, t1)
	if err != nil {
		return astro.Time{}, err
	}
	m2, err := opts.Eval(slope, t2)
	if err != nil {
		return astro.Time{}, err
	}
	if m1 > 0 || m2 < 0 {
		return astro.Time{}, fmt.Errorf("%w: no extremum between %v and %v", ErrNotFound, t1, t2)
	}
	return RootFrom(slope, t1, t2, m1, m2, opts)
}
