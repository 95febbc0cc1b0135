package search

import (
	"fmt"
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
)

// Root finds t in [t1, t2] where f(t) = 0. f must change sign across the
// interval; equal signs at both ends give ErrNotFound.
func Root(f Func, t1, t2 astro.Time, opts Options) (astro.Time, error) {
	f1, err := opts.Eval(f, t1)
	if err != nil {
		return astro.Time{}, err
	}
	f2, err := opts.Eval(f, t2)
	if err != nil {
		return astro.Time{}, err
	}
	return RootFrom(f, t1, t2, f1, f2, opts)
}

// RootFrom is Root with the endpoint values already known.
//
// The interval is narrowed by regula falsi with the Illinois modification,
// falling back to bisection whenever two steps fail to halve the bracket.
// Convergence is declared once the bracket is narrower than the tolerance.
func RootFrom(f Func, t1, t2 astro.Time, f1, f2 float64, opts Options) (astro.Time, error) {
	if t2.UT < t1.UT {
		return astro.Time{}, fmt.Errorf("%w: search window ends before it starts (%v > %v)", astro.ErrInvalidArgument, t1, t2)
	}
	switch {
	case f1 == 0:
		return t1, nil
	case f2 == 0:
		return t2, nil
	case (f1 > 0) == (f2 > 0):
		return astro.Time{}, fmt.Errorf("%w: no sign change between %v and %v", ErrNotFound, t1, t2)
	}

	tol := opts.ToleranceDays()
	a, b := t1.UT, t2.UT
	fa, fb := f1, f2
	side := 0
	w1, w2 := math.Inf(1), math.Inf(1) // bracket widths one and two steps back

	for range opts.Iterations() {
		opts.Iterate()
		width := b - a
		if width <= tol {
			return astro.NewTime(interpolate(a, b, fa, fb))
		}

		x := (a*fb - b*fa) / (fb - fa)
		if !(x > a && x < b) || width > 0.5*w2 {
			x = a + 0.5*width
		}
		w2, w1 = w1, width

		// Stay at least half a tolerance inside the bracket so that a
		// root hugging one end still collapses the interval.
		if x-a < 0.5*tol {
			x = a + 0.5*tol
		} else if b-x < 0.5*tol {
			x = b - 0.5*tol
		}

		tx, err := astro.NewTime(x)
		if err != nil {
			return astro.Time{}, err
		}
		fx, err := opts.Eval(f, tx)
		if err != nil {
			return astro.Time{}, err
		}
		if fx == 0 {
			return tx, nil
		}

		if (fx > 0) == (fb > 0) {
			b, fb = x, fx
			if side == -1 {
				fa *= 0.5
			}
			side = -1
		} else {
			a, fa = x, fx
			if side == +1 {
				fb *= 0.5
			}
			side = +1
		}
	}
	return astro.Time{}, fmt.Errorf("%w: root between %v and %v after %d iterations",
		ErrDidNotConverge, t1, t2, opts.Iterations())
}

// interpolate returns the secant estimate inside [a, b], or the midpoint.
func interpolate(a, b, fa, fb float64) float64 {
	if fb != fa {
		if x := (a*fb - b*fa) / (fb - fa); x >= a && x <= b {
			return x
		}
	}
	return a + 0.5*(b-a)
}
