package search

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-almanac/internal/astro"
)

const secondDays = 1.0 / 86400

type tally struct {
	evals, iters int
}

func (c *tally) Evaluation() { c.evals++ }
func (c *tally) Iteration()  { c.iters++ }

func linear(root float64) Func {
	return func(t astro.Time) (float64, error) {
		return t.UT - root, nil
	}
}

func at(ut float64) astro.Time {
	return astro.MustTime(ut)
}

func TestRoot(t *testing.T) {
	tests := []struct {
		name string
		f    Func
		t1   float64
		t2   float64
		want float64
	}{
		{"linear", linear(0.3), 0, 1, 0.3},
		{"falling", func(t astro.Time) (float64, error) { return 5 - 2*t.UT, nil }, 0, 10, 2.5},
		{"flat cubic", func(t astro.Time) (float64, error) { return math.Pow(t.UT-0.37, 3), nil }, 0, 1, 0.37},
		{"sine", func(t astro.Time) (float64, error) { return math.Sin(t.UT), nil }, 2, 4, math.Pi},
		{"root at end", linear(1), 0, 1, 1},
		{"far from J2000", linear(-700000.25), -700001, -700000, -700000.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Root(tt.f, at(tt.t1), at(tt.t2), Options{})
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.UT, secondDays)
		})
	}
}

func TestRoot_Tolerance(t *testing.T) {
	f := func(t astro.Time) (float64, error) { return math.Atan(50 * (t.UT - 0.123456)), nil }
	got, err := Root(f, at(0), at(1), Options{Tolerance: 0.001})
	require.NoError(t, err)
	assert.InDelta(t, 0.123456, got.UT, 0.001*secondDays)
}

func TestRoot_Errors(t *testing.T) {
	_, err := Root(linear(5), at(0), at(1), Options{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Root(linear(0.5), at(1), at(0), Options{})
	assert.ErrorIs(t, err, astro.ErrInvalidArgument)

	nan := func(t astro.Time) (float64, error) { return math.NaN(), nil }
	_, err = Root(nan, at(0), at(1), Options{})
	assert.ErrorIs(t, err, astro.ErrInvalidArgument)

	boom := errors.New("boom")
	failing := func(t astro.Time) (float64, error) { return 0, boom }
	_, err = Root(failing, at(0), at(1), Options{})
	assert.ErrorIs(t, err, boom)

	slow := func(t astro.Time) (float64, error) { return math.Pow(t.UT-0.37, 3), nil }
	_, err = Root(slow, at(0), at(100), Options{MaxIterations: 3})
	assert.ErrorIs(t, err, ErrDidNotConverge)
	assert.False(t, errors.Is(err, ErrNotFound), "convergence failure must not look like absence")
}

func TestRoot_Deterministic(t *testing.T) {
	f := func(t astro.Time) (float64, error) { return math.Cos(3*t.UT) + 0.2, nil }
	a, err := Root(f, at(0), at(1), Options{})
	require.NoError(t, err)
	b, err := Root(f, at(0), at(1), Options{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRoot_Counter(t *testing.T) {
	var c tally
	_, err := Root(linear(0.3), at(0), at(1), Options{Counter: &c})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, c.evals, 3)
	assert.Positive(t, c.iters)
	assert.LessOrEqual(t, c.iters, DefaultMaxIterations)
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	assert.Equal(t, DefaultMaxIterations, o.Iterations())
	assert.InDelta(t, secondDays, o.ToleranceDays(), 1e-18)
	assert.InDelta(t, 0.5*secondDays, o.WithTolerance(0.5).ToleranceDays(), 1e-18)
	assert.NotPanics(t, o.Iterate)
}

func TestScan(t *testing.T) {
	f := func(t astro.Time) (float64, error) { return math.Sin(2 * math.Pi * t.UT), nil }
	got, err := Scan(f, at(0.1), at(3), 0.1, Options{})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got.UT, secondDays)

	_, err = Scan(f, at(0.1), at(0.4), 0.1, Options{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Scan(f, at(0), at(1), 0, Options{})
	assert.ErrorIs(t, err, astro.ErrInvalidArgument)
}

func TestExtremum(t *testing.T) {
	bowl := func(t astro.Time) (float64, error) { return (t.UT - 2) * (t.UT - 2), nil }
	hill := func(t astro.Time) (float64, error) { return 3 - (t.UT+1)*(t.UT+1), nil }

	got, err := Minimum(bowl, at(0), at(5), 0.01, Options{})
	require.NoError(t, err)
	assert.InDelta(t, 2, got.UT, secondDays)

	got, err = Maximum(hill, at(-3), at(4), 0.01, Options{})
	require.NoError(t, err)
	assert.InDelta(t, -1, got.UT, secondDays)

	// The bowl is rising over the whole window.
	_, err = Minimum(bowl, at(3), at(5), 0.01, Options{})
	assert.ErrorIs(t, err, ErrNotFound)

	// A minimum is not a maximum.
	_, err = Maximum(bowl, at(0), at(5), 0.01, Options{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSlope(t *testing.T) {
	f := func(t astro.Time) (float64, error) { return 4*t.UT + 1, nil }
	m, err := Slope(f, 0.1)(at(7))
	require.NoError(t, err)
	assert.InDelta(t, 4, m, 1e-9)
}

func TestSignChange(t *testing.T) {
	f := linear(10.05)
	b, err := SignChange(f, at(0), 1, 20, Options{})
	require.NoError(t, err)
	assert.InDelta(t, 10, b.T1.UT, 1e-9)
	assert.InDelta(t, 11, b.T2.UT, 1e-9)
	assert.Negative(t, b.F1)
	assert.Positive(t, b.F2)

	root, err := b.Root(f, Options{})
	require.NoError(t, err)
	assert.InDelta(t, 10.05, root.UT, secondDays)

	_, err = SignChange(f, at(0), 1, 5, Options{})
	assert.ErrorIs(t, err, ErrNoBracket)
}

func TestSeed(t *testing.T) {
	calls := 0
	got, err := Seed(at(0), 10, func(t astro.Time) (int, astro.Time, bool, error) {
		calls++
		if t.UT >= 3 {
			return int(t.UT), t, true, nil
		}
		return 0, t.AddDays(1), false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, got)
	assert.Equal(t, 4, calls)

	_, err = Seed(at(0), 10, func(t astro.Time) (int, astro.Time, bool, error) {
		return 0, t, false, nil
	})
	assert.ErrorIs(t, err, ErrNoBracket)

	boom := errors.New("boom")
	_, err = Seed(at(0), 10, func(t astro.Time) (int, astro.Time, bool, error) {
		return 0, t, false, boom
	})
	assert.ErrorIs(t, err, boom)
}
