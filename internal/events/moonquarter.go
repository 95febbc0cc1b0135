package events

import (
	"fmt"
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/search"
)

const (
	// MeanSynodicMonth is the average time between new moons, in days.
	MeanSynodicMonth = 29.530588

	// phaseUncertainty pads the linear phase estimate on each side.
	phaseUncertainty = 1.5

	quarterSkipDays = 6
)

// Quarter names a lunar quarter.
type Quarter int

const (
	NewMoon Quarter = iota
	FirstQuarter
	FullMoon
	ThirdQuarter
)

func (q Quarter) String() string {
	switch q {
	case NewMoon:
		return "new moon"
	case FirstQuarter:
		return "first quarter"
	case FullMoon:
		return "full moon"
	case ThirdQuarter:
		return "third quarter"
	default:
		return fmt.Sprintf("Quarter(%d)", int(q))
	}
}

// MoonQuarter is one of the four principal lunar phases.
type MoonQuarter struct {
	Quarter Quarter
	Time    astro.Time
}

// SearchMoonPhase finds the first time at or after start when the Moon's
// phase angle equals targetLon, looking no further than limitDays ahead.
// It returns search.ErrNotFound when the phase falls outside the window.
func (f *Finder) SearchMoonPhase(targetLon float64, start astro.Time, limitDays float64) (astro.Time, error) {
	if err := checkTarget("phase", targetLon); err != nil {
		return astro.Time{}, err
	}
	if err := astro.CheckFinite("limit", limitDays); err != nil {
		return astro.Time{}, err
	}
	if !(limitDays > 0) {
		return astro.Time{}, fmt.Errorf("%w: phase search limit %v", astro.ErrInvalidArgument, limitDays)
	}

	phase := longitudeFunc(f.MoonPhase, targetLon)
	ya, err := phase(start)
	if err != nil {
		return astro.Time{}, err
	}
	if ya > 0 {
		ya -= 360 // the next occurrence, not the one just passed
	}

	est := -(MeanSynodicMonth * ya) / 360
	dt1 := math.Max(0, est-phaseUncertainty)
	if dt1 > limitDays {
		return astro.Time{}, fmt.Errorf("%w: phase %v° not within %v days of %v", search.ErrNotFound, targetLon, limitDays, start)
	}
	dt2 := math.Min(limitDays, est+phaseUncertainty)
	t1, err := start.Add(dt1)
	if err != nil {
		return astro.Time{}, err
	}
	t2, err := start.Add(dt2)
	if err != nil {
		return astro.Time{}, err
	}
	return f.root(phase, t1, t2)
}

// SearchMoonQuarter finds the first lunar quarter at or after start.
func (f *Finder) SearchMoonQuarter(start astro.Time) (MoonQuarter, error) {
	angle, err := f.MoonPhase(start)
	if err != nil {
		return MoonQuarter{}, err
	}
	q := Quarter((1 + int(math.Floor(angle/90))) % 4)
	t, err := f.SearchMoonPhase(90*float64(q), start, 10)
	if err != nil {
		return MoonQuarter{}, err
	}
	return MoonQuarter{Quarter: q, Time: t}, nil
}

// NextMoonQuarter finds the quarter after prev.
func (f *Finder) NextMoonQuarter(prev MoonQuarter) (MoonQuarter, error) {
	next, err := f.SearchMoonQuarter(prev.Time.AddDays(quarterSkipDays))
	if err != nil {
		return MoonQuarter{}, err
	}
	if want := (prev.Quarter + 1) % 4; next.Quarter != want {
		return MoonQuarter{}, fmt.Errorf("%w: expected %v after %v, found %v", ErrInconsistent, want, prev.Time, next.Quarter)
	}
	return next, nil
}
