package events

import (
	"fmt"
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/search"
)

// Visibility tells which twilight a planet near the Sun is seen in.
type Visibility int

const (
	Morning Visibility = iota
	Evening
)

func (v Visibility) String() string {
	switch v {
	case Morning:
		return "morning"
	case Evening:
		return "evening"
	default:
		return fmt.Sprintf("Visibility(%d)", int(v))
	}
}

// ElongationEvent describes a body's apparent distance from the Sun.
type ElongationEvent struct {
	Body               ephem.Body
	Time               astro.Time
	Visibility         Visibility
	Elongation         float64 // degrees between body and Sun
	EclipticSeparation float64 // degrees of ecliptic longitude from the Sun, 0..180
}

// maxElongationWindow is the band of heliocentric relative longitude, in
// degrees, that brackets greatest elongation of an inner planet.
var maxElongationWindow = map[ephem.Body][2]float64{
	ephem.Mercury: {50, 85},
	ephem.Venus:   {40, 50},
}

// SynodicPeriod returns the mean time in days between successive
// conjunctions of body with the Sun as seen from Earth.
func SynodicPeriod(body ephem.Body) (float64, error) {
	if body == ephem.Earth {
		return 0, unsupported(body, "synodic period")
	}
	tp, err := orbitalPeriod(body)
	if err != nil {
		return 0, err
	}
	te, _ := orbitalPeriod(ephem.Earth)
	return math.Abs(te / (te/tp - 1)), nil
}

func isSuperior(body ephem.Body) bool {
	p, err := orbitalPeriod(body)
	if err != nil {
		return false
	}
	e, _ := orbitalPeriod(ephem.Earth)
	return p > e
}

// SearchRelativeLongitude finds the first time after start when the
// heliocentric ecliptic longitudes of Earth and body differ by targetDeg.
// Zero is inferior conjunction for Mercury and Venus and opposition for
// the outer planets.
func (f *Finder) SearchRelativeLongitude(body ephem.Body, targetDeg float64, start astro.Time) (astro.Time, error) {
	if err := checkTarget("relative longitude", targetDeg); err != nil {
		return astro.Time{}, err
	}
	syn, err := SynodicPeriod(body)
	if err != nil {
		return astro.Time{}, err
	}
	dir := -1.0
	if isSuperior(body) {
		dir = +1
	}

	offset := func(t astro.Time) (float64, error) {
		plon, err := f.EclipticLongitude(body, t)
		if err != nil {
			return 0, err
		}
		elon, err := f.EclipticLongitude(ephem.Earth, t)
		if err != nil {
			return 0, err
		}
		return astro.LongitudeOffset(dir*(elon-plon) - targetDeg), nil
	}

	errAngle, err := f.opts.Eval(offset, start)
	if err != nil {
		return astro.Time{}, err
	}
	if errAngle > 0 {
		errAngle -= 360 // search forward only
	}

	// Secant iteration in which the synodic period plays the slope and is
	// corrected once the estimate is close.
	t := start
	for range f.opts.Iterations() {
		f.step()
		adjust := (-errAngle / 360) * syn
		if t, err = t.Add(adjust); err != nil {
			return astro.Time{}, err
		}
		if math.Abs(adjust)*86400 < 1 {
			return t, nil
		}
		prev := errAngle
		if errAngle, err = f.opts.Eval(offset, t); err != nil {
			return astro.Time{}, err
		}
		if math.Abs(prev) < 30 && prev != errAngle {
			if ratio := prev / (prev - errAngle); ratio > 0.5 && ratio < 2 {
				syn *= ratio
			}
		}
	}
	return astro.Time{}, fmt.Errorf("%w: relative longitude %v° of %v after %v", search.ErrDidNotConverge, targetDeg, body, start)
}

// Elongation reports where body stands relative to the Sun at t.
func (f *Finder) Elongation(body ephem.Body, t astro.Time) (ElongationEvent, error) {
	lon, err := f.PairLongitude(body, ephem.Sun, t)
	if err != nil {
		return ElongationEvent{}, err
	}
	ev := ElongationEvent{Body: body, Time: t, Visibility: Evening, EclipticSeparation: lon}
	if lon > 180 {
		ev.Visibility = Morning
		ev.EclipticSeparation = 360 - lon
	}
	if ev.Elongation, err = f.AngleFromSun(body, t); err != nil {
		return ElongationEvent{}, err
	}
	return ev, nil
}

// SearchMaxElongation finds the first greatest elongation of Mercury or
// Venus after start.
func (f *Finder) SearchMaxElongation(body ephem.Body, start astro.Time) (ElongationEvent, error) {
	window, ok := maxElongationWindow[body]
	if !ok {
		return ElongationEvent{}, unsupported(body, "greatest elongation")
	}
	s1, s2 := window[0], window[1]
	syn, err := SynodicPeriod(body)
	if err != nil {
		return ElongationEvent{}, err
	}
	angle := func(t astro.Time) (float64, error) {
		return f.AngleFromSun(body, t)
	}

	for range 2 {
		plon, err := f.EclipticLongitude(body, start)
		if err != nil {
			return ElongationEvent{}, err
		}
		elon, err := f.EclipticLongitude(ephem.Earth, start)
		if err != nil {
			return ElongationEvent{}, err
		}
		rlon := astro.LongitudeOffset(plon - elon)

		// The slope of elongation is ill-behaved near conjunction, so
		// bracket inside a window. Inside a window already, back up a
		// quarter period to find where it opened.
		var adjust, lo, hi float64
		switch {
		case rlon >= -s1 && rlon < s1:
			lo, hi = s1, s2
		case rlon > s2 || rlon < -s2:
			lo, hi = -s2, -s1
		case rlon >= 0:
			adjust, lo, hi = -syn/4, s1, s2
		default:
			adjust, lo, hi = -syn/4, -s2, -s1
		}

		t1, err := f.SearchRelativeLongitude(body, astro.NormalizeDegrees(lo), start.AddDays(adjust))
		if err != nil {
			return ElongationEvent{}, err
		}
		t2, err := f.SearchRelativeLongitude(body, astro.NormalizeDegrees(hi), t1)
		if err != nil {
			return ElongationEvent{}, err
		}
		tx, err := f.maximum(angle, t1, t2, 0.1)
		if err != nil {
			return ElongationEvent{}, fmt.Errorf("greatest elongation of %v between %v and %v: %w", body, t1, t2, err)
		}
		if !tx.Before(start) {
			return f.Elongation(body, tx)
		}
		// That one already happened; the next window starts after t2.
		start = t2.AddDays(1)
	}
	return ElongationEvent{}, fmt.Errorf("%w: greatest elongation of %v", search.ErrNoBracket, body)
}
