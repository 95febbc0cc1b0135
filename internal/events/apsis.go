package events

import (
	"errors"
	"fmt"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/search"
)

// ApsisKind tells a closest approach from a farthest recession.
type ApsisKind int

const (
	Pericenter ApsisKind = iota
	Apocenter
)

func (k ApsisKind) String() string {
	switch k {
	case Pericenter:
		return "pericenter"
	case Apocenter:
		return "apocenter"
	default:
		return fmt.Sprintf("ApsisKind(%d)", int(k))
	}
}

// Apsis is an extreme of orbital distance: geocentric for the Moon,
// heliocentric for the planets.
type Apsis struct {
	Body   ephem.Body
	Time   astro.Time
	Kind   ApsisKind
	DistAU float64
	DistKm float64
}

const (
	lunarApsisStep = 5.0
	lunarApsisSkip = 11.0
	apsisSlopeDt   = 0.001

	bruteApsisSamples = 100
	bruteApsisSlopeDt = 1.0
)

// slowApsides lists bodies whose orbits are too nearly circular for a
// slope walk; they are located by sampling a large part of the orbit.
var slowApsides = map[ephem.Body]bool{
	ephem.Neptune: true,
	ephem.Pluto:   true,
}

func (f *Finder) moonDistance(t astro.Time) (float64, error) {
	m, err := ephem.GeoMoon(f.model, t)
	if err != nil {
		return 0, err
	}
	return m.Norm(), nil
}

func (f *Finder) helioDistance(body ephem.Body) search.Func {
	return func(t astro.Time) (float64, error) {
		return ephem.HelioDistance(f.model, body, t)
	}
}

// SearchLunarApsis finds the first lunar perigee or apogee after start.
func (f *Finder) SearchLunarApsis(start astro.Time) (Apsis, error) {
	steps := 2 * MeanSynodicMonth / lunarApsisStep
	maxSteps := int(steps) + 1
	a, err := f.walkApsis(f.moonDistance, start, lunarApsisStep, maxSteps)
	if err != nil {
		return Apsis{}, err
	}
	a.Body = ephem.Moon
	return a, nil
}

// NextLunarApsis finds the apsis following prev, which must be of the
// opposite kind.
func (f *Finder) NextLunarApsis(prev Apsis) (Apsis, error) {
	next, err := f.SearchLunarApsis(prev.Time.AddDays(lunarApsisSkip))
	if err != nil {
		return Apsis{}, err
	}
	return next, alternates(prev, next)
}

// SearchPlanetApsis finds the first perihelion or aphelion of body after
// start.
func (f *Finder) SearchPlanetApsis(body ephem.Body, start astro.Time) (Apsis, error) {
	period, err := orbitalPeriod(body)
	if err != nil {
		return Apsis{}, err
	}
	var a Apsis
	if slowApsides[body] {
		a, err = f.bruteApsis(f.helioDistance(body), period, start)
	} else {
		a, err = f.walkApsis(f.helioDistance(body), start, period/6, 13)
	}
	if err != nil {
		return Apsis{}, err
	}
	a.Body = body
	return a, nil
}

// NextPlanetApsis finds the apsis of body following prev.
func (f *Finder) NextPlanetApsis(body ephem.Body, prev Apsis) (Apsis, error) {
	period, err := orbitalPeriod(body)
	if err != nil {
		return Apsis{}, err
	}
	next, err := f.SearchPlanetApsis(body, prev.Time.AddDays(period/4))
	if err != nil {
		return Apsis{}, err
	}
	return next, alternates(prev, next)
}

func orbitalPeriod(body ephem.Body) (float64, error) {
	info, err := body.Info()
	if err != nil {
		return 0, err
	}
	if info.OrbitalPeriod <= 0 {
		return 0, unsupported(body, "heliocentric orbit")
	}
	return info.OrbitalPeriod, nil
}

func alternates(prev, next Apsis) error {
	if next.Kind == prev.Kind {
		return fmt.Errorf("%w: two %vs in a row at %v and %v", ErrInconsistent, next.Kind, prev.Time, next.Time)
	}
	if !next.Time.After(prev.Time) {
		return fmt.Errorf("%w: apsis at %v does not follow %v", ErrInconsistent, next.Time, prev.Time)
	}
	return nil
}

// walkApsis steps forward until the distance slope changes sign, then
// refines the turning point.
func (f *Finder) walkApsis(dist search.Func, start astro.Time, stepDays float64, maxSteps int) (Apsis, error) {
	slope := search.Slope(dist, apsisSlopeDt)
	b, err := search.SignChange(slope, start, stepDays, maxSteps, f.opts)
	if err != nil {
		return Apsis{}, err
	}

	var kind ApsisKind
	switch {
	case b.F1 < 0 || b.F2 > 0:
		kind = Pericenter
	case b.F1 > 0 || b.F2 < 0:
		kind = Apocenter
	default:
		return Apsis{}, fmt.Errorf("%w: distance is flat at %v", ErrInconsistent, b.T1)
	}

	tx, err := b.Root(slope, f.opts)
	if err != nil {
		return Apsis{}, err
	}
	return makeApsis(dist, tx, kind)
}

// bruteApsis samples distance over most of an orbit starting a little
// before start, refines the closest and farthest samples, and returns the
// first of them not earlier than start.
func (f *Finder) bruteApsis(dist search.Func, period float64, start astro.Time) (Apsis, error) {
	t1 := start.AddDays(period * -30.0 / 360)
	t2 := start.AddDays(period * 270.0 / 360)
	interval := t2.Sub(t1) / (bruteApsisSamples - 1)

	var (
		tMin, tMax astro.Time
		dMin, dMax float64
	)
	for i := range bruteApsisSamples {
		t := t1.AddDays(float64(i) * interval)
		d, err := f.opts.Eval(dist, t)
		if err != nil {
			return Apsis{}, err
		}
		if i == 0 || d < dMin {
			dMin, tMin = d, t
		}
		if i == 0 || d > dMax {
			dMax, tMax = d, t
		}
	}

	var found []Apsis
	for _, c := range []struct {
		kind ApsisKind
		near astro.Time
	}{{Pericenter, tMin}, {Apocenter, tMax}} {
		lo, hi := c.near.AddDays(-2*interval), c.near.AddDays(2*interval)
		var (
			tx  astro.Time
			err error
		)
		if c.kind == Pericenter {
			tx, err = f.minimum(dist, lo, hi, bruteApsisSlopeDt)
		} else {
			tx, err = f.maximum(dist, lo, hi, bruteApsisSlopeDt)
		}
		switch {
		case errors.Is(err, search.ErrNotFound):
			continue // the sample sat at the edge of the window
		case err != nil:
			return Apsis{}, err
		}
		if tx.Before(start) {
			continue
		}
		a, err := makeApsis(dist, tx, c.kind)
		if err != nil {
			return Apsis{}, err
		}
		found = append(found, a)
	}

	switch len(found) {
	case 0:
		return Apsis{}, fmt.Errorf("%w: no apsis within %.0f days of %v", search.ErrNoBracket, period, start)
	case 2:
		if found[1].Time.Before(found[0].Time) {
			return found[1], nil
		}
	}
	return found[0], nil
}

func makeApsis(dist search.Func, t astro.Time, kind ApsisKind) (Apsis, error) {
	d, err := dist(t)
	if err != nil {
		return Apsis{}, err
	}
	return Apsis{Time: t, Kind: kind, DistAU: d, DistKm: astro.AUToKm(d)}, nil
}
