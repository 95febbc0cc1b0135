package events

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/search"
)

// EclipseKind classifies an eclipse or a local view of one.
type EclipseKind int

const (
	EclipseNone EclipseKind = iota
	EclipsePenumbral
	EclipsePartial
	EclipseAnnular
	EclipseTotal
)

func (k EclipseKind) String() string {
	switch k {
	case EclipseNone:
		return "none"
	case EclipsePenumbral:
		return "penumbral"
	case EclipsePartial:
		return "partial"
	case EclipseAnnular:
		return "annular"
	case EclipseTotal:
		return "total"
	default:
		return fmt.Sprintf("EclipseKind(%d)", int(k))
	}
}

const (
	// pruneLatitude is the largest ecliptic latitude of the Moon at
	// syzygy that still permits an eclipse.
	pruneLatitude = 1.8

	moonPolarRadiusKm = 1736.0
	earthAtmosphereKm = 88.0

	maxEclipseLunations = 12
	eclipseSkipDays     = 10

	shadowSlopeDt = 1.0 / 86400
)

var (
	sunRadiusKm       = mustRadiusKm(ephem.Sun)
	moonMeanRadiusKm  = mustRadiusKm(ephem.Moon)
	earthMeanRadiusKm = mustRadiusKm(ephem.Earth)

	// earthEclipseRadiusKm enlarges the Earth by its atmosphere, which
	// darkens the umbra beyond the solid globe.
	earthEclipseRadiusKm = earthMeanRadiusKm + earthAtmosphereKm
)

func mustRadiusKm(b ephem.Body) float64 {
	info, err := b.Info()
	if err != nil {
		panic(err)
	}
	return info.RadiusKm
}

// shadow describes the cone a body casts away from the Sun and where a
// target sits relative to its axis.
type shadow struct {
	time   astro.Time
	u      float64    // target's projection on the axis, in units of dir
	r      float64    // km from the axis to the target
	k      float64    // umbra radius at the target, km; negative past the apex
	p      float64    // penumbra radius at the target, km
	target astro.Vec3 // target relative to the shadowing body, AU
	dir    astro.Vec3 // Sun to shadowing body, AU
}

type shadowFunc func(t astro.Time) (shadow, error)

func calcShadow(bodyRadiusKm float64, t astro.Time, target, dir astro.Vec3) shadow {
	u := dir.Dot(target) / dir.Dot(dir)
	r := astro.AUToKm(dir.Scale(u).Sub(target).Norm())
	return shadow{
		time:   t,
		u:      u,
		r:      r,
		k:      sunRadiusKm - (1+u)*(sunRadiusKm-bodyRadiusKm),
		p:      -sunRadiusKm + (1+u)*(sunRadiusKm+bodyRadiusKm),
		target: target,
		dir:    dir,
	}
}

// earthShadow places the Moon in the Earth's shadow.
func (f *Finder) earthShadow(t astro.Time) (shadow, error) {
	e, err := f.model.Position(ephem.Earth, t)
	if err != nil {
		return shadow{}, err
	}
	m, err := ephem.GeoMoon(f.model, t)
	if err != nil {
		return shadow{}, err
	}
	return calcShadow(earthEclipseRadiusKm, t, m, e), nil
}

// moonShadow places the center of the Earth in the Moon's shadow.
func (f *Finder) moonShadow(t astro.Time) (shadow, error) {
	h, err := f.model.Position(ephem.Earth, t)
	if err != nil {
		return shadow{}, err
	}
	m, err := ephem.GeoMoon(f.model, t)
	if err != nil {
		return shadow{}, err
	}
	return calcShadow(moonMeanRadiusKm, t, m.Neg(), m.Add(h)), nil
}

// localMoonShadow places an observer in the Moon's shadow.
func (f *Finder) localMoonShadow(obs astro.Observer) shadowFunc {
	return func(t astro.Time) (shadow, error) {
		o, err := astro.ObserverVector(t, obs)
		if err != nil {
			return shadow{}, err
		}
		h, err := f.model.Position(ephem.Earth, t)
		if err != nil {
			return shadow{}, err
		}
		m, err := ephem.GeoMoon(f.model, t)
		if err != nil {
			return shadow{}, err
		}
		return calcShadow(moonMeanRadiusKm, t, o.Sub(m), m.Add(h)), nil
	}
}

// planetShadow places the center of the Earth in a planet's shadow.
func (f *Finder) planetShadow(body ephem.Body, radiusKm float64) shadowFunc {
	return func(t astro.Time) (shadow, error) {
		g, err := ephem.GeoVector(f.model, body, t, true)
		if err != nil {
			return shadow{}, err
		}
		s, err := ephem.GeoVector(f.model, ephem.Sun, t, true)
		if err != nil {
			return shadow{}, err
		}
		e := s.Neg()
		return calcShadow(radiusKm, t, g.Neg(), e.Add(g)), nil
	}
}

// edgeDistance projects a shadow onto a scalar: the target's distance from
// the axis minus the radius of the shadow edge of interest.
func edgeDistance(fn shadowFunc, radius func(shadow) float64) search.Func {
	return func(t astro.Time) (float64, error) {
		s, err := fn(t)
		if err != nil {
			return 0, err
		}
		return s.r - radius(s), nil
	}
}

func fixedRadius(km float64) func(shadow) float64 {
	return func(shadow) float64 { return km }
}

func penumbraRadius(s shadow) float64 { return s.p }

// umbraRadius is |k| so that it covers the antumbra too.
func umbraRadius(s shadow) float64 { return math.Abs(s.k) }

// peakShadow finds when the target passes closest to the shadow axis
// within window days of center.
func (f *Finder) peakShadow(fn shadowFunc, center astro.Time, window float64) (shadow, error) {
	tx, err := f.minimum(edgeDistance(fn, fixedRadius(0)), center.AddDays(-window), center.AddDays(window), shadowSlopeDt)
	if errors.Is(err, search.ErrNotFound) {
		return shadow{}, fmt.Errorf("%w: no closest approach to the shadow axis near %v", ErrInconsistent, center)
	}
	if err != nil {
		return shadow{}, err
	}
	return fn(tx)
}

// contact finds when the target crosses the shadow edge between t1 and
// t2. Failing to find one means the peak was misjudged.
func (f *Finder) contact(fn shadowFunc, radius func(shadow) float64, t1, t2 astro.Time) (astro.Time, error) {
	tx, err := f.root(edgeDistance(fn, radius), t1, t2)
	if errors.Is(err, search.ErrNotFound) {
		return astro.Time{}, fmt.Errorf("%w: no shadow contact between %v and %v", ErrInconsistent, t1, t2)
	}
	return tx, err
}

// syzygyStep walks lunations for eclipse searches. Each step finds the
// next new or full moon at or after t, skips it when the Moon is too far
// from the ecliptic, and otherwise lets check decide.
func syzygyStep[T any](f *Finder, phase float64, check func(syzygy astro.Time) (T, bool, error)) search.Step[T] {
	return func(t astro.Time) (T, astro.Time, bool, error) {
		var zero T
		syzygy, err := f.SearchMoonPhase(phase, t, 40)
		if err != nil {
			return zero, t, false, err
		}
		next := syzygy.AddDays(eclipseSkipDays)
		lat, err := f.MoonEclipticLatitude(syzygy)
		if err != nil {
			return zero, next, false, err
		}
		if math.Abs(lat) >= pruneLatitude {
			return zero, next, false, nil
		}
		res, ok, err := check(syzygy)
		return res, next, ok, err
	}
}
