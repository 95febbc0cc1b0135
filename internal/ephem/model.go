package ephem

import (
	"fmt"
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
)

// Model supplies heliocentric positions.
type Model interface {
	// Name returns the model name for display/logging.
	Name() string

	// Position returns the heliocentric position of body at t in EQJ, in AU.
	// The Sun is always at the origin.
	Position(body Body, t astro.Time) (astro.Vec3, error)
}

// MoonModel is implemented by models that compute the geocentric Moon
// directly rather than as a difference of two heliocentric vectors.
type MoonModel interface {
	GeoMoon(t astro.Time) (astro.Vec3, error)
}

const maxLightTimeIterations = 10

// GeoVector returns the position of body as seen from the center of the
// Earth, in EQJ, corrected for light travel time. With aberration the
// Earth is also taken at the emission time, which yields the apparent
// direction to first order.
func GeoVector(m Model, body Body, t astro.Time, aberration bool) (astro.Vec3, error) {
	switch {
	case !body.Valid():
		return astro.Vec3{}, fmt.Errorf("%w: %d", ErrUnknownBody, int(body))
	case body == Earth:
		return astro.Vec3{}, nil
	case body == Moon:
		return GeoMoon(m, t)
	}

	earth, err := m.Position(Earth, t)
	if err != nil {
		return astro.Vec3{}, err
	}

	ltime := t
	var dt float64
	for range maxLightTimeIterations {
		h, err := m.Position(body, ltime)
		if err != nil {
			return astro.Vec3{}, err
		}
		if aberration {
			if earth, err = m.Position(Earth, ltime); err != nil {
				return astro.Vec3{}, err
			}
		}
		geo := h.Sub(earth)
		next := t.AddDays(-geo.Norm() * astro.LightDaysPerAU)
		dt = math.Abs(next.TT - ltime.TT)
		if dt < 1e-9 {
			return geo, nil
		}
		ltime = next
	}
	return astro.Vec3{}, fmt.Errorf("%w: light time for %v at %v (dt=%g)", astro.ErrDidNotConverge, body, t, dt)
}

// GeoMoon returns the geocentric Moon in EQJ, in AU.
func GeoMoon(m Model, t astro.Time) (astro.Vec3, error) {
	if mm, ok := m.(MoonModel); ok {
		return mm.GeoMoon(t)
	}
	moon, err := m.Position(Moon, t)
	if err != nil {
		return astro.Vec3{}, err
	}
	earth, err := m.Position(Earth, t)
	if err != nil {
		return astro.Vec3{}, err
	}
	return moon.Sub(earth), nil
}

// HelioDistance returns the body's distance from the Sun in AU.
func HelioDistance(m Model, body Body, t astro.Time) (float64, error) {
	if body == Sun {
		return 0, nil
	}
	v, err := m.Position(body, t)
	if err != nil {
		return 0, err
	}
	return v.Norm(), nil
}

// Equator returns the topocentric position of body for obs. With ofDate the
// coordinates are on the true equator and equinox of date, otherwise EQJ.
func Equator(m Model, body Body, t astro.Time, obs astro.Observer, ofDate, aberration bool) (astro.Equatorial, error) {
	geo, err := GeoVector(m, body, t, aberration)
	if err != nil {
		return astro.Equatorial{}, err
	}
	ov, err := astro.ObserverVector(t, obs)
	if err != nil {
		return astro.Equatorial{}, err
	}
	v := geo.Sub(ov)
	if ofDate {
		v = astro.RotationEQJToEQD(t).Apply(v)
	}
	if !v.IsFinite() {
		return astro.Equatorial{}, fmt.Errorf("%w: topocentric %v at %v", astro.ErrInvalidArgument, body, t)
	}
	return astro.EquatorialFromVector(v), nil
}
