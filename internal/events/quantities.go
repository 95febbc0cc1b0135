package events

import (
	"fmt"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/search"
)

// PairLongitude returns the geocentric ecliptic longitude of b1 minus that
// of b2 on the true ecliptic of date, in [0, 360).
func (f *Finder) PairLongitude(b1, b2 ephem.Body, t astro.Time) (float64, error) {
	if b1 == ephem.Earth || b2 == ephem.Earth {
		return 0, unsupported(ephem.Earth, "geocentric longitude")
	}
	l1, err := f.apparentLongitude(b1, t, false)
	if err != nil {
		return 0, err
	}
	l2, err := f.apparentLongitude(b2, t, false)
	if err != nil {
		return 0, err
	}
	return astro.NormalizeDegrees(l1 - l2), nil
}

func (f *Finder) apparentLongitude(body ephem.Body, t astro.Time, aberration bool) (float64, error) {
	v, err := ephem.GeoVector(f.model, body, t, aberration)
	if err != nil {
		return 0, err
	}
	ect := astro.EclipticFromVector(astro.RotationEQJToECT(t).Apply(v))
	return ect.Lon, astro.CheckFinite("longitude", ect.Lon)
}

// MoonPhase returns the Moon's elongation east of the Sun along the
// ecliptic: 0 new, 90 first quarter, 180 full, 270 third quarter.
func (f *Finder) MoonPhase(t astro.Time) (float64, error) {
	return f.PairLongitude(ephem.Moon, ephem.Sun, t)
}

// SunLongitude returns the Sun's apparent longitude on the true ecliptic
// of date.
func (f *Finder) SunLongitude(t astro.Time) (float64, error) {
	return f.apparentLongitude(ephem.Sun, t, true)
}

// EclipticLongitude returns the heliocentric longitude of body on the
// J2000 ecliptic.
func (f *Finder) EclipticLongitude(body ephem.Body, t astro.Time) (float64, error) {
	if body == ephem.Sun {
		return 0, unsupported(body, "heliocentric longitude")
	}
	v, err := f.model.Position(body, t)
	if err != nil {
		return 0, err
	}
	ecl := astro.EclipticFromVector(astro.RotationEQJToECL().Apply(v))
	return ecl.Lon, astro.CheckFinite("longitude", ecl.Lon)
}

// AngleFromSun returns the apparent angle in degrees between body and the
// Sun as seen from the center of the Earth.
func (f *Finder) AngleFromSun(body ephem.Body, t astro.Time) (float64, error) {
	if body == ephem.Earth {
		return 0, unsupported(body, "geocentric direction")
	}
	sv, err := ephem.GeoVector(f.model, ephem.Sun, t, true)
	if err != nil {
		return 0, err
	}
	bv, err := ephem.GeoVector(f.model, body, t, true)
	if err != nil {
		return 0, err
	}
	return astro.AngleBetween(sv, bv)
}

// MoonEclipticLatitude returns the geocentric latitude of the Moon on the
// true ecliptic of date.
func (f *Finder) MoonEclipticLatitude(t astro.Time) (float64, error) {
	m, err := ephem.GeoMoon(f.model, t)
	if err != nil {
		return 0, err
	}
	ect := astro.EclipticFromVector(astro.RotationEQJToECT(t).Apply(m))
	return ect.Lat, astro.CheckFinite("latitude", ect.Lat)
}

// SunAltitude returns the refracted altitude of the Sun's center for obs.
func (f *Finder) SunAltitude(t astro.Time, obs astro.Observer) (float64, error) {
	hor, err := f.Horizontal(ephem.Sun, t, obs, astro.NormalRefraction)
	if err != nil {
		return 0, err
	}
	return hor.AltDeg, nil
}

// Horizontal returns the azimuth and altitude of body for obs.
func (f *Finder) Horizontal(body ephem.Body, t astro.Time, obs astro.Observer, mode astro.Refraction) (astro.HorizontalCoords, error) {
	if body == ephem.Earth {
		return astro.HorizontalCoords{}, unsupported(body, "position in the sky")
	}
	eq, err := ephem.Equator(f.model, body, t, obs, true, true)
	if err != nil {
		return astro.HorizontalCoords{}, err
	}
	return astro.Horizon(t, obs, eq.RA, eq.Dec, mode)
}

// longitudeFunc returns the signed distance of an angle-valued function
// from target, wrapped into (−180, 180].
func longitudeFunc(angle search.Func, target float64) search.Func {
	return func(t astro.Time) (float64, error) {
		a, err := angle(t)
		if err != nil {
			return 0, err
		}
		return astro.LongitudeOffset(a - target), nil
	}
}

func checkTarget(name string, deg float64) error {
	if err := astro.CheckFinite(name, deg); err != nil {
		return err
	}
	if deg < 0 || deg >= 360 {
		return fmt.Errorf("%w: %s %v outside [0, 360)", astro.ErrInvalidArgument, name, deg)
	}
	return nil
}
