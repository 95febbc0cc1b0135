// Package astro provides astronomical time scales, reference frames,
// coordinate transformations and sky math.
package astro

import (
	"fmt"
	"math"
)

const (
	// EarthEquatorialRadiusKm is the IERS equatorial radius.
	EarthEquatorialRadiusKm = 6378.1366

	// EarthFlattening is the polar-to-equatorial radius ratio.
	EarthFlattening = 0.996647180302104
)

// Observer represents a ground-based observer location.
type Observer struct {
	LatDeg  float64 // Latitude in degrees (north positive)
	LonDeg  float64 // Longitude in degrees (east positive)
	HeightM float64 // Height above sea level in meters
	Name    string  // Optional name for the site
}

// Validate checks the observer's coordinates.
func (o Observer) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{{"latitude", o.LatDeg}, {"longitude", o.LonDeg}, {"height", o.HeightM}} {
		if err := checkFinite(f.name, f.v); err != nil {
			return err
		}
	}
	if o.LatDeg < -90 || o.LatDeg > 90 {
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidArgument, o.LatDeg)
	}
	return nil
}

// SiderealTime returns Greenwich apparent sidereal time in hours [0, 24).
func SiderealTime(t Time) float64 {
	e := earthTilt(t)
	gast := greenwichMeanSiderealTime(t) + e.dpsi*math.Cos(degToRad(e.trueObl))
	return NormalizeDegrees(gast) / 15
}

// greenwichMeanSiderealTime calculates GMST in degrees.
func greenwichMeanSiderealTime(t Time) float64 {
	// Julian centuries of UT since J2000.0
	T := t.UT / 36525.0

	// GMST = 280.46061837 + 360.98564736629*(JD-2451545) + 0.000387933*T^2 - T^3/38710000
	gmst := 280.46061837 +
		360.98564736629*t.UT +
		0.000387933*T*T -
		T*T*T/38710000.0

	return NormalizeDegrees(gmst)
}

// ObserverVector returns the geocentric position of the observer in EQJ, in AU.
func ObserverVector(t Time, obs Observer) (Vec3, error) {
	if err := obs.Validate(); err != nil {
		return Vec3{}, err
	}
	pos := terra(obs, SiderealTime(t))
	return RotationEQDToEQJ(t).Apply(pos), nil
}

// terra returns the observer's position on the flattened geoid in EQD.
func terra(obs Observer, gast float64) Vec3 {
	df2 := EarthFlattening * EarthFlattening
	phi := degToRad(obs.LatDeg)
	sinphi, cosphi := math.Sincos(phi)
	c := 1 / math.Sqrt(cosphi*cosphi+df2*sinphi*sinphi)
	s := df2 * c
	hkm := obs.HeightM / 1000
	ach := EarthEquatorialRadiusKm*c + hkm
	ash := EarthEquatorialRadiusKm*s + hkm
	sinst, cosst := math.Sincos(degToRad(15*gast + obs.LonDeg))
	return Vec3{
		X: ach * cosphi * cosst / AU,
		Y: ach * cosphi * sinst / AU,
		Z: ash * sinphi / AU,
	}
}

// HorizontalCoords is a position in the observer's sky.
type HorizontalCoords struct {
	AzDeg  float64 // Azimuth in degrees (0=N, 90=E, 180=S, 270=W)
	AltDeg float64 // Altitude in degrees (0=horizon, 90=zenith)
	RA     float64 // Right ascension of date in hours, refracted when requested
	Dec    float64 // Declination of date in degrees, refracted when requested
}

// Horizon converts equator-of-date coordinates (ra hours, dec degrees) to
// azimuth and altitude for the observer at t, applying refraction per mode.
// When refraction raises the body, RA and Dec are adjusted to match.
func Horizon(t Time, obs Observer, ra, dec float64, mode Refraction) (HorizontalCoords, error) {
	if err := obs.Validate(); err != nil {
		return HorizontalCoords{}, err
	}
	if err := checkFinite("ra", ra); err != nil {
		return HorizontalCoords{}, err
	}
	if err := checkFinite("dec", dec); err != nil {
		return HorizontalCoords{}, err
	}
	if dec < -90 || dec > 90 {
		return HorizontalCoords{}, fmt.Errorf("%w: declination %v outside [-90, 90]", ErrInvalidArgument, dec)
	}

	un, uw, uz := horizonBasis(t, obs)
	p := VectorFromSphere(Spherical{Lat: dec, Lon: ra * 15, Dist: 1})

	pz := p.Dot(uz)
	pn := p.Dot(un)
	pw := p.Dot(uw)

	proj := math.Hypot(pn, pw)
	var az float64
	if proj > 0 {
		az = -radToDeg(math.Atan2(pw, pn))
		if az < 0 {
			az += 360
		}
		if az >= 360 {
			az -= 360
		}
	}
	zd := radToDeg(math.Atan2(proj, pz))

	outRA, outDec := ra, dec
	if mode != NoRefraction {
		zd0 := zd
		refr := RefractionAngle(mode, 90-zd)
		zd -= refr
		if refr > 0 && zd > 3.0e-4 {
			sinzd, coszd := math.Sincos(degToRad(zd))
			sinzd0, coszd0 := math.Sincos(degToRad(zd0))
			pr := Vec3{
				X: ((p.X-coszd0*uz.X)/sinzd0)*sinzd + uz.X*coszd,
				Y: ((p.Y-coszd0*uz.Y)/sinzd0)*sinzd + uz.Y*coszd,
				Z: ((p.Z-coszd0*uz.Z)/sinzd0)*sinzd + uz.Z*coszd,
			}
			eq := EquatorialFromVector(pr)
			outRA, outDec = eq.RA, eq.Dec
		}
	}

	return HorizontalCoords{AzDeg: az, AltDeg: 90 - zd, RA: outRA, Dec: outDec}, nil
}

// HorizonFromVector converts a horizon-frame vector to azimuth and altitude
// without refraction.
func HorizonFromVector(v Vec3) HorizontalCoords {
	s := SphereFromVector(v)
	// HOR's y axis points west, so longitude runs opposite to azimuth.
	az := NormalizeDegrees(-s.Lon)
	return HorizontalCoords{AzDeg: az, AltDeg: s.Lat}
}
