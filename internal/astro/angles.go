package astro

import "math"

// AngularSeparation calculates the angular separation between two points on the celestial sphere.
// All coordinates in degrees. Returns separation in degrees.
func AngularSeparation(ra1, dec1, ra2, dec2 float64) float64 {
	ra1Rad := degToRad(ra1)
	dec1Rad := degToRad(dec1)
	ra2Rad := degToRad(ra2)
	dec2Rad := degToRad(dec2)

	// Haversine formula for angular separation
	dRA := ra2Rad - ra1Rad
	dDec := dec2Rad - dec1Rad

	a := math.Sin(dDec/2)*math.Sin(dDec/2) +
		math.Cos(dec1Rad)*math.Cos(dec2Rad)*math.Sin(dRA/2)*math.Sin(dRA/2)

	// Clamp to avoid numerical errors with asin
	if a > 1 {
		a = 1
	}

	return radToDeg(2 * math.Asin(math.Sqrt(a)))
}

// NormalizeDegrees maps an angle to [0, 360).
func NormalizeDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

// LongitudeOffset maps a longitude difference to (−180, +180].
func LongitudeOffset(diff float64) float64 {
	offset := NormalizeDegrees(diff)
	if offset > 180 {
		offset -= 360
	}
	return offset
}

// SunSeparationTier categorizes how close a body appears to the Sun.
type SunSeparationTier int

const (
	SunSepSafe    SunSeparationTier = iota // >= 20 degrees
	SunSepCaution                          // 10-20 degrees
	SunSepWarning                          // < 10 degrees
)

// GetSunSeparationTier returns the tier for a given separation angle.
func GetSunSeparationTier(sepDeg float64) SunSeparationTier {
	switch {
	case sepDeg < 10:
		return SunSepWarning
	case sepDeg < 20:
		return SunSepCaution
	default:
		return SunSepSafe
	}
}

// ElevationTier categorizes altitude for display.
type ElevationTier int

const (
	ElevationNone   ElevationTier = iota // Below horizon
	ElevationLow                         // 0-15 degrees
	ElevationMedium                      // 15-45 degrees
	ElevationHigh                        // 45+ degrees
)

// GetElevationTier returns the tier for a given altitude.
func GetElevationTier(altDeg float64) ElevationTier {
	switch {
	case altDeg <= 0:
		return ElevationNone
	case altDeg < 15:
		return ElevationLow
	case altDeg < 45:
		return ElevationMedium
	default:
		return ElevationHigh
	}
}
