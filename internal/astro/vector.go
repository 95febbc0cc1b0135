package astro

import (
	"fmt"
	"math"
)

const (
	// AU is the Astronomical Unit in kilometers.
	AU = 149597870.7

	// LightDaysPerAU is the one-way light time across 1 AU, in days.
	LightDaysPerAU = 1 / 173.1446326846693
)

// Vec3 is a Cartesian vector in AU. The frame it belongs to is implied by
// the function that produced it; EQJ unless stated otherwise.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Neg returns −v.
func (v Vec3) Neg() Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Dot returns the scalar product.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns the vector product v × u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// IsFinite reports whether every component is a finite number.
func (v Vec3) IsFinite() bool {
	return !(math.IsNaN(v.X) || math.IsInf(v.X, 0) ||
		math.IsNaN(v.Y) || math.IsInf(v.Y, 0) ||
		math.IsNaN(v.Z) || math.IsInf(v.Z, 0))
}

// AngleBetween returns the angle between a and b in degrees [0, 180].
func AngleBetween(a, b Vec3) (float64, error) {
	r := a.Norm() * b.Norm()
	if r == 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, fmt.Errorf("%w: angle between degenerate vectors", ErrInvalidArgument)
	}
	d := a.Dot(b) / r
	if d >= 1 {
		return 0, nil
	}
	if d <= -1 {
		return 180, nil
	}
	return radToDeg(math.Acos(d)), nil
}

// Spherical holds angular coordinates and a distance in AU.
type Spherical struct {
	Lat  float64 // degrees, −90..+90
	Lon  float64 // degrees, 0..360
	Dist float64 // AU
}

// VectorFromSphere converts spherical coordinates to a Cartesian vector.
func VectorFromSphere(s Spherical) Vec3 {
	lat := degToRad(s.Lat)
	lon := degToRad(s.Lon)
	rc := s.Dist * math.Cos(lat)
	return Vec3{
		X: rc * math.Cos(lon),
		Y: rc * math.Sin(lon),
		Z: s.Dist * math.Sin(lat),
	}
}

// SphereFromVector converts a Cartesian vector to spherical coordinates.
// A vector on the polar axis reports longitude 0.
func SphereFromVector(v Vec3) Spherical {
	xy := v.X*v.X + v.Y*v.Y
	dist := math.Sqrt(xy + v.Z*v.Z)
	if xy == 0 {
		switch {
		case v.Z > 0:
			return Spherical{Lat: 90, Dist: dist}
		case v.Z < 0:
			return Spherical{Lat: -90, Dist: dist}
		default:
			return Spherical{}
		}
	}
	return Spherical{
		Lat:  radToDeg(math.Atan2(v.Z, math.Sqrt(xy))),
		Lon:  NormalizeDegrees(radToDeg(math.Atan2(v.Y, v.X))),
		Dist: dist,
	}
}

// Equatorial holds right ascension and declination with the source vector.
type Equatorial struct {
	RA   float64 // hours, 0..24
	Dec  float64 // degrees
	Dist float64 // AU
	Vec  Vec3
}

// EquatorialFromVector converts an equatorial-frame vector to RA/Dec.
func EquatorialFromVector(v Vec3) Equatorial {
	s := SphereFromVector(v)
	return Equatorial{RA: s.Lon / 15, Dec: s.Lat, Dist: s.Dist, Vec: v}
}

// EclipticFromVector converts an ecliptic-frame vector to latitude,
// longitude and distance.
func EclipticFromVector(v Vec3) Spherical {
	return SphereFromVector(v)
}

// KmToAU converts kilometers to Astronomical Units.
func KmToAU(km float64) float64 {
	return km / AU
}

// AUToKm converts Astronomical Units to kilometers.
func AUToKm(au float64) float64 {
	return au * AU
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
