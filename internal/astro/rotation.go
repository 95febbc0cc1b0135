package astro

import (
	"fmt"
	"math"
)

// Rotation is a 3×3 orthonormal matrix that converts a vector from one
// frame to another as v' = R·v. Rows index the output axes.
type Rotation [3][3]float64

// IdentityRotation returns the rotation that leaves vectors unchanged.
func IdentityRotation() Rotation {
	return Rotation{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Apply rotates v.
func (r Rotation) Apply(v Vec3) Vec3 {
	return Vec3{
		X: r[0][0]*v.X + r[0][1]*v.Y + r[0][2]*v.Z,
		Y: r[1][0]*v.X + r[1][1]*v.Y + r[1][2]*v.Z,
		Z: r[2][0]*v.X + r[2][1]*v.Y + r[2][2]*v.Z,
	}
}

// Inverse returns the reverse rotation (the transpose).
func (r Rotation) Inverse() Rotation {
	var t Rotation
	for i := range 3 {
		for j := range 3 {
			t[i][j] = r[j][i]
		}
	}
	return t
}

// Combine returns the rotation equivalent to applying a, then b.
func Combine(a, b Rotation) Rotation {
	var c Rotation
	for i := range 3 {
		for j := range 3 {
			c[i][j] = b[i][0]*a[0][j] + b[i][1]*a[1][j] + b[i][2]*a[2][j]
		}
	}
	return c
}

// Pivot returns r followed by a counterclockwise rotation of vectors by
// angle degrees about axis 0 (x), 1 (y) or 2 (z).
func Pivot(r Rotation, axis int, angle float64) (Rotation, error) {
	if axis < 0 || axis > 2 {
		return Rotation{}, fmt.Errorf("%w: pivot axis %d", ErrInvalidArgument, axis)
	}
	if err := checkFinite("pivot angle", angle); err != nil {
		return Rotation{}, err
	}
	// An active rotation by θ is the frame rotation by −θ.
	var e Rotation
	switch axis {
	case 0:
		e = frameX(-degToRad(angle))
	case 1:
		e = frameY(-degToRad(angle))
	default:
		e = frameZ(-degToRad(angle))
	}
	return Combine(r, e), nil
}

// MaxDeviation returns the largest element-wise difference between r and s.
func (r Rotation) MaxDeviation(s Rotation) float64 {
	var d float64
	for i := range 3 {
		for j := range 3 {
			d = math.Max(d, math.Abs(r[i][j]-s[i][j]))
		}
	}
	return d
}

// IsOrthonormal reports whether r·rᵀ equals the identity within tol.
func (r Rotation) IsOrthonormal(tol float64) bool {
	return Combine(r.Inverse(), r).MaxDeviation(IdentityRotation()) <= tol
}

// frameX, frameY and frameZ rotate the coordinate frame by phi radians
// about the named axis.
func frameX(phi float64) Rotation {
	s, c := math.Sincos(phi)
	return Rotation{{1, 0, 0}, {0, c, s}, {0, -s, c}}
}

func frameY(phi float64) Rotation {
	s, c := math.Sincos(phi)
	return Rotation{{c, 0, -s}, {0, 1, 0}, {s, 0, c}}
}

func frameZ(phi float64) Rotation {
	s, c := math.Sincos(phi)
	return Rotation{{c, s, 0}, {-s, c, 0}, {0, 0, 1}}
}
