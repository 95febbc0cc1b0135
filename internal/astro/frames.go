package astro

import (
	"fmt"
	"math"
	"strings"

	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/unit"
)

// j2000Obliquity is the mean obliquity of the ecliptic at J2000 in degrees.
const j2000Obliquity = 23.4392911

// Frame identifies a reference frame.
type Frame int

const (
	// EQJ is the mean equator and equinox of J2000.
	EQJ Frame = iota
	// EQD is the true equator and equinox of date.
	EQD
	// ECL is the mean ecliptic and equinox of J2000.
	ECL
	// ECT is the true ecliptic and equinox of date.
	ECT
	// HOR is the observer's horizon: x north, y west, z zenith.
	HOR
)

var frameNames = [...]string{EQJ: "EQJ", EQD: "EQD", ECL: "ECL", ECT: "ECT", HOR: "HOR"}

func (f Frame) String() string {
	if f < 0 || int(f) >= len(frameNames) {
		return fmt.Sprintf("Frame(%d)", int(f))
	}
	return frameNames[f]
}

// ParseFrame parses a frame name such as "eqj" or "HOR".
func ParseFrame(s string) (Frame, error) {
	for i, name := range frameNames {
		if strings.EqualFold(s, name) {
			return Frame(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown frame %q", ErrInvalidArgument, s)
}

// tilt holds nutation and obliquity angles for one instant, in degrees.
type tilt struct {
	dpsi    float64
	meanObl float64
	trueObl float64
}

func earthTilt(t Time) tilt {
	jde := t.JDE()
	dpsi, deps := nutation.Nutation(jde)
	mean := nutation.MeanObliquity(jde).Deg()
	return tilt{dpsi: dpsi.Deg(), meanObl: mean, trueObl: mean + deps.Deg()}
}

// precession returns the IAU 1976 rotation from EQJ to the mean equator of date.
func precession(t Time) Rotation {
	c := t.Centuries()
	zeta := unit.AngleFromSec(2306.2181*c + 0.30188*c*c + 0.017998*c*c*c)
	z := unit.AngleFromSec(2306.2181*c + 1.09468*c*c + 0.018203*c*c*c)
	theta := unit.AngleFromSec(2004.3109*c - 0.42665*c*c - 0.041833*c*c*c)
	r := Combine(frameZ(-zeta.Rad()), frameY(theta.Rad()))
	return Combine(r, frameZ(-z.Rad()))
}

// nutationRotation converts mean equator of date to true equator of date.
func nutationRotation(e tilt) Rotation {
	r := Combine(frameX(degToRad(e.meanObl)), frameZ(-degToRad(e.dpsi)))
	return Combine(r, frameX(-degToRad(e.trueObl)))
}

// RotationEQJToEQD returns the precession-nutation rotation for t.
func RotationEQJToEQD(t Time) Rotation {
	return Combine(precession(t), nutationRotation(earthTilt(t)))
}

// RotationEQDToEQJ is the inverse of RotationEQJToEQD.
func RotationEQDToEQJ(t Time) Rotation {
	return RotationEQJToEQD(t).Inverse()
}

// RotationEQJToECL returns the fixed J2000 equator-to-ecliptic rotation.
func RotationEQJToECL() Rotation {
	return frameX(degToRad(j2000Obliquity))
}

// RotationECLToEQJ is the inverse of RotationEQJToECL.
func RotationECLToEQJ() Rotation {
	return RotationEQJToECL().Inverse()
}

// RotationEQDToECT tilts the true equator of date onto the true ecliptic of date.
func RotationEQDToECT(t Time) Rotation {
	return frameX(degToRad(earthTilt(t).trueObl))
}

// RotationECTToEQD is the inverse of RotationEQDToECT.
func RotationECTToEQD(t Time) Rotation {
	return RotationEQDToECT(t).Inverse()
}

// RotationEQJToECT converts J2000 equatorial vectors to the true ecliptic of date.
func RotationEQJToECT(t Time) Rotation {
	e := earthTilt(t)
	r := Combine(precession(t), nutationRotation(e))
	return Combine(r, frameX(degToRad(e.trueObl)))
}

// RotationECTToEQJ is the inverse of RotationEQJToECT.
func RotationECTToEQJ(t Time) Rotation {
	return RotationEQJToECT(t).Inverse()
}

// RotationEQDToECL converts equator of date to the J2000 ecliptic.
func RotationEQDToECL(t Time) Rotation {
	return Combine(RotationEQDToEQJ(t), RotationEQJToECL())
}

// RotationECLToEQD is the inverse of RotationEQDToECL.
func RotationECLToEQD(t Time) Rotation {
	return RotationEQDToECL(t).Inverse()
}

// RotationEQDToHOR converts equator of date to the observer's horizon frame.
// The rows are the north, west and zenith unit vectors expressed in EQD.
func RotationEQDToHOR(t Time, obs Observer) Rotation {
	un, uw, uz := horizonBasis(t, obs)
	return Rotation{
		{un.X, un.Y, un.Z},
		{uw.X, uw.Y, uw.Z},
		{uz.X, uz.Y, uz.Z},
	}
}

// RotationHORToEQD is the inverse of RotationEQDToHOR.
func RotationHORToEQD(t Time, obs Observer) Rotation {
	return RotationEQDToHOR(t, obs).Inverse()
}

// RotationEQJToHOR converts J2000 equatorial vectors to the horizon frame.
func RotationEQJToHOR(t Time, obs Observer) Rotation {
	return Combine(RotationEQJToEQD(t), RotationEQDToHOR(t, obs))
}

// RotationHORToEQJ is the inverse of RotationEQJToHOR.
func RotationHORToEQJ(t Time, obs Observer) Rotation {
	return RotationEQJToHOR(t, obs).Inverse()
}

// RotationECLToHOR converts J2000 ecliptic vectors to the horizon frame.
func RotationECLToHOR(t Time, obs Observer) Rotation {
	return Combine(RotationECLToEQJ(), RotationEQJToHOR(t, obs))
}

// RotationHORToECL is the inverse of RotationECLToHOR.
func RotationHORToECL(t Time, obs Observer) Rotation {
	return RotationECLToHOR(t, obs).Inverse()
}

// FrameRotation returns the rotation between any two frames. The observer
// is only consulted when either frame is HOR.
func FrameRotation(from, to Frame, t Time, obs Observer) (Rotation, error) {
	if from == HOR || to == HOR {
		if err := obs.Validate(); err != nil {
			return Rotation{}, err
		}
	}
	in, err := toEQJ(from, t, obs)
	if err != nil {
		return Rotation{}, err
	}
	out, err := toEQJ(to, t, obs)
	if err != nil {
		return Rotation{}, err
	}
	if from == to {
		return IdentityRotation(), nil
	}
	return Combine(in, out.Inverse()), nil
}

func toEQJ(f Frame, t Time, obs Observer) (Rotation, error) {
	switch f {
	case EQJ:
		return IdentityRotation(), nil
	case EQD:
		return RotationEQDToEQJ(t), nil
	case ECL:
		return RotationECLToEQJ(), nil
	case ECT:
		return RotationECTToEQJ(t), nil
	case HOR:
		return RotationHORToEQJ(t, obs), nil
	default:
		return Rotation{}, fmt.Errorf("%w: unsupported frame %v", ErrInvalidArgument, f)
	}
}

// horizonBasis returns the observer's north, west and zenith directions in EQD.
func horizonBasis(t Time, obs Observer) (un, uw, uz Vec3) {
	sinlat, coslat := math.Sincos(degToRad(obs.LatDeg))
	sinlon, coslon := math.Sincos(degToRad(obs.LonDeg))

	uze := Vec3{X: coslat * coslon, Y: coslat * sinlon, Z: sinlat}
	une := Vec3{X: -sinlat * coslon, Y: -sinlat * sinlon, Z: coslat}
	uwe := Vec3{X: sinlon, Y: -coslon}

	// Earth-fixed to equator of date is a spin by the apparent sidereal angle.
	spin := frameZ(-degToRad(15 * SiderealTime(t)))
	return spin.Apply(une), spin.Apply(uwe), spin.Apply(uze)
}
