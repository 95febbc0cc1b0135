package astro

import (
	"fmt"
	"math"
	"strings"
)

// Refraction selects the atmospheric refraction model.
type Refraction int

const (
	// NoRefraction reports geometric (airless) altitudes.
	NoRefraction Refraction = iota
	// NormalRefraction uses the Saemundsson-style formula at standard
	// conditions. Below −1° the correction tapers linearly to zero at the
	// nadir.
	NormalRefraction
	// JPLHorizonsRefraction matches NormalRefraction above −1° and holds
	// the −1° value below it.
	JPLHorizonsRefraction
)

func (r Refraction) String() string {
	switch r {
	case NoRefraction:
		return "none"
	case NormalRefraction:
		return "normal"
	case JPLHorizonsRefraction:
		return "jplhor"
	default:
		return fmt.Sprintf("Refraction(%d)", int(r))
	}
}

// ParseRefraction parses "none", "normal" or "jplhor".
func ParseRefraction(s string) (Refraction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "airless":
		return NoRefraction, nil
	case "normal", "":
		return NormalRefraction, nil
	case "jplhor", "jpl":
		return JPLHorizonsRefraction, nil
	default:
		return 0, fmt.Errorf("%w: unknown refraction mode %q", ErrInvalidArgument, s)
	}
}

// RefractionAngle returns the upward displacement in degrees of a body at
// geometric altitude alt. Altitudes outside [−90, 90] give zero.
func RefractionAngle(mode Refraction, alt float64) float64 {
	if mode == NoRefraction || alt < -90 || alt > 90 {
		return 0
	}
	hd := alt
	if hd < -1 {
		hd = -1
	}
	refr := (1.02 / math.Tan((hd+10.3/(hd+5.11))*math.Pi/180)) / 60
	if mode == NormalRefraction && alt < -1 {
		refr *= (alt + 90) / 89
	}
	return refr
}

const (
	inverseRefractionTolerance = 1e-14
	inverseRefractionMaxSteps  = 50
)

// InverseRefractionAngle returns the correction to add to an observed
// (refracted) altitude to recover the geometric altitude. The result is
// zero or negative.
func InverseRefractionAngle(mode Refraction, bentAlt float64) (float64, error) {
	if err := checkFinite("altitude", bentAlt); err != nil {
		return 0, err
	}
	if bentAlt < -90 || bentAlt > 90 {
		return 0, nil
	}
	alt := bentAlt - RefractionAngle(mode, bentAlt)
	for range inverseRefractionMaxSteps {
		diff := (alt + RefractionAngle(mode, alt)) - bentAlt
		if math.Abs(diff) < inverseRefractionTolerance {
			return alt - bentAlt, nil
		}
		alt -= diff
	}
	return 0, fmt.Errorf("%w: inverse refraction at %v°", ErrDidNotConverge, bentAlt)
}
