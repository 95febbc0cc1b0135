package ephem

import (
	"fmt"
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
)

// elements are mean orbital elements at J2000 with linear rates per
// Julian century, referred to the J2000 ecliptic and equinox.
type elements struct {
	a, e, incl, meanLon, periLon, node       float64 // AU, -, deg, deg, deg, deg
	da, de, dincl, dmeanLon, dperiLon, dnode float64
}

// keplerElements come from the JPL approximate-position table for
// 1800–2050. The Earth entry is the Earth-Moon barycenter.
var keplerElements = map[Body]elements{
	Mercury: {
		0.38709927, 0.20563593, 7.00497902, 252.25032350, 77.45779628, 48.33076593,
		0.00000037, 0.00001906, -0.00594749, 149472.67411175, 0.16047689, -0.12534081,
	},
	Venus: {
		0.72333566, 0.00677672, 3.39467605, 181.97909950, 131.60246718, 76.67984255,
		0.00000390, -0.00004107, -0.00078890, 58517.81538729, 0.00268329, -0.27769418,
	},
	Earth: {
		1.00000261, 0.01671123, -0.00001531, 100.46457166, 102.93768193, 0.0,
		0.00000562, -0.00004392, -0.01294668, 35999.37244981, 0.32327364, 0.0,
	},
	Mars: {
		1.52371034, 0.09339410, 1.84969142, -4.55343205, -23.94362959, 49.55953891,
		0.00001847, 0.00007882, -0.00813131, 19140.30268499, 0.44441088, -0.29257343,
	},
	Jupiter: {
		5.20288700, 0.04838624, 1.30439695, 34.39644051, 14.72847983, 100.47390909,
		-0.00011607, -0.00013253, -0.00183714, 3034.74612775, 0.21252668, 0.20469106,
	},
	Saturn: {
		9.53667594, 0.05386179, 2.48599187, 49.95424423, 92.59887831, 113.66242448,
		-0.00125060, -0.00050991, 0.00193609, 1222.49362201, -0.41897216, -0.28867794,
	},
	Uranus: {
		19.18916464, 0.04725744, 0.77263783, 313.23810451, 170.95427630, 74.01692503,
		-0.00196176, -0.00004397, -0.00242939, 428.48202785, 0.40805281, 0.04240589,
	},
	Neptune: {
		30.06992276, 0.00859048, 1.77004347, -55.12002969, 44.96476227, 131.78422574,
		0.00026291, 0.00005105, 0.00035372, 218.45945325, -0.32241464, -0.00508664,
	},
	Pluto: {
		39.48211675, 0.24882730, 17.14001206, 238.92903833, 224.06891629, 110.30393684,
		-0.00031596, 0.00005170, 0.00004818, 145.20780515, -0.04062942, -0.01183482,
	},
}

// earthMoonMassRatio splits the barycenter between Earth and Moon.
const earthMoonMassRatio = 81.30056

var eclToEQJ = astro.RotationECLToEQJ()

// position returns the heliocentric ecliptic J2000 position at t.
func (el elements) position(t astro.Time) (astro.Vec3, error) {
	T := t.Centuries()
	a := el.a + el.da*T
	e := el.e + el.de*T
	incl := degToRad(el.incl + el.dincl*T)
	meanLon := el.meanLon + el.dmeanLon*T
	periLon := el.periLon + el.dperiLon*T
	node := degToRad(el.node + el.dnode*T)

	w := degToRad(periLon) - node
	m := degToRad(astro.LongitudeOffset(meanLon - periLon))

	ecc, err := solveKepler(m, e)
	if err != nil {
		return astro.Vec3{}, err
	}
	sinE, cosE := math.Sincos(ecc)
	xp := a * (cosE - e)
	yp := a * math.Sqrt(1-e*e) * sinE

	sw, cw := math.Sincos(w)
	sn, cn := math.Sincos(node)
	si, ci := math.Sincos(incl)

	return astro.Vec3{
		X: (cw*cn-sw*sn*ci)*xp + (-sw*cn-cw*sn*ci)*yp,
		Y: (cw*sn+sw*cn*ci)*xp + (-sw*sn+cw*cn*ci)*yp,
		Z: sw*si*xp + cw*si*yp,
	}, nil
}

// solveKepler returns the eccentric anomaly for mean anomaly m (radians).
func solveKepler(m, e float64) (float64, error) {
	ecc := m + e*math.Sin(m)
	for range 30 {
		d := (ecc - e*math.Sin(ecc) - m) / (1 - e*math.Cos(ecc))
		ecc -= d
		if math.Abs(d) < 1e-13 {
			return ecc, nil
		}
	}
	return 0, fmt.Errorf("%w: kepler equation m=%v e=%v", astro.ErrDidNotConverge, m, e)
}

// Analytic computes positions in closed form: mean Keplerian elements for
// the planets and the truncated ELP-2000/82 series for the Moon.
type Analytic struct{}

// NewAnalytic returns the built-in position model.
func NewAnalytic() Analytic {
	return Analytic{}
}

// Name returns the model name.
func (Analytic) Name() string {
	return "analytic"
}

// Position implements Model.
func (a Analytic) Position(body Body, t astro.Time) (astro.Vec3, error) {
	switch body {
	case Sun:
		return astro.Vec3{}, nil
	case Earth, Moon:
		emb, err := a.barycentric(Earth, t)
		if err != nil {
			return astro.Vec3{}, err
		}
		gm := geoMoon(t)
		if body == Earth {
			return emb.Sub(gm.Scale(1 / (1 + earthMoonMassRatio))), nil
		}
		return emb.Add(gm.Scale(earthMoonMassRatio / (1 + earthMoonMassRatio))), nil
	default:
		return a.barycentric(body, t)
	}
}

func (Analytic) barycentric(body Body, t astro.Time) (astro.Vec3, error) {
	el, ok := keplerElements[body]
	if !ok {
		return astro.Vec3{}, fmt.Errorf("%w: %v", ErrUnknownBody, body)
	}
	v, err := el.position(t)
	if err != nil {
		return astro.Vec3{}, err
	}
	return eclToEQJ.Apply(v), nil
}

// GeoMoon implements MoonModel.
func (Analytic) GeoMoon(t astro.Time) (astro.Vec3, error) {
	return geoMoon(t), nil
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
