package events

import (
	"fmt"
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/search"
)

// IllumInfo describes how a body appears lit from the Earth.
type IllumInfo struct {
	Body          ephem.Body
	Time          astro.Time
	Magnitude     float64 // visual magnitude
	PhaseAngle    float64 // degrees between the Sun and the Earth as seen from the body
	PhaseFraction float64 // lit fraction of the disc, 0..1
	HelioDist     float64 // AU
	RingTilt      float64 // degrees; Saturn only
}

const (
	auPerParsec = 206264.806247

	moonMeanDistanceKm = 385000.6

	// Saturn's rings are inclined 28.06° to the ecliptic.
	saturnRingInclination = 28.06

	// peakMagnitudeWindow brackets greatest brilliancy of Venus in
	// heliocentric relative longitude, in degrees.
	peakMagnitudeLo = 10.0
	peakMagnitudeHi = 30.0

	peakMagnitudeSlopeDt  = 0.02
	peakMagnitudeScanDays = 4.0
)

var sunMagnitudeAt1AU = -0.17 - 5*math.Log10(auPerParsec)

// Illumination returns the brightness and phase of body at t. The Earth
// has none.
func (f *Finder) Illumination(body ephem.Body, t astro.Time) (IllumInfo, error) {
	if body == ephem.Earth {
		return IllumInfo{}, unsupported(body, "illumination")
	}
	earth, err := f.model.Position(ephem.Earth, t)
	if err != nil {
		return IllumInfo{}, err
	}

	var gc, hc astro.Vec3
	info := IllumInfo{Body: body, Time: t}
	switch body {
	case ephem.Sun:
		gc = earth.Neg()
	case ephem.Moon:
		if gc, err = ephem.GeoMoon(f.model, t); err != nil {
			return IllumInfo{}, err
		}
		hc = earth.Add(gc)
	default:
		if hc, err = f.model.Position(body, t); err != nil {
			return IllumInfo{}, err
		}
		gc = hc.Sub(earth)
	}
	if body != ephem.Sun {
		if info.PhaseAngle, err = astro.AngleBetween(gc, hc); err != nil {
			return IllumInfo{}, err
		}
	}

	geoDist := gc.Norm()
	info.HelioDist = hc.Norm()
	switch body {
	case ephem.Sun:
		info.Magnitude = sunMagnitudeAt1AU + 5*math.Log10(geoDist)
	case ephem.Moon:
		info.Magnitude = moonMagnitude(info.PhaseAngle, info.HelioDist, geoDist)
	case ephem.Saturn:
		info.Magnitude, info.RingTilt = saturnMagnitude(info.PhaseAngle, info.HelioDist, geoDist, gc, t)
	default:
		if info.Magnitude, err = visualMagnitude(body, info.PhaseAngle, info.HelioDist, geoDist); err != nil {
			return IllumInfo{}, err
		}
	}
	if err := astro.CheckFinite("magnitude", info.Magnitude); err != nil {
		return IllumInfo{}, err
	}
	info.PhaseFraction = (1 + math.Cos(info.PhaseAngle*math.Pi/180)) / 2
	return info, nil
}

// visualMagnitude applies the planetary phase polynomials of the
// Astronomical Almanac.
func visualMagnitude(body ephem.Body, phase, helioDist, geoDist float64) (float64, error) {
	var c0, c1, c2, c3 float64
	switch body {
	case ephem.Mercury:
		c0, c1, c2, c3 = -0.60, 4.98, -4.88, 3.02
	case ephem.Venus:
		if phase < 163.6 {
			c0, c1, c2, c3 = -4.47, 1.03, 0.57, 0.13
		} else {
			c0, c1 = 0.98, -1.02
		}
	case ephem.Mars:
		c0, c1 = -1.52, 1.60
	case ephem.Jupiter:
		c0, c1 = -9.40, 0.50
	case ephem.Uranus:
		c0, c1 = -7.19, 0.25
	case ephem.Neptune:
		c0 = -6.87
	case ephem.Pluto:
		c0, c1 = -1.00, 4.00
	default:
		return 0, unsupported(body, "magnitude model")
	}
	x := phase / 100
	return c0 + x*(c1+x*(c2+x*c3)) + 5*math.Log10(helioDist*geoDist), nil
}

func moonMagnitude(phase, helioDist, geoDist float64) float64 {
	rad := phase * math.Pi / 180
	rad2 := rad * rad
	mag := -12.717 + 1.49*math.Abs(rad) + 0.0431*rad2*rad2
	geo := geoDist / astro.KmToAU(moonMeanDistanceKm)
	return mag + 5*math.Log10(helioDist*geo)
}

// saturnMagnitude includes the brightening of the rings as they open up,
// after Paul Schlyter's formulas. It also returns the ring tilt.
func saturnMagnitude(phase, helioDist, geoDist float64, gc astro.Vec3, t astro.Time) (float64, float64) {
	ir := saturnRingInclination * math.Pi / 180
	nr := (169.51 + 3.82e-5*t.TT) * math.Pi / 180

	ecl := astro.EclipticFromVector(astro.RotationEQJToECL().Apply(gc))
	lat := ecl.Lat * math.Pi / 180
	lon := ecl.Lon * math.Pi / 180
	tilt := math.Asin(math.Sin(lat)*math.Cos(ir) - math.Cos(lat)*math.Sin(ir)*math.Sin(lon-nr))
	sinTilt := math.Sin(math.Abs(tilt))

	mag := -9.0 + 0.044*phase
	mag += sinTilt * (-2.6 + 1.2*sinTilt)
	mag += 5 * math.Log10(helioDist*geoDist)
	return mag, tilt * 180 / math.Pi
}

// SearchPeakMagnitude finds the first greatest brilliancy of Venus at or
// after start.
func (f *Finder) SearchPeakMagnitude(body ephem.Body, start astro.Time) (IllumInfo, error) {
	if body != ephem.Venus {
		return IllumInfo{}, unsupported(body, "peak magnitude search")
	}
	syn, err := SynodicPeriod(body)
	if err != nil {
		return IllumInfo{}, err
	}
	slope := search.Slope(func(t astro.Time) (float64, error) {
		info, err := f.Illumination(body, t)
		return info.Magnitude, err
	}, peakMagnitudeSlopeDt)

	s1, s2 := peakMagnitudeLo, peakMagnitudeHi
	for range 2 {
		plon, err := f.EclipticLongitude(body, start)
		if err != nil {
			return IllumInfo{}, err
		}
		elon, err := f.EclipticLongitude(ephem.Earth, start)
		if err != nil {
			return IllumInfo{}, err
		}
		rlon := astro.LongitudeOffset(plon - elon)

		// Brilliancy peaks between 10° and 30° from inferior conjunction
		// on either side. Inside a window already, back up a quarter
		// period to find where it opened.
		var adjust, lo, hi float64
		switch {
		case rlon >= -s1 && rlon < s1:
			lo, hi = s1, s2
		case rlon >= s2 || rlon < -s2:
			lo, hi = -s2, -s1
		case rlon >= 0:
			adjust, lo, hi = -syn/4, s1, s2
		default:
			adjust, lo, hi = -syn/4, -s2, -s1
		}

		t1, err := f.SearchRelativeLongitude(body, astro.NormalizeDegrees(lo), start.AddDays(adjust))
		if err != nil {
			return IllumInfo{}, err
		}
		t2, err := f.SearchRelativeLongitude(body, astro.NormalizeDegrees(hi), t1)
		if err != nil {
			return IllumInfo{}, err
		}

		// Magnitude falls (brightens) into the peak and rises after it.
		m1, err := f.opts.Eval(slope, t1)
		if err != nil {
			return IllumInfo{}, err
		}
		if m1 >= 0 {
			return IllumInfo{}, fmt.Errorf("%w: %v is not brightening at %v", ErrInconsistent, body, t1)
		}
		tx, err := search.Scan(slope, t1, t2, peakMagnitudeScanDays, f.opts)
		if err != nil {
			return IllumInfo{}, fmt.Errorf("peak magnitude of %v between %v and %v: %w", body, t1, t2, err)
		}
		if !tx.Before(start) {
			return f.Illumination(body, tx)
		}
		start = t2.AddDays(1)
	}
	return IllumInfo{}, fmt.Errorf("%w: peak magnitude of %v", search.ErrNoBracket, body)
}
