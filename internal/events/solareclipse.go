package events

import (
	"fmt"
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/search"
)

// GlobalSolarEclipseInfo describes a solar eclipse as seen anywhere on
// Earth. Latitude and Longitude locate greatest eclipse and are set only
// when the shadow axis strikes the Earth (Located).
type GlobalSolarEclipseInfo struct {
	Kind       EclipseKind
	Peak       astro.Time
	DistanceKm float64 // from the Earth's center to the shadow axis
	Located    bool
	Latitude   float64
	Longitude  float64
}

// EclipseEvent is a contact of a local solar eclipse together with the
// Sun's refracted altitude at that moment.
type EclipseEvent struct {
	Time     astro.Time
	Altitude float64
}

// LocalSolarEclipseInfo describes a solar eclipse as seen by one observer.
// TotalBegin and TotalEnd are nil unless the observer is inside the umbra
// or antumbra.
type LocalSolarEclipseInfo struct {
	Kind         EclipseKind
	PartialBegin EclipseEvent
	TotalBegin   *EclipseEvent
	Peak         EclipseEvent
	TotalEnd     *EclipseEvent
	PartialEnd   EclipseEvent
}

const (
	maxLocalEclipseLunations = 500

	localPeakWindow    = 0.2
	localPartialWindow = 0.2
	localTotalWindow   = 0.01
)

// SearchGlobalSolarEclipse finds the first solar eclipse after start.
func (f *Finder) SearchGlobalSolarEclipse(start astro.Time) (GlobalSolarEclipseInfo, error) {
	return search.Seed(start, maxEclipseLunations, syzygyStep(f, 0, f.globalEclipseAt))
}

// NextGlobalSolarEclipse finds the solar eclipse after the one peaking at
// prevPeak.
func (f *Finder) NextGlobalSolarEclipse(prevPeak astro.Time) (GlobalSolarEclipseInfo, error) {
	return f.SearchGlobalSolarEclipse(prevPeak.AddDays(eclipseSkipDays))
}

func (f *Finder) globalEclipseAt(newMoon astro.Time) (GlobalSolarEclipseInfo, bool, error) {
	s, err := f.peakShadow(f.moonShadow, newMoon, 0.03)
	if err != nil {
		return GlobalSolarEclipseInfo{}, false, err
	}
	if s.r >= s.p+earthMeanRadiusKm {
		return GlobalSolarEclipseInfo{}, false, nil
	}
	info, err := geoidIntersect(s)
	return info, err == nil, err
}

// geoidIntersect finds where the shadow axis meets the Earth's ellipsoid
// and classifies the eclipse seen from there.
func geoidIntersect(s shadow) (GlobalSolarEclipseInfo, error) {
	info := GlobalSolarEclipseInfo{Kind: EclipsePartial, Peak: s.time, DistanceKm: s.r}

	// Work on the equator of date, with z stretched so the Earth becomes
	// a sphere of equatorial radius.
	rot := astro.RotationEQJToEQD(s.time)
	v := rot.Apply(s.dir)
	e := rot.Apply(s.target)
	v = astro.Vec3{X: astro.AUToKm(v.X), Y: astro.AUToKm(v.Y), Z: astro.AUToKm(v.Z) / astro.EarthFlattening}
	e = astro.Vec3{X: astro.AUToKm(e.X), Y: astro.AUToKm(e.Y), Z: astro.AUToKm(e.Z) / astro.EarthFlattening}

	R := astro.EarthEquatorialRadiusKm
	A := v.Dot(v)
	B := -2 * v.Dot(e)
	C := e.Dot(e) - R*R
	radic := B*B - 4*A*C
	if radic <= 0 {
		return info, nil
	}

	// The nearer root is on the day side.
	u := (-B - math.Sqrt(radic)) / (2 * A)
	px := u*v.X - e.X
	py := u*v.Y - e.Y
	pz := (u*v.Z - e.Z) * astro.EarthFlattening

	proj := math.Hypot(px, py) * astro.EarthFlattening * astro.EarthFlattening
	switch {
	case proj != 0:
		info.Latitude = math.Atan(pz/proj) * 180 / math.Pi
	case pz > 0:
		info.Latitude = 90
	default:
		info.Latitude = -90
	}
	gast := astro.SiderealTime(s.time)
	info.Longitude = astro.LongitudeOffset(math.Atan2(py, px)*180/math.Pi - 15*gast)
	info.Located = true

	// Recast the shadow from the Moon toward that surface point to see
	// whether the umbra reaches it.
	o := rot.Inverse().Apply(astro.Vec3{X: astro.KmToAU(px), Y: astro.KmToAU(py), Z: astro.KmToAU(pz)})
	surface := calcShadow(moonPolarRadiusKm, s.time, o.Add(s.target), s.dir)
	if surface.r < 0 || surface.r > 1e-9 {
		return GlobalSolarEclipseInfo{}, fmt.Errorf("%w: surface point %.3g km off the shadow axis", ErrInconsistent, surface.r)
	}
	info.Kind = kindFromUmbra(surface.k)
	return info, nil
}

// kindFromUmbra tells total from annular by the sign of the umbra radius.
func kindFromUmbra(k float64) EclipseKind {
	if k > 0 {
		return EclipseTotal
	}
	return EclipseAnnular
}

// SearchLocalSolarEclipse finds the first solar eclipse after start that
// obs can see with the Sun above the horizon at its beginning or end.
func (f *Finder) SearchLocalSolarEclipse(start astro.Time, obs astro.Observer) (LocalSolarEclipseInfo, error) {
	if err := obs.Validate(); err != nil {
		return LocalSolarEclipseInfo{}, err
	}
	local := f.localMoonShadow(obs)
	return search.Seed(start, maxLocalEclipseLunations, syzygyStep(f, 0, func(newMoon astro.Time) (LocalSolarEclipseInfo, bool, error) {
		s, err := f.peakShadow(local, newMoon, localPeakWindow)
		if err != nil {
			return LocalSolarEclipseInfo{}, false, err
		}
		if s.r >= s.p {
			return LocalSolarEclipseInfo{}, false, nil
		}
		info, err := f.localEclipse(s, obs, local)
		if err != nil {
			return LocalSolarEclipseInfo{}, false, err
		}
		// Skip eclipses that happen entirely at night.
		visible := info.PartialBegin.Altitude > 0 || info.PartialEnd.Altitude > 0
		return info, visible, nil
	}))
}

// NextLocalSolarEclipse finds the local solar eclipse after the one
// peaking at prevPeak.
func (f *Finder) NextLocalSolarEclipse(prevPeak astro.Time, obs astro.Observer) (LocalSolarEclipseInfo, error) {
	return f.SearchLocalSolarEclipse(prevPeak.AddDays(eclipseSkipDays), obs)
}

func (f *Finder) localEclipse(s shadow, obs astro.Observer, local shadowFunc) (LocalSolarEclipseInfo, error) {
	var (
		info LocalSolarEclipseInfo
		err  error
	)
	if info.Peak, err = f.eclipseEvent(s.time, obs); err != nil {
		return info, err
	}
	if info.PartialBegin, err = f.localContact(local, penumbraRadius, obs, s.time.AddDays(-localPartialWindow), s.time); err != nil {
		return info, err
	}
	if info.PartialEnd, err = f.localContact(local, penumbraRadius, obs, s.time, s.time.AddDays(localPartialWindow)); err != nil {
		return info, err
	}

	if s.r >= math.Abs(s.k) {
		info.Kind = EclipsePartial
		return info, nil
	}
	info.Kind = kindFromUmbra(s.k)
	begin, err := f.localContact(local, umbraRadius, obs, s.time.AddDays(-localTotalWindow), s.time)
	if err != nil {
		return info, err
	}
	end, err := f.localContact(local, umbraRadius, obs, s.time, s.time.AddDays(localTotalWindow))
	if err != nil {
		return info, err
	}
	info.TotalBegin, info.TotalEnd = &begin, &end
	return info, nil
}

func (f *Finder) localContact(local shadowFunc, radius func(shadow) float64, obs astro.Observer, t1, t2 astro.Time) (EclipseEvent, error) {
	tx, err := f.contact(local, radius, t1, t2)
	if err != nil {
		return EclipseEvent{}, err
	}
	return f.eclipseEvent(tx, obs)
}

func (f *Finder) eclipseEvent(t astro.Time, obs astro.Observer) (EclipseEvent, error) {
	alt, err := f.SunAltitude(t, obs)
	if err != nil {
		return EclipseEvent{}, err
	}
	return EclipseEvent{Time: t, Altitude: alt}, nil
}
