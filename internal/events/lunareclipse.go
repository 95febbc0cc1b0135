package events

import (
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/search"
)

// LunarEclipseInfo describes a lunar eclipse. Semi-durations are half the
// length of each phase in minutes, zero when the phase does not occur.
type LunarEclipseInfo struct {
	Kind      EclipseKind
	Peak      astro.Time
	SdPenum   float64
	SdPartial float64
	SdTotal   float64
}

// SearchLunarEclipse finds the first lunar eclipse after start.
func (f *Finder) SearchLunarEclipse(start astro.Time) (LunarEclipseInfo, error) {
	return search.Seed(start, maxEclipseLunations, syzygyStep(f, 180, f.lunarEclipseAt))
}

// NextLunarEclipse finds the lunar eclipse after the one peaking at
// prevPeak.
func (f *Finder) NextLunarEclipse(prevPeak astro.Time) (LunarEclipseInfo, error) {
	return f.SearchLunarEclipse(prevPeak.AddDays(eclipseSkipDays))
}

func (f *Finder) lunarEclipseAt(fullMoon astro.Time) (LunarEclipseInfo, bool, error) {
	s, err := f.peakShadow(f.earthShadow, fullMoon, 0.03)
	if err != nil {
		return LunarEclipseInfo{}, false, err
	}
	if s.r >= s.p+moonMeanRadiusKm {
		return LunarEclipseInfo{}, false, nil
	}

	info := LunarEclipseInfo{Kind: EclipsePenumbral, Peak: s.time}
	if info.SdPenum, err = f.semiDuration(s.time, s.p+moonMeanRadiusKm, 200); err != nil {
		return LunarEclipseInfo{}, false, err
	}
	if s.r < s.k+moonMeanRadiusKm {
		info.Kind = EclipsePartial
		if info.SdPartial, err = f.semiDuration(s.time, s.k+moonMeanRadiusKm, 60); err != nil {
			return LunarEclipseInfo{}, false, err
		}
		if s.r+moonMeanRadiusKm < s.k {
			info.Kind = EclipseTotal
			if info.SdTotal, err = f.semiDuration(s.time, s.k-moonMeanRadiusKm, 30); err != nil {
				return LunarEclipseInfo{}, false, err
			}
		}
	}
	return info, true, nil
}

// semiDuration returns half the time, in minutes, that the Moon's center
// stays within radiusKm of the Earth's shadow axis around peak.
func (f *Finder) semiDuration(peak astro.Time, radiusKm, windowMinutes float64) (float64, error) {
	window := windowMinutes / 1440
	t1, err := f.contact(f.earthShadow, fixedRadius(radiusKm), peak.AddDays(-window), peak)
	if err != nil {
		return 0, err
	}
	t2, err := f.contact(f.earthShadow, fixedRadius(radiusKm), peak, peak.AddDays(window))
	if err != nil {
		return 0, err
	}
	return t2.Sub(t1) * 720, nil
}
