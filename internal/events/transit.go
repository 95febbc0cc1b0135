package events

import (
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/search"
)

// TransitInfo describes a passage of Mercury or Venus across the Sun as
// seen from the center of the Earth.
type TransitInfo struct {
	Body       ephem.Body
	Start      astro.Time
	Peak       astro.Time
	Finish     astro.Time
	Separation float64 // least angular distance between centers, arcminutes
}

const (
	// transitThreshold is the largest Sun-planet angle at inferior
	// conjunction worth a closer look.
	transitThreshold = 0.4

	transitPeakWindow   = 1.0
	transitSkipDays     = 100
	maxTransitAttempts  = 200
	conjunctionSkipDays = 10
)

var transitBodies = map[ephem.Body]bool{
	ephem.Mercury: true,
	ephem.Venus:   true,
}

// SearchTransit finds the first transit of body after start.
func (f *Finder) SearchTransit(body ephem.Body, start astro.Time) (TransitInfo, error) {
	if !transitBodies[body] {
		return TransitInfo{}, unsupported(body, "solar transits")
	}
	radiusKm := mustRadiusKm(body)
	planet := f.planetShadow(body, radiusKm)

	return search.Seed(start, maxTransitAttempts, func(t astro.Time) (TransitInfo, astro.Time, bool, error) {
		conj, err := f.SearchRelativeLongitude(body, 0, t)
		if err != nil {
			return TransitInfo{}, t, false, err
		}
		next := conj.AddDays(conjunctionSkipDays)
		sep, err := f.AngleFromSun(body, conj)
		if err != nil {
			return TransitInfo{}, next, false, err
		}
		if sep >= transitThreshold {
			return TransitInfo{}, next, false, nil
		}

		s, err := f.peakShadow(planet, conj, transitPeakWindow)
		if err != nil {
			return TransitInfo{}, next, false, err
		}
		if s.r >= s.p {
			return TransitInfo{}, next, false, nil // a near miss
		}

		info := TransitInfo{Body: body, Peak: s.time}
		if info.Start, err = f.contact(planet, penumbraRadius, s.time.AddDays(-1), s.time); err != nil {
			return TransitInfo{}, next, false, err
		}
		if info.Finish, err = f.contact(planet, penumbraRadius, s.time, s.time.AddDays(1)); err != nil {
			return TransitInfo{}, next, false, err
		}
		minSep, err := f.AngleFromSun(body, s.time)
		if err != nil {
			return TransitInfo{}, next, false, err
		}
		info.Separation = 60 * minSep
		return info, next, true, nil
	})
}

// NextTransit finds the transit of body after the one that ended at
// prevFinish.
func (f *Finder) NextTransit(body ephem.Body, prevFinish astro.Time) (TransitInfo, error) {
	return f.SearchTransit(body, prevFinish.AddDays(transitSkipDays))
}
