package events

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/search"
)

// Direction selects rising or setting.
type Direction int

const (
	Rise Direction = +1
	Set  Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Rise:
		return "rise"
	case Set:
		return "set"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// HourAngleEvent is the moment a body reaches a given local hour angle,
// with its refracted position in the sky at that moment.
type HourAngleEvent struct {
	Time    astro.Time
	Horizon astro.HorizontalCoords
}

const (
	solarDaysPerSiderealDay = 0.9972695717592592

	// refractionNearHorizon is the standard lift of a body on the horizon.
	refractionNearHorizon = 34.0 / 60

	moonEquatorialRadiusKm = 1738.1
)

// SearchHourAngle finds the first time at or after start when body is at
// hourAngle (sidereal hours west of the meridian) for obs. Hour angle 0 is
// upper culmination, 12 lower culmination.
func (f *Finder) SearchHourAngle(body ephem.Body, obs astro.Observer, hourAngle float64, start astro.Time) (HourAngleEvent, error) {
	if body == ephem.Earth {
		return HourAngleEvent{}, unsupported(body, "hour angle")
	}
	if err := obs.Validate(); err != nil {
		return HourAngleEvent{}, err
	}
	if math.IsNaN(hourAngle) || hourAngle < 0 || hourAngle >= 24 {
		return HourAngleEvent{}, fmt.Errorf("%w: hour angle %v outside [0, 24)", astro.ErrInvalidArgument, hourAngle)
	}

	t := start
	for i := range f.opts.Iterations() {
		f.step()
		eq, err := ephem.Equator(f.model, body, t, obs, true, true)
		if err != nil {
			return HourAngleEvent{}, err
		}
		delta := math.Mod(hourAngle+eq.RA-obs.LonDeg/15-astro.SiderealTime(t), 24)
		if i == 0 {
			if delta < 0 {
				delta += 24 // never step backward from start
			}
		} else if delta < -12 {
			delta += 24
		} else if delta > 12 {
			delta -= 24
		}

		if math.Abs(delta)*3600 < 0.1 {
			hor, err := astro.Horizon(t, obs, eq.RA, eq.Dec, astro.NormalRefraction)
			if err != nil {
				return HourAngleEvent{}, err
			}
			return HourAngleEvent{Time: t, Horizon: hor}, nil
		}
		if t, err = t.Add(delta / 24 * solarDaysPerSiderealDay); err != nil {
			return HourAngleEvent{}, err
		}
	}
	return HourAngleEvent{}, fmt.Errorf("%w: hour angle %v of %v after %v", search.ErrDidNotConverge, hourAngle, body, start)
}

// SearchRiseSet finds the first time within limitDays after start when
// the upper limb of body crosses the horizon in direction dir. A body that
// stays up or down for the whole window gives search.ErrNotFound.
func (f *Finder) SearchRiseSet(body ephem.Body, obs astro.Observer, dir Direction, start astro.Time, limitDays float64) (astro.Time, error) {
	var haBefore, haAfter float64
	switch dir {
	case Rise:
		haBefore, haAfter = 12, 0
	case Set:
		haBefore, haAfter = 0, 12
	default:
		return astro.Time{}, fmt.Errorf("%w: direction %d", astro.ErrInvalidArgument, int(dir))
	}
	if body == ephem.Earth {
		return astro.Time{}, unsupported(body, "rise or set")
	}
	if err := obs.Validate(); err != nil {
		return astro.Time{}, err
	}
	if !(limitDays > 0) || math.IsInf(limitDays, 0) {
		return astro.Time{}, fmt.Errorf("%w: rise/set search limit %v", astro.ErrInvalidArgument, limitDays)
	}
	radiusKm, err := riseSetRadiusKm(body)
	if err != nil {
		return astro.Time{}, err
	}
	alt := f.limbAltitude(body, obs, dir, radiusKm)
	end, err := start.Add(limitDays)
	if err != nil {
		return astro.Time{}, err
	}

	// Walk culmination to culmination: each bracket runs from the
	// culmination opposite the event to the one it leads into.
	timeBefore := start
	altBefore, err := f.opts.Eval(alt, timeBefore)
	if err != nil {
		return astro.Time{}, err
	}
	if altBefore > 0 {
		evt, err := f.SearchHourAngle(body, obs, haBefore, start)
		if err != nil {
			return astro.Time{}, err
		}
		timeBefore = evt.Time
		if altBefore, err = f.opts.Eval(alt, timeBefore); err != nil {
			return astro.Time{}, err
		}
	}
	after, err := f.SearchHourAngle(body, obs, haAfter, timeBefore)
	if err != nil {
		return astro.Time{}, err
	}
	altAfter, err := f.opts.Eval(alt, after.Time)
	if err != nil {
		return astro.Time{}, err
	}

	for timeBefore.Before(end) {
		if altBefore <= 0 && altAfter > 0 {
			tx, err := search.RootFrom(alt, timeBefore, after.Time, altBefore, altAfter, f.opts)
			if err == nil {
				if tx.After(end) {
					break
				}
				return tx, nil
			}
			if !errors.Is(err, search.ErrNotFound) {
				return astro.Time{}, err
			}
		}

		before, err := f.SearchHourAngle(body, obs, haBefore, after.Time)
		if err != nil {
			return astro.Time{}, err
		}
		if after, err = f.SearchHourAngle(body, obs, haAfter, before.Time); err != nil {
			return astro.Time{}, err
		}
		timeBefore = before.Time
		if altBefore, err = f.opts.Eval(alt, timeBefore); err != nil {
			return astro.Time{}, err
		}
		if altAfter, err = f.opts.Eval(alt, after.Time); err != nil {
			return astro.Time{}, err
		}
	}
	return astro.Time{}, fmt.Errorf("%w: no %v of %v within %v days of %v", search.ErrNotFound, dir, body, limitDays, start)
}

// limbAltitude returns dir times the altitude of the body's upper limb,
// lifted by standard horizon refraction. It is positive on the far side
// of the event.
func (f *Finder) limbAltitude(body ephem.Body, obs astro.Observer, dir Direction, radiusKm float64) search.Func {
	return func(t astro.Time) (float64, error) {
		eq, err := ephem.Equator(f.model, body, t, obs, true, true)
		if err != nil {
			return 0, err
		}
		hor, err := astro.Horizon(t, obs, eq.RA, eq.Dec, astro.NoRefraction)
		if err != nil {
			return 0, err
		}
		limb := math.Asin(math.Min(1, astro.KmToAU(radiusKm)/eq.Dist)) * 180 / math.Pi
		return float64(dir) * (hor.AltDeg + limb + refractionNearHorizon), nil
	}
}

func riseSetRadiusKm(body ephem.Body) (float64, error) {
	switch body {
	case ephem.Moon:
		return moonEquatorialRadiusKm, nil
	case ephem.Sun:
		info, err := body.Info()
		return info.RadiusKm, err
	default:
		if !body.Valid() {
			return 0, fmt.Errorf("%w: %d", ephem.ErrUnknownBody, int(body))
		}
		return 0, nil // planets rise as points
	}
}
