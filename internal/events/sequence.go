package events

import (
	"iter"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
)

// chain yields first() and then repeatedly next(previous). It stops after
// the first error, which is yielded, or when the consumer stops.
// Ranging over the result again restarts from first.
func chain[T any](first func() (T, error), next func(T) (T, error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		ev, err := first()
		for {
			if !yield(ev, err) || err != nil {
				return
			}
			ev, err = next(ev)
		}
	}
}

// MoonQuarters yields lunar quarters from start onward.
func (f *Finder) MoonQuarters(start astro.Time) iter.Seq2[MoonQuarter, error] {
	return chain(
		func() (MoonQuarter, error) { return f.SearchMoonQuarter(start) },
		f.NextMoonQuarter,
	)
}

// LunarApsides yields perigees and apogees from start onward.
func (f *Finder) LunarApsides(start astro.Time) iter.Seq2[Apsis, error] {
	return chain(
		func() (Apsis, error) { return f.SearchLunarApsis(start) },
		f.NextLunarApsis,
	)
}

// PlanetApsides yields perihelia and aphelia of body from start onward.
func (f *Finder) PlanetApsides(body ephem.Body, start astro.Time) iter.Seq2[Apsis, error] {
	return chain(
		func() (Apsis, error) { return f.SearchPlanetApsis(body, start) },
		func(prev Apsis) (Apsis, error) { return f.NextPlanetApsis(body, prev) },
	)
}

// LunarEclipses yields lunar eclipses from start onward.
func (f *Finder) LunarEclipses(start astro.Time) iter.Seq2[LunarEclipseInfo, error] {
	return chain(
		func() (LunarEclipseInfo, error) { return f.SearchLunarEclipse(start) },
		func(prev LunarEclipseInfo) (LunarEclipseInfo, error) { return f.NextLunarEclipse(prev.Peak) },
	)
}

// GlobalSolarEclipses yields solar eclipses from start onward.
func (f *Finder) GlobalSolarEclipses(start astro.Time) iter.Seq2[GlobalSolarEclipseInfo, error] {
	return chain(
		func() (GlobalSolarEclipseInfo, error) { return f.SearchGlobalSolarEclipse(start) },
		func(prev GlobalSolarEclipseInfo) (GlobalSolarEclipseInfo, error) {
			return f.NextGlobalSolarEclipse(prev.Peak)
		},
	)
}

// LocalSolarEclipses yields solar eclipses visible to obs from start onward.
func (f *Finder) LocalSolarEclipses(start astro.Time, obs astro.Observer) iter.Seq2[LocalSolarEclipseInfo, error] {
	return chain(
		func() (LocalSolarEclipseInfo, error) { return f.SearchLocalSolarEclipse(start, obs) },
		func(prev LocalSolarEclipseInfo) (LocalSolarEclipseInfo, error) {
			return f.NextLocalSolarEclipse(prev.Peak.Time, obs)
		},
	)
}

// Transits yields transits of body from start onward.
func (f *Finder) Transits(body ephem.Body, start astro.Time) iter.Seq2[TransitInfo, error] {
	return chain(
		func() (TransitInfo, error) { return f.SearchTransit(body, start) },
		func(prev TransitInfo) (TransitInfo, error) { return f.NextTransit(body, prev.Finish) },
	)
}

// Take collects up to n events from seq, stopping at the first error.
func Take[T any](seq iter.Seq2[T, error], n int) ([]T, error) {
	out := make([]T, 0, n)
	if n <= 0 {
		return out, nil
	}
	for ev, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, ev)
		if len(out) == n {
			break
		}
	}
	return out, nil
}
