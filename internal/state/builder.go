package state

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/events"
	"github.com/litescript/ls-almanac/internal/report"
	"github.com/litescript/ls-almanac/internal/search"
)

const (
	// DefaultHorizon is how far ahead an almanac looks.
	DefaultHorizon = 35 * 24 * time.Hour

	riseSetWindowDays = 1.0
)

// skyBodies are placed in the sky view, brightest first.
var skyBodies = []ephem.Body{
	ephem.Sun, ephem.Moon, ephem.Venus, ephem.Jupiter, ephem.Mars,
	ephem.Mercury, ephem.Saturn, ephem.Uranus, ephem.Neptune,
}

// Builder computes almanacs for one observer.
type Builder struct {
	finder     *events.Finder
	observer   astro.Observer
	horizon    time.Duration
	refraction astro.Refraction
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithHorizon sets how far ahead the almanac looks.
func WithHorizon(d time.Duration) BuilderOption {
	return func(b *Builder) {
		b.horizon = d
	}
}

// WithRefraction sets the refraction model for sky positions.
func WithRefraction(mode astro.Refraction) BuilderOption {
	return func(b *Builder) {
		b.refraction = mode
	}
}

// NewBuilder creates a Builder for obs.
func NewBuilder(finder *events.Finder, obs astro.Observer, opts ...BuilderOption) *Builder {
	b := &Builder{
		finder:     finder,
		observer:   obs,
		horizon:    DefaultHorizon,
		refraction: astro.NormalRefraction,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildResult contains the result of a build.
type BuildResult struct {
	Data     *Almanac
	BuiltAt  time.Time
	Duration time.Duration
	Error    error
}

// Build computes the almanac for now. The context is checked between the
// event families.
func (b *Builder) Build(ctx context.Context, now time.Time) BuildResult {
	start := time.Now()
	result := BuildResult{BuiltAt: start}

	data, err := b.build(ctx, now)
	result.Duration = time.Since(start)
	if err != nil {
		result.Error = err
		return result
	}
	result.Data = data
	return result
}

func (b *Builder) build(ctx context.Context, now time.Time) (*Almanac, error) {
	t0, err := astro.TimeFromGo(now)
	if err != nil {
		return nil, err
	}
	end := now.Add(b.horizon)
	f := b.finder

	alm := &Almanac{Observer: b.observer, At: now}
	if alm.MoonPhase, err = f.MoonPhase(t0); err != nil {
		return nil, fmt.Errorf("moon phase: %w", err)
	}
	for _, body := range skyBodies {
		hor, err := f.Horizontal(body, t0, b.observer, b.refraction)
		if err != nil {
			return nil, fmt.Errorf("%v position: %w", body, err)
		}
		alm.Sky = append(alm.Sky, SkyObject{Body: body, Horizon: hor})
	}

	steps := []struct {
		name string
		run  func() ([]report.Record, error)
	}{
		{"rise and set", func() ([]report.Record, error) { return b.riseSet(t0) }},
		{"moon quarters", func() ([]report.Record, error) {
			qs, err := until(f.MoonQuarters(t0), end, func(q events.MoonQuarter) astro.Time { return q.Time })
			return report.MoonQuarters(qs), err
		}},
		{"lunar apsides", func() ([]report.Record, error) {
			aps, err := until(f.LunarApsides(t0), end, func(a events.Apsis) astro.Time { return a.Time })
			return report.Apsides(aps), err
		}},
		{"seasons", func() ([]report.Record, error) { return b.seasons(now, end) }},
		{"lunar eclipse", func() ([]report.Record, error) {
			ecl, err := f.SearchLunarEclipse(t0)
			return report.LunarEclipses([]events.LunarEclipseInfo{ecl}), err
		}},
		{"solar eclipse", func() ([]report.Record, error) {
			ecl, err := f.SearchGlobalSolarEclipse(t0)
			return report.GlobalSolarEclipses([]events.GlobalSolarEclipseInfo{ecl}), err
		}},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		recs, err := step.run()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.name, err)
		}
		alm.Upcoming = append(alm.Upcoming, recs...)
	}

	slices.SortStableFunc(alm.Upcoming, func(a, b report.Record) int {
		return a.Time.Compare(b.Time)
	})
	return alm, nil
}

// riseSet finds the next rise and set of the Sun and Moon. Either may be
// missing at high latitudes.
func (b *Builder) riseSet(t0 astro.Time) ([]report.Record, error) {
	var out []report.Record
	for _, body := range []ephem.Body{ephem.Sun, ephem.Moon} {
		for _, dir := range []events.Direction{events.Rise, events.Set} {
			t, err := b.finder.SearchRiseSet(body, b.observer, dir, t0, riseSetWindowDays)
			if errors.Is(err, search.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			out = append(out, report.RiseSet(body, dir, t))
		}
	}
	return out, nil
}

// seasons returns the equinoxes and solstices between now and end.
func (b *Builder) seasons(now, end time.Time) ([]report.Record, error) {
	var out []report.Record
	for year := now.Year(); year <= end.Year(); year++ {
		s, err := b.finder.Seasons(year)
		if err != nil {
			return nil, err
		}
		for _, rec := range report.Seasons(s) {
			if rec.Time.After(now) && !rec.Time.After(end) {
				out = append(out, rec)
			}
		}
	}
	return out, nil
}

// until collects events from seq up to end.
func until[T any](seq iter.Seq2[T, error], end time.Time, when func(T) astro.Time) ([]T, error) {
	var out []T
	for ev, err := range seq {
		if err != nil {
			return out, err
		}
		if when(ev).Go().After(end) {
			break
		}
		out = append(out, ev)
	}
	return out, nil
}
