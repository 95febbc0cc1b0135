// Package events locates astronomical events: lunar phases, apsides,
// rise and set, elongations, seasons, eclipses and transits.
//
// Every finder reduces its event to a scalar function of time and hands it
// to package search. Search* methods find the first event at or after a
// start time; Next* methods continue from a previous result.
package events

import (
	"errors"
	"fmt"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/search"
)

// ErrInconsistent reports a located event that fails a consistency check,
// such as two consecutive apsides of the same kind.
var ErrInconsistent = errors.New("inconsistent event sequence")

// Finder runs event searches against a position model. A Finder is
// immutable after New and may be shared between goroutines as long as its
// Counter is safe for concurrent use.
type Finder struct {
	model ephem.Model
	opts  search.Options
}

// Option configures a Finder.
type Option func(*Finder)

// WithSearch replaces the search options wholesale.
func WithSearch(o search.Options) Option {
	return func(f *Finder) {
		f.opts = o
	}
}

// WithMaxIterations caps refinement steps per root.
func WithMaxIterations(n int) Option {
	return func(f *Finder) {
		f.opts.MaxIterations = n
	}
}

// WithTolerance sets the root tolerance in seconds.
func WithTolerance(seconds float64) Option {
	return func(f *Finder) {
		f.opts.Tolerance = seconds
	}
}

// WithCounter attaches a search effort counter.
func WithCounter(c search.Counter) Option {
	return func(f *Finder) {
		f.opts.Counter = c
	}
}

// New returns a Finder over model. A nil model selects the built-in
// analytic model behind a position cache.
func New(model ephem.Model, opts ...Option) *Finder {
	if model == nil {
		model = ephem.NewCache(ephem.NewAnalytic(), 0)
	}
	f := &Finder{model: model}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Model returns the position model in use.
func (f *Finder) Model() ephem.Model {
	return f.model
}

// Options returns the search options in use.
func (f *Finder) Options() search.Options {
	return f.opts
}

// root finds a zero of fn between t1 and t2.
func (f *Finder) root(fn search.Func, t1, t2 astro.Time) (astro.Time, error) {
	return search.Root(fn, t1, t2, f.opts)
}

// minimum finds where fn bottoms out between t1 and t2.
func (f *Finder) minimum(fn search.Func, t1, t2 astro.Time, dtDays float64) (astro.Time, error) {
	return search.Minimum(fn, t1, t2, dtDays, f.opts)
}

func (f *Finder) maximum(fn search.Func, t1, t2 astro.Time, dtDays float64) (astro.Time, error) {
	return search.Maximum(fn, t1, t2, dtDays, f.opts)
}

// step records one iteration of a finder's own refinement loop.
func (f *Finder) step() {
	f.opts.Iterate()
}

func unsupported(body ephem.Body, what string) error {
	return fmt.Errorf("%w: %v has no %s", ephem.ErrUnknownBody, body, what)
}
