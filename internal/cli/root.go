// Package cli implements the ls-almanac command tree.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/config"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/events"
	"github.com/litescript/ls-almanac/internal/logging"
	"github.com/litescript/ls-almanac/internal/metrics"
	"github.com/litescript/ls-almanac/internal/report"
	"github.com/litescript/ls-almanac/internal/version"
)

// startLayouts are the accepted --start formats, tried in order.
var startLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// flagBindings maps persistent flags onto config keys.
var flagBindings = map[string]string{
	"log-level":  "log_level",
	"format":     "output.format",
	"count":      "output.count",
	"refraction": "refraction",
	"lat":        "observer.latitude",
	"lon":        "observer.longitude",
	"height":     "observer.height",
	"site":       "observer.name",
}

// app is the state shared by every command of one invocation.
type app struct {
	cfg     config.Config
	log     *logging.Logger
	metrics *metrics.Metrics
	cache   *ephem.Cache
	start   astro.Time
	stats   bool
	now     func() time.Time
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	a := &app{now: time.Now}

	root := &cobra.Command{
		Use:   "ls-almanac",
		Short: "Sky almanac: rise and set, phases, seasons, eclipses and transits",
		Long: `ls-almanac computes astronomical events for an observer: Moon phases and
quarters, equinoxes and solstices, rise and set times, apsides, greatest
elongations, lunar and solar eclipses and planetary transits.

The observer, refraction model and search tuning come from .ls-almanac.yaml
(in the working or home directory), LS_ALMANAC_* environment variables and
the flags below, in increasing order of precedence.`,
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default .ls-almanac.yaml)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.StringP("format", "f", "text", "output format: text, json, yaml, toml")
	flags.IntP("count", "n", 5, "number of events to list")
	flags.String("start", "", "search start, RFC 3339 or YYYY-MM-DD (default now)")
	flags.String("refraction", "normal", "refraction model: none, normal, jplhor")
	flags.Float64("lat", 0, "observer latitude in degrees north")
	flags.Float64("lon", 0, "observer longitude in degrees east")
	flags.Float64("height", 0, "observer height above sea level in meters")
	flags.String("site", "", "observer name")
	flags.Bool("stats", false, "print search statistics to stderr")

	root.AddCommand(
		newMoonCmd(a),
		newSeasonsCmd(a),
		newRiseSetCmd(a),
		newApsisCmd(a),
		newElongationCmd(a),
		newMagnitudeCmd(a),
		newEclipseCmd(a),
		newTransitCmd(a),
		newTUICmd(a),
	)
	return root
}

// setup loads configuration and builds the shared services. Only flags the
// user actually set override the config file and environment.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	cfgFile, _ := flags.GetString("config")
	if err := config.Init(cfgFile); err != nil {
		return err
	}
	for flag, key := range flagBindings {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			viper.Set(key, f.Value.String())
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logging.New(cfg.Level()).With("cmd", cmd.Name())
	a.log.SetOutput(cmd.ErrOrStderr())
	a.metrics = metrics.New()
	a.cache = ephem.NewCache(ephem.NewAnalytic(), 0)
	a.stats, _ = flags.GetBool("stats")

	startStr, _ := flags.GetString("start")
	if a.start, err = a.parseStart(startStr); err != nil {
		return err
	}
	a.log.Debug("observer %s, start %v", report.FormatSite(*report.SiteFrom(cfg.ObserverSite())), a.start)
	return nil
}

func (a *app) parseStart(s string) (astro.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return astro.TimeFromGo(a.now())
	}
	for _, layout := range startLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return astro.TimeFromGo(t)
		}
	}
	return astro.Time{}, fmt.Errorf("invalid --start %q: want RFC 3339 or YYYY-MM-DD", s)
}

// finder returns a Finder whose search effort is counted under family.
func (a *app) finder(family string) *events.Finder {
	return events.New(a.cache,
		events.WithSearch(a.cfg.SearchOptions()),
		events.WithCounter(a.metrics.ForFamily(family)),
	)
}

// query describes one command's output.
type query struct {
	family   string
	title    string
	observer bool // include the observer in the document
	run      func(f *events.Finder) ([]report.Record, error)
}

// execute runs q, records its metrics and writes the document.
func (a *app) execute(cmd *cobra.Command, q query) error {
	log := a.log.With("family", q.family)
	log.Debug("searching from %v", a.start)

	began := time.Now()
	recs, err := q.run(a.finder(q.family))
	elapsed := time.Since(began)
	a.metrics.ObserveSearch(q.family, elapsed, len(recs), err)

	hits, misses := a.cache.Stats()
	log.Debug("%d events in %v, position cache %d hits / %d misses", len(recs), elapsed.Round(time.Microsecond), hits, misses)

	if err != nil {
		log.Error("search failed: %v", err)
		return fmt.Errorf("%s: %w", q.family, err)
	}

	doc := report.Document{Title: q.title, Events: recs}
	if q.observer {
		doc.Observer = report.SiteFrom(a.cfg.ObserverSite())
	}
	if err := report.Write(cmd.OutOrStdout(), a.cfg.OutputFormat(), doc); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if a.stats {
		return a.metrics.WriteSummary(cmd.ErrOrStderr())
	}
	return nil
}

// bodyArg parses args[0] as a body, falling back to def.
func bodyArg(args []string, def ephem.Body) (ephem.Body, error) {
	if len(args) == 0 {
		return def, nil
	}
	return ephem.ParseBody(args[0])
}
