package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/events"
	"github.com/litescript/ls-almanac/internal/report"
	"github.com/litescript/ls-almanac/internal/search"
)

// riseSetLimitDays bounds each search; polar day or night can last months.
const riseSetLimitDays = 200.0

func newRiseSetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "riseset [body]",
		Short: "Show rise and set times of a body",
		Long: `Prints the next --count rises and --count sets of the body (default Sun)
for the configured observer, in time order. With --culmination the upper
meridian transits are listed too.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := bodyArg(args, ephem.Sun)
			if err != nil {
				return err
			}
			culminate, _ := cmd.Flags().GetBool("culmination")
			return a.execute(cmd, query{
				family:   "riseset",
				title:    fmt.Sprintf("%v rise and set", body),
				observer: true,
				run: func(f *events.Finder) ([]report.Record, error) {
					return a.riseSet(f, body, culminate)
				},
			})
		},
	}
	cmd.Flags().Bool("culmination", false, "also list meridian transits")
	return cmd
}

func (a *app) riseSet(f *events.Finder, body ephem.Body, culminate bool) ([]report.Record, error) {
	obs := a.cfg.ObserverSite()
	n := a.cfg.Output.Count

	var recs []report.Record
	for _, dir := range []events.Direction{events.Rise, events.Set} {
		t := a.start
		for range n {
			tx, err := f.SearchRiseSet(body, obs, dir, t, riseSetLimitDays)
			if errors.Is(err, search.ErrNotFound) {
				a.log.Info("no %v of %v within %v days of %v", dir, body, riseSetLimitDays, t)
				break
			}
			if err != nil {
				return nil, err
			}
			recs = append(recs, report.RiseSet(body, dir, tx))
			t = tx.AddDays(0.01)
		}
	}

	if culminate {
		t := a.start
		for range n {
			ev, err := f.SearchHourAngle(body, obs, 0, t)
			if err != nil {
				return nil, err
			}
			recs = append(recs, report.Culmination(body, ev))
			t = ev.Time.AddDays(0.01)
		}
	}

	slices.SortStableFunc(recs, func(x, y report.Record) int { return x.Time.Compare(y.Time) })
	return recs, nil
}

