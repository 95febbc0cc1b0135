package cli

import (
	"github.com/spf13/cobra"

	"github.com/litescript/ls-almanac/internal/events"
	"github.com/litescript/ls-almanac/internal/report"
)

func newEclipseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eclipse",
		Short: "Find lunar and solar eclipses",
		Long: `The eclipse command group searches for lunar eclipses, solar eclipses
anywhere on Earth, and solar eclipses seen from the configured observer.`,
	}

	lunar := &cobra.Command{
		Use:   "lunar",
		Short: "List the next lunar eclipses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.execute(cmd, query{
				family: "lunar_eclipse",
				title:  "Lunar eclipses",
				run: func(f *events.Finder) ([]report.Record, error) {
					ecl, err := events.Take(f.LunarEclipses(a.start), a.cfg.Output.Count)
					return report.LunarEclipses(ecl), err
				},
			})
		},
	}

	solar := &cobra.Command{
		Use:   "solar",
		Short: "List the next solar eclipses and where they are greatest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.execute(cmd, query{
				family: "solar_eclipse",
				title:  "Solar eclipses",
				run: func(f *events.Finder) ([]report.Record, error) {
					ecl, err := events.Take(f.GlobalSolarEclipses(a.start), a.cfg.Output.Count)
					return report.GlobalSolarEclipses(ecl), err
				},
			})
		},
	}

	local := &cobra.Command{
		Use:   "local",
		Short: "List solar eclipses visible from the observer",
		Long: `Lists the next solar eclipses visible from the configured observer with
their contact times and the Sun's altitude at each.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.execute(cmd, query{
				family:   "local_eclipse",
				title:    "Local solar eclipses",
				observer: true,
				run: func(f *events.Finder) ([]report.Record, error) {
					ecl, err := events.Take(f.LocalSolarEclipses(a.start, a.cfg.ObserverSite()), a.cfg.Output.Count)
					return report.LocalSolarEclipses(ecl), err
				},
			})
		},
	}

	cmd.AddCommand(lunar, solar, local)
	return cmd
}
