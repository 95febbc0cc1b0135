package cli

import (
	"fmt"
	"iter"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/events"
	"github.com/litescript/ls-almanac/internal/report"
)

func newApsisCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "apsis [body]",
		Short: "Show perigees and apogees, or perihelia and aphelia",
		Long: `Prints the next --count apsides of the body: perigee and apogee for the
Moon (the default), perihelion and aphelion for a planet.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := bodyArg(args, ephem.Moon)
			if err != nil {
				return err
			}
			return a.execute(cmd, query{
				family: "apsis",
				title:  fmt.Sprintf("%v apsides", body),
				run: func(f *events.Finder) ([]report.Record, error) {
					var seq iter.Seq2[events.Apsis, error]
					if body == ephem.Moon {
						seq = f.LunarApsides(a.start)
					} else {
						seq = f.PlanetApsides(body, a.start)
					}
					aps, err := events.Take(seq, a.cfg.Output.Count)
					if err != nil {
						return nil, err
					}
					return report.Apsides(aps), nil
				},
			})
		},
	}
}
