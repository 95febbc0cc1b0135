package cli

import (
	"github.com/spf13/cobra"

	"github.com/litescript/ls-almanac/internal/events"
	"github.com/litescript/ls-almanac/internal/report"
)

func newMoonCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "moon",
		Short: "Show the Moon's phase and the next quarters",
		Long: `Prints the Moon's phase angle at the start time followed by the next
--count lunar quarters (new moon, first quarter, full moon, third quarter).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.execute(cmd, query{
				family: "moon",
				title:  "Moon phases",
				run: func(f *events.Finder) ([]report.Record, error) {
					phase, err := f.MoonPhase(a.start)
					if err != nil {
						return nil, err
					}
					qs, err := events.Take(f.MoonQuarters(a.start), a.cfg.Output.Count)
					if err != nil {
						return nil, err
					}
					return append([]report.Record{report.MoonPhase(a.start, phase)}, report.MoonQuarters(qs)...), nil
				},
			})
		},
	}
}
