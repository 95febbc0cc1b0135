package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/events"
	"github.com/litescript/ls-almanac/internal/report"
)

func newElongationCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "elongation [body]",
		Short: "Show greatest elongations of Mercury or Venus",
		Long: `Prints the next --count greatest elongations of Mercury (the default) or
Venus, each marked as a morning or evening apparition.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := bodyArg(args, ephem.Mercury)
			if err != nil {
				return err
			}
			return a.execute(cmd, query{
				family: "elongation",
				title:  fmt.Sprintf("%v greatest elongations", body),
				run: func(f *events.Finder) ([]report.Record, error) {
					var out []events.ElongationEvent
					t := a.start
					for range a.cfg.Output.Count {
						ev, err := f.SearchMaxElongation(body, t)
						if err != nil {
							return report.Elongations(out), err
						}
						out = append(out, ev)
						t = ev.Time.AddDays(1)
					}
					return report.Elongations(out), nil
				},
			})
		},
	}
}
