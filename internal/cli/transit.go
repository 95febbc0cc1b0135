package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/events"
	"github.com/litescript/ls-almanac/internal/report"
)

func newTransitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "transit [body]",
		Short: "List transits of Mercury or Venus across the Sun",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := bodyArg(args, ephem.Mercury)
			if err != nil {
				return err
			}
			return a.execute(cmd, query{
				family: "transit",
				title:  fmt.Sprintf("Transits of %v", body),
				run: func(f *events.Finder) ([]report.Record, error) {
					trs, err := events.Take(f.Transits(body, a.start), a.cfg.Output.Count)
					return report.Transits(trs), err
				},
			})
		},
	}
}
