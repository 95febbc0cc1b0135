package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-almanac/internal/events"
	"github.com/litescript/ls-almanac/internal/report"
)

func newSeasonsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seasons [year]",
		Short: "Show the equinoxes and solstices of a year",
		Long: `Prints the March and September equinoxes and the June and December
solstices of the given year, or of the start time's year.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := a.start.Calendar().Year
			if len(args) == 1 {
				y, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid year %q", args[0])
				}
				year = y
			}
			return a.execute(cmd, query{
				family: "seasons",
				title:  fmt.Sprintf("Seasons %d", year),
				run: func(f *events.Finder) ([]report.Record, error) {
					s, err := f.Seasons(year)
					if err != nil {
						return nil, err
					}
					return report.Seasons(s), nil
				},
			})
		},
	}
}
