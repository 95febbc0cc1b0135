package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/events"
	"github.com/litescript/ls-almanac/internal/report"
)

func newMagnitudeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "magnitude [body]",
		Short: "Show the brightness and phase of a body",
		Long: `Prints the visual magnitude and lit fraction of the body (default Venus)
at --start. With --peak it lists the next --count dates of greatest
brilliancy instead, which is only defined for Venus.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := bodyArg(args, ephem.Venus)
			if err != nil {
				return err
			}
			peak, _ := cmd.Flags().GetBool("peak")
			if !peak {
				return a.execute(cmd, query{
					family: "magnitude",
					title:  fmt.Sprintf("%v brightness", body),
					run: func(f *events.Finder) ([]report.Record, error) {
						info, err := f.Illumination(body, a.start)
						if err != nil {
							return nil, err
						}
						return report.Magnitudes([]events.IllumInfo{info}, "magnitude"), nil
					},
				})
			}
			return a.execute(cmd, query{
				family: "magnitude",
				title:  fmt.Sprintf("%v greatest brilliancy", body),
				run: func(f *events.Finder) ([]report.Record, error) {
					var out []events.IllumInfo
					t := a.start
					for range a.cfg.Output.Count {
						info, err := f.SearchPeakMagnitude(body, t)
						if err != nil {
							return report.Magnitudes(out, "greatest brilliancy"), err
						}
						out = append(out, info)
						t = info.Time.AddDays(1)
					}
					return report.Magnitudes(out, "greatest brilliancy"), nil
				},
			})
		},
	}
	cmd.Flags().Bool("peak", false, "list dates of greatest brilliancy")
	return cmd
}
