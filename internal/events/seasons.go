package events

import (
	"fmt"

	"github.com/litescript/ls-almanac/internal/astro"
)

// SeasonInfo holds the equinoxes and solstices of one calendar year.
type SeasonInfo struct {
	MarchEquinox     astro.Time
	JuneSolstice     astro.Time
	SeptemberEquinox astro.Time
	DecemberSolstice astro.Time
}

// SearchSunLongitude finds when the Sun's apparent longitude reaches
// targetLon within limitDays after start.
func (f *Finder) SearchSunLongitude(targetLon float64, start astro.Time, limitDays float64) (astro.Time, error) {
	if err := checkTarget("solar longitude", targetLon); err != nil {
		return astro.Time{}, err
	}
	if !(limitDays > 0) {
		return astro.Time{}, fmt.Errorf("%w: longitude search limit %v", astro.ErrInvalidArgument, limitDays)
	}
	end, err := start.Add(limitDays)
	if err != nil {
		return astro.Time{}, err
	}
	return f.root(longitudeFunc(f.SunLongitude, targetLon), start, end)
}

// Seasons returns the equinoxes and solstices of year.
func (f *Finder) Seasons(year int) (SeasonInfo, error) {
	var (
		info SeasonInfo
		err  error
	)
	steps := []struct {
		lon   float64
		month int
		dst   *astro.Time
	}{
		{0, 3, &info.MarchEquinox},
		{90, 6, &info.JuneSolstice},
		{180, 9, &info.SeptemberEquinox},
		{270, 12, &info.DecemberSolstice},
	}
	for _, s := range steps {
		if *s.dst, err = f.seasonChange(s.lon, year, s.month); err != nil {
			return SeasonInfo{}, err
		}
	}
	return info, nil
}

func (f *Finder) seasonChange(lon float64, year, month int) (astro.Time, error) {
	start, err := astro.TimeFromCalendar(year, month, 10, 0, 0, 0)
	if err != nil {
		return astro.Time{}, err
	}
	t, err := f.SearchSunLongitude(lon, start, 20)
	if err != nil {
		return astro.Time{}, fmt.Errorf("solar longitude %v° in %d: %w", lon, year, err)
	}
	return t, nil
}
