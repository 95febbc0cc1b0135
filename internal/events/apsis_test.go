package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
)

func TestLunarApsis(t *testing.T) {
	f := finder()
	start := utc(t, 2019, 1, 1, 0, 0, 0)

	apo, err := f.SearchLunarApsis(start)
	require.NoError(t, err)
	assert.Equal(t, Apocenter, apo.Kind)
	assert.Equal(t, ephem.Moon, apo.Body)
	assertNear(t, utc(t, 2019, 1, 9, 4, 28, 0), apo.Time, 60*minute, "apogee")
	assert.InDelta(t, 406117, apo.DistKm, 300)
	assert.InDelta(t, apo.DistKm, astro.AUToKm(apo.DistAU), 1e-6)

	peri, err := f.NextLunarApsis(apo)
	require.NoError(t, err)
	assert.Equal(t, Pericenter, peri.Kind)
	assertNear(t, utc(t, 2019, 1, 21, 19, 59, 0), peri.Time, 60*minute, "perigee")
	assert.InDelta(t, 357342, peri.DistKm, 300)
}

func TestLunarApsides_Alternate(t *testing.T) {
	apsides, err := Take(finder().LunarApsides(utc(t, 2022, 3, 1, 0, 0, 0)), 12)
	require.NoError(t, err)
	for i := 1; i < len(apsides); i++ {
		prev, cur := apsides[i-1], apsides[i]
		assert.NotEqual(t, prev.Kind, cur.Kind)
		gap := cur.Time.Sub(prev.Time)
		assert.True(t, gap > 11 && gap < 18, "apsis gap %.2f days", gap)
		if cur.Kind == Pericenter {
			assert.True(t, cur.DistKm > 356000 && cur.DistKm < 371000, "perigee %.0f km", cur.DistKm)
		} else {
			assert.True(t, cur.DistKm > 404000 && cur.DistKm < 407000, "apogee %.0f km", cur.DistKm)
		}
	}
}

func TestNextLunarApsis_Inconsistent(t *testing.T) {
	f := finder()
	apo, err := f.SearchLunarApsis(utc(t, 2019, 1, 1, 0, 0, 0))
	require.NoError(t, err)
	apo.Kind = Pericenter
	_, err = f.NextLunarApsis(apo)
	assert.ErrorIs(t, err, ErrInconsistent)
}

func TestPlanetApsis(t *testing.T) {
	tests := []struct {
		name    string
		body    ephem.Body
		start   [3]int
		kind    ApsisKind
		want    [3]int
		tolDays float64
		distAU  float64
		tolDist float64
	}{
		{"earth perihelion", ephem.Earth, [3]int{2019, 1, 1}, Pericenter, [3]int{2019, 1, 3}, 1.5, 0.98330, 0.0005},
		{"earth aphelion", ephem.Earth, [3]int{2019, 3, 1}, Apocenter, [3]int{2019, 7, 4}, 1.5, 1.01675, 0.0005},
		{"mars perihelion", ephem.Mars, [3]int{2020, 1, 1}, Pericenter, [3]int{2020, 8, 3}, 3, 1.3814, 0.002},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := utc(t, tt.start[0], tt.start[1], tt.start[2], 0, 0, 0)
			a, err := finder().SearchPlanetApsis(tt.body, start)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, a.Kind)
			assert.Equal(t, tt.body, a.Body)
			assertNear(t, utc(t, tt.want[0], tt.want[1], tt.want[2], 12, 0, 0), a.Time, tt.tolDays+0.5, tt.name)
			assert.InDelta(t, tt.distAU, a.DistAU, tt.tolDist)
		})
	}
}

func TestPlanetApsides_Sequence(t *testing.T) {
	for _, body := range []ephem.Body{ephem.Mercury, ephem.Jupiter, ephem.Neptune, ephem.Pluto} {
		t.Run(body.String(), func(t *testing.T) {
			start := utc(t, 2000, 1, 1, 0, 0, 0)
			apsides, err := Take(finder().PlanetApsides(body, start), 4)
			require.NoError(t, err)
			require.Len(t, apsides, 4)

			info, err := body.Info()
			require.NoError(t, err)
			assert.False(t, apsides[0].Time.Before(start))
			for i := 1; i < len(apsides); i++ {
				assert.NotEqual(t, apsides[i-1].Kind, apsides[i].Kind)
				gap := apsides[i].Time.Sub(apsides[i-1].Time)
				assert.InDelta(t, info.OrbitalPeriod/2, gap, info.OrbitalPeriod*0.15, "half-orbit gap")
			}
		})
	}
}

func TestSearchPlanetApsis_Unsupported(t *testing.T) {
	start := utc(t, 2000, 1, 1, 0, 0, 0)
	for _, body := range []ephem.Body{ephem.Sun, ephem.Moon, ephem.Body(42)} {
		_, err := finder().SearchPlanetApsis(body, start)
		assert.ErrorIs(t, err, astro.ErrInvalidArgument, body.String())
	}
}
