package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
)

func TestSearchRelativeLongitude(t *testing.T) {
	tests := []struct {
		name   string
		body   ephem.Body
		target float64
		start  [3]int
		want   [4]int // month, day, hour, minute of the same year
		tol    float64
	}{
		{"mars opposition", ephem.Mars, 0, [3]int{2018, 1, 1}, [4]int{7, 27, 5, 7}, 1},
		{"venus inferior conjunction", ephem.Venus, 0, [3]int{2020, 1, 1}, [4]int{6, 3, 17, 43}, 0.5},
		{"jupiter opposition", ephem.Jupiter, 0, [3]int{2022, 1, 1}, [4]int{9, 26, 20, 0}, 1},
		{"mercury superior conjunction", ephem.Mercury, 180, [3]int{2021, 3, 1}, [4]int{4, 19, 0, 0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := finder()
			start := utc(t, tt.start[0], tt.start[1], tt.start[2], 0, 0, 0)
			got, err := f.SearchRelativeLongitude(tt.body, tt.target, start)
			require.NoError(t, err)
			assertNear(t, utc(t, tt.start[0], tt.want[0], tt.want[1], tt.want[2], tt.want[3], 0), got, tt.tol, tt.name)

			plon, err := f.EclipticLongitude(tt.body, got)
			require.NoError(t, err)
			elon, err := f.EclipticLongitude(ephem.Earth, got)
			require.NoError(t, err)
			rel := elon - plon
			if tt.body == ephem.Mercury || tt.body == ephem.Venus {
				rel = -rel
			}
			assert.InDelta(t, 0, astro.LongitudeOffset(rel-tt.target), 1e-3)
		})
	}
}

func TestSearchRelativeLongitude_Invalid(t *testing.T) {
	start := utc(t, 2020, 1, 1, 0, 0, 0)
	for _, body := range []ephem.Body{ephem.Earth, ephem.Sun, ephem.Moon} {
		_, err := finder().SearchRelativeLongitude(body, 0, start)
		assert.ErrorIs(t, err, astro.ErrInvalidArgument, body.String())
	}
	_, err := finder().SearchRelativeLongitude(ephem.Mars, 400, start)
	assert.ErrorIs(t, err, astro.ErrInvalidArgument)
}

func TestSynodicPeriod(t *testing.T) {
	tests := map[ephem.Body]float64{
		ephem.Mercury: 115.88,
		ephem.Venus:   583.92,
		ephem.Mars:    779.94,
		ephem.Jupiter: 398.88,
	}
	for body, want := range tests {
		got, err := SynodicPeriod(body)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 0.1, body.String())
	}
	_, err := SynodicPeriod(ephem.Earth)
	assert.ErrorIs(t, err, astro.ErrInvalidArgument)
}

func TestSearchMaxElongation(t *testing.T) {
	tests := []struct {
		name       string
		body       ephem.Body
		start      [3]int
		want       [3]int
		visibility Visibility
		elong      float64
	}{
		{"venus evening", ephem.Venus, [3]int{2020, 1, 1}, [3]int{2020, 3, 24}, Evening, 46.1},
		{"venus morning", ephem.Venus, [3]int{2020, 4, 1}, [3]int{2020, 8, 13}, Morning, 45.8},
		{"mercury evening", ephem.Mercury, [3]int{2021, 1, 1}, [3]int{2021, 1, 24}, Evening, 18.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := utc(t, tt.start[0], tt.start[1], tt.start[2], 0, 0, 0)
			ev, err := finder().SearchMaxElongation(tt.body, start)
			require.NoError(t, err)
			assertNear(t, utc(t, tt.want[0], tt.want[1], tt.want[2], 12, 0, 0), ev.Time, 1.5, tt.name)
			assert.Equal(t, tt.visibility, ev.Visibility)
			assert.InDelta(t, tt.elong, ev.Elongation, 0.3)
			assert.True(t, ev.EclipticSeparation >= 0 && ev.EclipticSeparation <= 180)
			assert.False(t, ev.Time.Before(start))
		})
	}
}

func TestSearchMaxElongation_Unsupported(t *testing.T) {
	_, err := finder().SearchMaxElongation(ephem.Mars, utc(t, 2020, 1, 1, 0, 0, 0))
	assert.ErrorIs(t, err, astro.ErrInvalidArgument)
}

func TestElongation(t *testing.T) {
	ev, err := finder().Elongation(ephem.Jupiter, utc(t, 2022, 9, 26, 20, 0, 0))
	require.NoError(t, err)
	assert.Greater(t, ev.Elongation, 175.0)
	assert.InDelta(t, 180, ev.EclipticSeparation, 1)
	assert.Equal(t, "evening", Evening.String())
}
