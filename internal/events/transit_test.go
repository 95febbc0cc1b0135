package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
)

func TestSearchTransit_Mercury(t *testing.T) {
	tr, err := finder().SearchTransit(ephem.Mercury, utc(t, 2019, 1, 1, 0, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, ephem.Mercury, tr.Body)
	assertNear(t, utc(t, 2019, 11, 11, 12, 35, 27), tr.Start, 10*minute, "start")
	assertNear(t, utc(t, 2019, 11, 11, 15, 19, 48), tr.Peak, 10*minute, "peak")
	assertNear(t, utc(t, 2019, 11, 11, 18, 4, 8), tr.Finish, 10*minute, "finish")
	assert.True(t, tr.Start.Before(tr.Peak) && tr.Peak.Before(tr.Finish))
	assert.Greater(t, tr.Separation, 0.5)
	assert.Less(t, tr.Separation, 2.5)
}

func TestTransits_Venus(t *testing.T) {
	got, err := Take(finder().Transits(ephem.Venus, utc(t, 2004, 1, 1, 0, 0, 0)), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assertNear(t, utc(t, 2004, 6, 8, 8, 19, 59), got[0].Peak, 15*minute, "2004 peak")
	assertNear(t, utc(t, 2004, 6, 8, 5, 13, 0), got[0].Start, 15*minute, "2004 start")
	assertNear(t, utc(t, 2012, 6, 6, 1, 29, 28), got[1].Peak, 15*minute, "2012 peak")
	assertNear(t, utc(t, 2012, 6, 6, 4, 49, 0), got[1].Finish, 15*minute, "2012 finish")

	// Venus transits last several hours.
	for _, tr := range got {
		hours := 24 * tr.Finish.Sub(tr.Start)
		assert.Greater(t, hours, 5.0)
		assert.Less(t, hours, 8.0)
	}
}

func TestSearchTransit_Unsupported(t *testing.T) {
	for _, body := range []ephem.Body{ephem.Mars, ephem.Moon, ephem.Sun} {
		_, err := finder().SearchTransit(body, astro.MustTime(0))
		assert.ErrorIs(t, err, astro.ErrInvalidArgument, body.String())
		assert.ErrorIs(t, err, ephem.ErrUnknownBody, body.String())
	}
}
