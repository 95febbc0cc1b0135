package events

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/search"
)

func TestMoonQuarterSequence(t *testing.T) {
	f := finder()
	start := utc(t, 2019, 1, 1, 0, 0, 0)

	quarters, err := Take(f.MoonQuarters(start), 10)
	require.NoError(t, err)
	require.Len(t, quarters, 10)

	for i, mq := range quarters {
		assert.Equal(t, Quarter(i%4), mq.Quarter, "quarter %d", i)
		if i == 0 {
			assert.False(t, mq.Time.Before(start))
			continue
		}
		gap := mq.Time.Sub(quarters[i-1].Time)
		assert.True(t, gap > 6.8 && gap < 8.6, "gap before quarter %d is %.3f days", i, gap)
	}

	// Published times, UTC.
	assertNear(t, utc(t, 2019, 1, 6, 1, 28, 0), quarters[0].Time, 10*minute, "new moon")
	assertNear(t, utc(t, 2019, 1, 14, 6, 45, 0), quarters[1].Time, 10*minute, "first quarter")
	assertNear(t, utc(t, 2019, 1, 21, 5, 16, 0), quarters[2].Time, 10*minute, "full moon")
	assertNear(t, utc(t, 2019, 1, 27, 21, 10, 0), quarters[3].Time, 10*minute, "third quarter")
}

func TestSearchMoonQuarter_Deterministic(t *testing.T) {
	start := utc(t, 2024, 7, 4, 12, 0, 0)
	a, err := New(nil).SearchMoonQuarter(start)
	require.NoError(t, err)
	b, err := New(nil).SearchMoonQuarter(start)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSearchMoonPhase(t *testing.T) {
	f := finder()
	start := utc(t, 2019, 1, 1, 0, 0, 0)

	tm, err := f.SearchMoonPhase(45, start, 40)
	require.NoError(t, err)
	phase, err := f.MoonPhase(tm)
	require.NoError(t, err)
	assert.InDelta(t, 45, phase, 1e-3)

	// New moon is five days out.
	_, err = f.SearchMoonPhase(0, start, 2)
	assert.ErrorIs(t, err, search.ErrNotFound)

	_, err = f.SearchMoonPhase(360, start, 40)
	assert.ErrorIs(t, err, astro.ErrInvalidArgument)
	_, err = f.SearchMoonPhase(0, start, -1)
	assert.ErrorIs(t, err, astro.ErrInvalidArgument)
	_, err = f.SearchMoonPhase(0, start, math.NaN())
	assert.ErrorIs(t, err, astro.ErrInvalidArgument)
	_, err = f.SearchMoonPhase(0, start, math.Inf(1))
	assert.ErrorIs(t, err, astro.ErrInvalidArgument)
}

func TestNextMoonQuarter_Inconsistent(t *testing.T) {
	f := finder()
	mq, err := f.SearchMoonQuarter(utc(t, 2019, 1, 1, 0, 0, 0))
	require.NoError(t, err)

	// Claim the wrong quarter for a real event.
	mq.Quarter = FullMoon
	_, err = f.NextMoonQuarter(mq)
	assert.ErrorIs(t, err, ErrInconsistent)
}

func TestQuarterString(t *testing.T) {
	assert.Equal(t, "full moon", FullMoon.String())
	assert.Equal(t, "Quarter(9)", Quarter(9).String())
}
