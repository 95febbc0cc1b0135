package report

import (
	"bytes"
	"testing"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/events"
)

func golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func at(t *testing.T, year, month, day, hour, min, sec int) astro.Time {
	t.Helper()
	tm, err := astro.TimeFromCalendar(year, month, day, hour, min, float64(sec))
	require.NoError(t, err)
	return tm
}

func hopkinsville() astro.Observer {
	return astro.Observer{LatDeg: 36.97, LonDeg: -87.67, HeightM: 170, Name: "Hopkinsville"}
}

func TestWriteText_LocalEclipse(t *testing.T) {
	totalBegin := events.EclipseEvent{Time: at(t, 2017, 8, 21, 18, 24, 37), Altitude: 64.02}
	totalEnd := events.EclipseEvent{Time: at(t, 2017, 8, 21, 18, 27, 17), Altitude: 64.02}
	ecl := events.LocalSolarEclipseInfo{
		Kind:         events.EclipseTotal,
		PartialBegin: events.EclipseEvent{Time: at(t, 2017, 8, 21, 16, 56, 31), Altitude: 57.21},
		TotalBegin:   &totalBegin,
		Peak:         events.EclipseEvent{Time: at(t, 2017, 8, 21, 18, 25, 57), Altitude: 64.03},
		TotalEnd:     &totalEnd,
		PartialEnd:   events.EclipseEvent{Time: at(t, 2017, 8, 21, 19, 51, 56), Altitude: 55.87},
	}
	doc := Document{
		Title:    "Solar eclipse at Hopkinsville",
		Observer: SiteFrom(hopkinsville()),
		Events:   LocalSolarEclipses([]events.LocalSolarEclipseInfo{ecl}),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, doc))
	golden(t).Assert(t, "local_eclipse", buf.Bytes())
}

func TestWriteText_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Document{Title: "Moon quarters"}))
	golden(t).Assert(t, "empty", buf.Bytes())
}

func lunarEclipses(t *testing.T) []Record {
	return LunarEclipses([]events.LunarEclipseInfo{
		{Kind: events.EclipseTotal, Peak: at(t, 2021, 5, 26, 11, 18, 42), SdPenum: 151.23, SdPartial: 93.51, SdTotal: 7.44},
		{Kind: events.EclipsePartial, Peak: at(t, 2021, 11, 19, 9, 2, 55), SdPenum: 181.32, SdPartial: 104.18},
	})
}

func TestWriteJSON_LunarEclipses(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, Document{Title: "Lunar eclipses", Events: lunarEclipses(t)}))
	golden(t).Assert(t, "lunar_eclipses", buf.Bytes())
}

func TestWriteJSON_EmptyEventsIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Document{Title: "none"}))
	assert.Contains(t, buf.String(), `"events": []`)
}

func TestWriteYAML(t *testing.T) {
	doc := Document{Title: "Lunar eclipses", Observer: SiteFrom(hopkinsville()), Events: lunarEclipses(t)}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, doc))

	var back Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	require.Len(t, back.Events, 2)
	assert.Equal(t, "total lunar eclipse", back.Events[0].Event)
	assert.True(t, back.Events[0].Time.Equal(doc.Events[0].Time))
	assert.Equal(t, 7.4, back.Events[0].Values["total_semiduration_min"])
	require.NotNil(t, back.Observer)
	assert.Equal(t, "Hopkinsville", back.Observer.Name)
}

func TestWriteTOML(t *testing.T) {
	doc := Document{Title: "Lunar eclipses", Events: lunarEclipses(t)}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTOML, doc))
	assert.Contains(t, buf.String(), "[[events]]")

	var back Document
	require.NoError(t, toml.Unmarshal(buf.Bytes(), &back))
	require.Len(t, back.Events, 2)
	assert.Equal(t, "partial lunar eclipse", back.Events[1].Event)
	assert.True(t, back.Events[1].Time.Equal(doc.Events[1].Time))
	assert.Nil(t, back.Observer)
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"text": FormatText,
		"":     FormatText,
		"JSON": FormatJSON,
		"yml":  FormatYAML,
		"toml": FormatTOML,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
	assert.Error(t, Write(&bytes.Buffer{}, Format(42), Document{}))
	assert.Equal(t, "yaml", FormatYAML.String())
}

func TestConverters(t *testing.T) {
	t0 := at(t, 2024, 1, 1, 0, 0, 0)

	aps := Apsides([]events.Apsis{
		{Body: ephem.Moon, Kind: events.Pericenter, Time: t0, DistKm: 363300.4, DistAU: 0.0024285},
		{Body: ephem.Mars, Kind: events.Apocenter, Time: t0, DistAU: 1.66599, DistKm: 249230000},
	})
	assert.Equal(t, "perigee", aps[0].Event)
	assert.Equal(t, "363300 km", aps[0].Detail)
	assert.Equal(t, "aphelion", aps[1].Event)
	assert.Equal(t, "1.665990 AU", aps[1].Detail)

	el := Elongations([]events.ElongationEvent{
		{Body: ephem.Venus, Time: t0, Visibility: events.Evening, Elongation: 46.08, EclipticSeparation: 46.1},
	})
	assert.Equal(t, "evening, 46.1°", el[0].Detail)

	mags := Magnitudes([]events.IllumInfo{
		{Body: ephem.Venus, Time: t0, Magnitude: -4.84, PhaseAngle: 117.2, PhaseFraction: 0.2719},
		{Body: ephem.Saturn, Time: t0, Magnitude: 0.33, PhaseFraction: 1, RingTilt: -23.54},
	}, "magnitude")
	assert.Equal(t, "mag -4.84, 27% lit", mags[0].Detail)
	assert.NotContains(t, mags[0].Values, "ring_tilt_deg")
	assert.Equal(t, "mag 0.33, 100% lit, rings -23.5°", mags[1].Detail)
	assert.InDelta(t, -23.54, mags[1].Values["ring_tilt_deg"], 1e-9)

	gs := GlobalSolarEclipses([]events.GlobalSolarEclipseInfo{
		{Kind: events.EclipseAnnular, Peak: t0, DistanceKm: 2500, Located: true, Latitude: 11.37, Longitude: -83.1},
		{Kind: events.EclipsePartial, Peak: t0, DistanceKm: 7000},
	})
	assert.Equal(t, "annular solar eclipse", gs[0].Event)
	assert.Equal(t, "greatest at 11.370° N  83.100° W", gs[0].Detail)
	assert.Equal(t, -83.1, gs[0].Values["longitude"])
	assert.NotContains(t, gs[1].Values, "latitude")

	local := LocalSolarEclipses([]events.LocalSolarEclipseInfo{{Kind: events.EclipsePartial}})
	assert.Len(t, local, 3, "partial eclipses have no central contacts")

	tr := Transits([]events.TransitInfo{{Body: ephem.Mercury, Start: t0, Peak: t0, Finish: t0, Separation: 1.266}})
	require.Len(t, tr, 3)
	assert.Equal(t, "separation 1.27′", tr[1].Detail)
	assert.Equal(t, "Mercury", tr[2].Body)

	seasons := Seasons(events.SeasonInfo{MarchEquinox: t0})
	assert.Len(t, seasons, 4)
	assert.Equal(t, time.UTC, seasons[0].Time.Location())

	rs := RiseSet(ephem.Moon, events.Set, t0)
	assert.Equal(t, "set", rs.Event)
}

func TestMoonPhaseNames(t *testing.T) {
	tests := map[float64]string{
		0:     "new",
		350:   "new",
		30:    "waxing crescent",
		90:    "first quarter",
		179.9: "full",
		200:   "full",
		260:   "third quarter",
		330:   "waning crescent",
	}
	for deg, want := range tests {
		assert.Equal(t, want, phaseName(deg), "%v°", deg)
	}
	rec := MoonPhase(astro.MustTime(0), 90.04)
	assert.Equal(t, "90.0° (first quarter)", rec.Detail)
}

func TestFormatSite(t *testing.T) {
	assert.Equal(t, "33.900° S  18.400° E  0 m", FormatSite(Site{Latitude: -33.9, Longitude: 18.4}))
	assert.Equal(t, "x", truncateStr("x", 8))
	assert.Equal(t, "Neptun..", truncateStr("Neptunesque", 8))
}
