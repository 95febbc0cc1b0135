package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/events"
)

// SiteFrom converts an observer for display.
func SiteFrom(obs astro.Observer) *Site {
	return &Site{Name: obs.Name, Latitude: obs.LatDeg, Longitude: obs.LonDeg, Height: obs.HeightM}
}

func convert[T any](in []T, f func(T) Record) []Record {
	out := make([]Record, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// MoonPhase records the Moon's phase angle at t.
func MoonPhase(t astro.Time, phaseDeg float64) Record {
	return Record{
		Time:   t.Go(),
		Event:  "moon phase",
		Body:   ephem.Moon.String(),
		Detail: fmt.Sprintf("%.1f° (%s)", phaseDeg, phaseName(phaseDeg)),
		Values: map[string]float64{"phase_deg": round(phaseDeg, 3)},
	}
}

// phaseName names the phase an angle falls in, with each principal phase
// centered on its quarter.
func phaseName(deg float64) string {
	names := [...]string{
		"new", "waxing crescent", "first quarter", "waxing gibbous",
		"full", "waning gibbous", "third quarter", "waning crescent",
	}
	i := int(math.Floor(astro.NormalizeDegrees(deg+22.5)/45)) % len(names)
	return names[i]
}

// MoonQuarters records lunar quarters.
func MoonQuarters(qs []events.MoonQuarter) []Record {
	return convert(qs, func(q events.MoonQuarter) Record {
		return Record{Time: q.Time.Go(), Event: q.Quarter.String(), Body: ephem.Moon.String()}
	})
}

// Seasons records the equinoxes and solstices of one year.
func Seasons(s events.SeasonInfo) []Record {
	sun := ephem.Sun.String()
	return []Record{
		{Time: s.MarchEquinox.Go(), Event: "march equinox", Body: sun},
		{Time: s.JuneSolstice.Go(), Event: "june solstice", Body: sun},
		{Time: s.SeptemberEquinox.Go(), Event: "september equinox", Body: sun},
		{Time: s.DecemberSolstice.Go(), Event: "december solstice", Body: sun},
	}
}

// RiseSet records a rise or set of body.
func RiseSet(body ephem.Body, dir events.Direction, t astro.Time) Record {
	return Record{Time: t.Go(), Event: dir.String(), Body: body.String()}
}

// Culmination records a meridian transit together with where the body stood.
func Culmination(body ephem.Body, ev events.HourAngleEvent) Record {
	return Record{
		Time:   ev.Time.Go(),
		Event:  "culmination",
		Body:   body.String(),
		Detail: fmt.Sprintf("altitude %.1f°, azimuth %.1f°", ev.Horizon.AltDeg, ev.Horizon.AzDeg),
		Values: map[string]float64{
			"altitude_deg": round(ev.Horizon.AltDeg, 3),
			"azimuth_deg":  round(ev.Horizon.AzDeg, 3),
		},
	}
}

// Apsides records perigees/apogees of the Moon and perihelia/aphelia of
// the planets.
func Apsides(aps []events.Apsis) []Record {
	return convert(aps, func(a events.Apsis) Record {
		rec := Record{
			Time:   a.Time.Go(),
			Event:  apsisName(a),
			Body:   a.Body.String(),
			Values: map[string]float64{"distance_au": round(a.DistAU, 7), "distance_km": round(a.DistKm, 0)},
		}
		if a.Body == ephem.Moon {
			rec.Detail = fmt.Sprintf("%.0f km", a.DistKm)
		} else {
			rec.Detail = fmt.Sprintf("%.6f AU", a.DistAU)
		}
		return rec
	})
}

func apsisName(a events.Apsis) string {
	switch {
	case a.Body == ephem.Moon && a.Kind == events.Pericenter:
		return "perigee"
	case a.Body == ephem.Moon:
		return "apogee"
	case a.Kind == events.Pericenter:
		return "perihelion"
	default:
		return "aphelion"
	}
}

// Elongations records greatest elongations.
func Elongations(evs []events.ElongationEvent) []Record {
	return convert(evs, func(e events.ElongationEvent) Record {
		return Record{
			Time:   e.Time.Go(),
			Event:  "greatest elongation",
			Body:   e.Body.String(),
			Detail: fmt.Sprintf("%s, %.1f°", e.Visibility, e.Elongation),
			Values: map[string]float64{
				"elongation_deg":          round(e.Elongation, 3),
				"ecliptic_separation_deg": round(e.EclipticSeparation, 3),
			},
		}
	})
}

// Magnitudes records visual magnitude and phase. Saturn also carries
// its ring tilt.
func Magnitudes(infos []events.IllumInfo, event string) []Record {
	return convert(infos, func(i events.IllumInfo) Record {
		rec := Record{
			Time:   i.Time.Go(),
			Event:  event,
			Body:   i.Body.String(),
			Detail: fmt.Sprintf("mag %.2f, %.0f%% lit", i.Magnitude, 100*i.PhaseFraction),
			Values: map[string]float64{
				"magnitude":      round(i.Magnitude, 3),
				"phase_deg":      round(i.PhaseAngle, 3),
				"phase_fraction": round(i.PhaseFraction, 4),
				"helio_dist_au":  round(i.HelioDist, 6),
			},
		}
		if i.Body == ephem.Saturn {
			rec.Values["ring_tilt_deg"] = round(i.RingTilt, 3)
			rec.Detail += fmt.Sprintf(", rings %+.1f°", i.RingTilt)
		}
		return rec
	})
}

// LunarEclipses records lunar eclipses at their peaks.
func LunarEclipses(ecls []events.LunarEclipseInfo) []Record {
	return convert(ecls, func(e events.LunarEclipseInfo) Record {
		var parts []string
		for _, p := range []struct {
			name string
			sd   float64
		}{{"penumbral", e.SdPenum}, {"partial", e.SdPartial}, {"total", e.SdTotal}} {
			if p.sd > 0 {
				parts = append(parts, fmt.Sprintf("%s ±%.1f min", p.name, p.sd))
			}
		}
		return Record{
			Time:   e.Peak.Go(),
			Event:  e.Kind.String() + " lunar eclipse",
			Body:   ephem.Moon.String(),
			Detail: strings.Join(parts, ", "),
			Values: map[string]float64{
				"penumbral_semiduration_min": round(e.SdPenum, 1),
				"partial_semiduration_min":   round(e.SdPartial, 1),
				"total_semiduration_min":     round(e.SdTotal, 1),
			},
		}
	})
}

// GlobalSolarEclipses records solar eclipses at greatest eclipse.
func GlobalSolarEclipses(ecls []events.GlobalSolarEclipseInfo) []Record {
	return convert(ecls, func(e events.GlobalSolarEclipseInfo) Record {
		rec := Record{
			Time:   e.Peak.Go(),
			Event:  e.Kind.String() + " solar eclipse",
			Body:   ephem.Sun.String(),
			Values: map[string]float64{"axis_distance_km": round(e.DistanceKm, 0)},
		}
		if e.Located {
			rec.Detail = "greatest at " + formatLatLon(e.Latitude, e.Longitude)
			rec.Values["latitude"] = round(e.Latitude, 3)
			rec.Values["longitude"] = round(e.Longitude, 3)
		} else {
			rec.Detail = "shadow axis misses the Earth"
		}
		return rec
	})
}

// LocalSolarEclipses records each contact of locally visible solar
// eclipses along with the Sun's altitude.
func LocalSolarEclipses(ecls []events.LocalSolarEclipseInfo) []Record {
	var out []Record
	for _, e := range ecls {
		contact := func(ev events.EclipseEvent, name, detail string) Record {
			if detail != "" {
				detail += ", "
			}
			return Record{
				Time:   ev.Time.Go(),
				Event:  name,
				Body:   ephem.Sun.String(),
				Detail: fmt.Sprintf("%saltitude %.1f°", detail, ev.Altitude),
				Values: map[string]float64{"altitude_deg": round(ev.Altitude, 3)},
			}
		}
		out = append(out, contact(e.PartialBegin, "partial eclipse begins", ""))
		if e.TotalBegin != nil {
			out = append(out, contact(*e.TotalBegin, e.Kind.String()+" eclipse begins", ""))
		}
		out = append(out, contact(e.Peak, "eclipse peak", e.Kind.String()))
		if e.TotalEnd != nil {
			out = append(out, contact(*e.TotalEnd, e.Kind.String()+" eclipse ends", ""))
		}
		out = append(out, contact(e.PartialEnd, "partial eclipse ends", ""))
	}
	return out
}

// Transits records the start, peak and finish of each transit.
func Transits(trs []events.TransitInfo) []Record {
	var out []Record
	for _, tr := range trs {
		name := tr.Body.String()
		out = append(out,
			Record{Time: tr.Start.Go(), Event: "transit begins", Body: name},
			Record{
				Time:   tr.Peak.Go(),
				Event:  "transit peak",
				Body:   name,
				Detail: fmt.Sprintf("separation %.2f′", tr.Separation),
				Values: map[string]float64{"separation_arcmin": round(tr.Separation, 3)},
			},
			Record{Time: tr.Finish.Go(), Event: "transit ends", Body: name},
		)
	}
	return out
}
