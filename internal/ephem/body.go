// Package ephem provides heliocentric and geocentric positions of the Sun,
// Moon and planets.
package ephem

import (
	"fmt"
	"strings"

	"github.com/litescript/ls-almanac/internal/astro"
)

// Body identifies a solar-system body.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Earth
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
)

// ErrUnknownBody reports a body outside the supported set or one the
// requested operation cannot use.
var ErrUnknownBody = fmt.Errorf("%w: unsupported body", astro.ErrInvalidArgument)

// PlanetClass groups bodies for display.
type PlanetClass int

const (
	ClassLuminary PlanetClass = iota // Sun and Moon
	ClassInner                       // Mercury through Mars
	ClassGiant                       // Jupiter through Neptune
	ClassDwarf                       // Pluto
)

// BodyInfo describes a body's catalog data.
type BodyInfo struct {
	Name          string
	Code          string  // short display code
	NAIFID        int     // NAIF SPICE ID
	Class         PlanetClass
	RadiusKm      float64 // mean radius
	OrbitalPeriod float64 // sidereal period in days; zero for Sun and Moon
}

var bodies = [...]BodyInfo{
	Sun:     {Name: "Sun", Code: "SUN", NAIFID: 10, Class: ClassLuminary, RadiusKm: 695700},
	Moon:    {Name: "Moon", Code: "MOON", NAIFID: 301, Class: ClassLuminary, RadiusKm: 1737.4},
	Mercury: {Name: "Mercury", Code: "MERC", NAIFID: 199, Class: ClassInner, RadiusKm: 2439.7, OrbitalPeriod: 87.969},
	Venus:   {Name: "Venus", Code: "VEN", NAIFID: 299, Class: ClassInner, RadiusKm: 6051.8, OrbitalPeriod: 224.701},
	Earth:   {Name: "Earth", Code: "EARTH", NAIFID: 399, Class: ClassInner, RadiusKm: 6371.0, OrbitalPeriod: 365.256},
	Mars:    {Name: "Mars", Code: "MARS", NAIFID: 499, Class: ClassInner, RadiusKm: 3389.5, OrbitalPeriod: 686.980},
	Jupiter: {Name: "Jupiter", Code: "JUP", NAIFID: 599, Class: ClassGiant, RadiusKm: 69911, OrbitalPeriod: 4332.589},
	Saturn:  {Name: "Saturn", Code: "SAT", NAIFID: 699, Class: ClassGiant, RadiusKm: 58232, OrbitalPeriod: 10759.22},
	Uranus:  {Name: "Uranus", Code: "URA", NAIFID: 799, Class: ClassGiant, RadiusKm: 25362, OrbitalPeriod: 30685.4},
	Neptune: {Name: "Neptune", Code: "NEP", NAIFID: 899, Class: ClassGiant, RadiusKm: 24622, OrbitalPeriod: 60189.0},
	Pluto:   {Name: "Pluto", Code: "PLU", NAIFID: 999, Class: ClassDwarf, RadiusKm: 1188.3, OrbitalPeriod: 90560.0},
}

// Valid reports whether b is a known body.
func (b Body) Valid() bool {
	return b >= Sun && int(b) < len(bodies)
}

// Info returns the catalog entry for b.
func (b Body) Info() (BodyInfo, error) {
	if !b.Valid() {
		return BodyInfo{}, fmt.Errorf("%w: %d", ErrUnknownBody, int(b))
	}
	return bodies[b], nil
}

func (b Body) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return bodies[b].Name
}

// IsPlanet reports whether b orbits the Sun directly.
func (b Body) IsPlanet() bool {
	return b.Valid() && bodies[b].OrbitalPeriod > 0
}

// ParseBody resolves a body by name or code, case-insensitively.
func ParseBody(s string) (Body, error) {
	s = strings.TrimSpace(s)
	for i, info := range bodies {
		if strings.EqualFold(s, info.Name) || strings.EqualFold(s, info.Code) {
			return Body(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBody, s)
}

// Bodies returns every supported body in catalog order.
func Bodies() []Body {
	out := make([]Body, len(bodies))
	for i := range bodies {
		out[i] = Body(i)
	}
	return out
}

// Planets returns the bodies with heliocentric orbits, Earth excluded.
func Planets() []Body {
	return []Body{Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}
}
