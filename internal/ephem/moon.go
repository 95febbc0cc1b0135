package ephem

import (
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"

	"github.com/litescript/ls-almanac/internal/astro"
)

// geoMoon returns the geocentric Moon in EQJ, in AU.
func geoMoon(t astro.Time) astro.Vec3 {
	jde := t.JDE()
	lon, lat, distKm := moonposition.Position(jde)

	// The series is referred to the mean equinox of date; adding the
	// nutation in longitude places it on the true ecliptic of date.
	dpsi, _ := nutation.Nutation(jde)
	ect := astro.VectorFromSphere(astro.Spherical{
		Lat:  lat.Deg(),
		Lon:  lon.Deg() + dpsi.Deg(),
		Dist: distKm / astro.AU,
	})
	return astro.RotationECTToEQJ(t).Apply(ect)
}
