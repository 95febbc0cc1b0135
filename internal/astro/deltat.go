package astro

import "math"

// daysPerTropicalYear converts day counts to decimal years for the ΔT fit.
const daysPerTropicalYear = 365.24217

// DeltaT returns TT − UT in seconds for a UT expressed in days since J2000,
// using the Espenak–Meeus piecewise polynomials. Outside the fitted span
// the long-term parabola takes over.
func DeltaT(ut float64) float64 {
	y := 2000 + (ut-14)/daysPerTropicalYear

	var u float64
	switch {
	case y < -500:
		u = (y - 1820) / 100
		return -20 + 32*u*u

	case y < 500:
		u = y / 100
		return 10583.6 + u*(-1014.41+u*(33.78311+u*(-5.952053+u*(-0.1798452+u*(0.022174192+u*0.0090316521)))))

	case y < 1600:
		u = (y - 1000) / 100
		return 1574.2 + u*(-556.01+u*(71.23472+u*(0.319781+u*(-0.8503463+u*(-0.005050998+u*0.0083572073)))))

	case y < 1700:
		u = y - 1600
		return 120 + u*(-0.9808+u*(-0.01532+u/7129))

	case y < 1800:
		u = y - 1700
		return 8.83 + u*(0.1603+u*(-0.0059285+u*(0.00013336-u/1174000)))

	case y < 1860:
		u = y - 1800
		return 13.72 + u*(-0.332447+u*(0.0068612+u*(0.0041116+u*(-0.00037436+u*(0.0000121272+u*(-0.0000001699+u*0.000000000875))))))

	case y < 1900:
		u = y - 1860
		return 7.62 + u*(0.5737+u*(-0.251754+u*(0.01680668+u*(-0.0004473624+u/233174))))

	case y < 1920:
		u = y - 1900
		return -2.79 + u*(1.494119+u*(-0.0598939+u*(0.0061966-u*0.000197)))

	case y < 1941:
		u = y - 1920
		return 21.20 + u*(0.84493+u*(-0.076100+u*0.0020936))

	case y < 1961:
		u = y - 1950
		return 29.07 + u*(0.407+u*(-1/233.0+u/2547))

	case y < 1986:
		u = y - 1975
		return 45.45 + u*(1.067+u*(-1/260.0-u/718))

	case y < 2005:
		u = y - 2000
		return 63.86 + u*(0.3345+u*(-0.060374+u*(0.0017275+u*(0.000651814+u*0.00002373599))))

	case y < 2050:
		u = y - 2000
		return 62.92 + u*(0.32217+u*0.005589)

	case y < 2150:
		u = (y - 1820) / 100
		return -20 + 32*u*u - 0.5628*(2150-y)

	default:
		u = (y - 1820) / 100
		return -20 + 32*math.Pow(u, 2)
	}
}
