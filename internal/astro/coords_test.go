package astro

import (
	"errors"
	"math"
	"testing"
)

func TestGreenwichMeanSiderealTime(t *testing.T) {
	// At J2000 epoch (2000-01-01 12:00 UT), GMST should be approximately 280.46°
	gmst := greenwichMeanSiderealTime(MustTime(0))
	if math.Abs(gmst-280.46061837) > 1e-9 {
		t.Errorf("GMST at J2000 = %v, want 280.46061837", gmst)
	}
}

func TestSiderealTime(t *testing.T) {
	tests := []struct {
		name string
		ut   float64
	}{
		{"J2000", 0},
		{"2019", 7000.25},
		{"1800", -73000.5},
		{"2150", 54787.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := MustTime(tt.ut)
			gast := SiderealTime(tm)
			if gast < 0 || gast >= 24 {
				t.Fatalf("SiderealTime() = %v, out of [0, 24)", gast)
			}
			// Apparent and mean sidereal time differ by the equation of the equinoxes (< 1.2s).
			gmst := greenwichMeanSiderealTime(tm) / 15
			diff := math.Abs(gast - gmst)
			if diff > 12 {
				diff = 24 - diff
			}
			if diff*3600 > 1.2 {
				t.Errorf("GAST-GMST = %.3fs, want < 1.2s", diff*3600)
			}
		})
	}
}

func TestObserverVector(t *testing.T) {
	tm := MustTime(6910.27)
	tests := []struct {
		name  string
		obs   Observer
		minKm float64
		maxKm float64
	}{
		{"equator", Observer{LatDeg: 0, LonDeg: 0}, 6378.0, 6378.2},
		{"pole", Observer{LatDeg: 90, LonDeg: 0}, 6356.6, 6356.9},
		{"mountain", Observer{LatDeg: 19.82, LonDeg: -155.47, HeightM: 4205}, 6379, 6386},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ObserverVector(tm, tt.obs)
			if err != nil {
				t.Fatal(err)
			}
			if km := v.Norm() * AU; km < tt.minKm || km > tt.maxKm {
				t.Errorf("|ObserverVector| = %.3f km, want [%v, %v]", km, tt.minKm, tt.maxKm)
			}
			// The observer's up direction is close to the geocentric direction.
			h := RotationEQJToHOR(tm, tt.obs).Apply(v.Normalized())
			if h.Z < 0.9999 {
				t.Errorf("observer direction in HOR = %+v, want near zenith", h)
			}
		})
	}
}

func TestObserverValidate(t *testing.T) {
	bad := []Observer{
		{LatDeg: 91},
		{LatDeg: -90.5},
		{LatDeg: math.NaN()},
		{LonDeg: math.Inf(1)},
		{HeightM: math.NaN()},
	}
	for _, o := range bad {
		if err := o.Validate(); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Validate(%+v) = %v, want ErrInvalidArgument", o, err)
		}
	}
	if err := (Observer{LatDeg: -90, LonDeg: 540}).Validate(); err != nil {
		t.Errorf("Validate() of pole observer = %v", err)
	}
}

func TestHorizon_CelestialPole(t *testing.T) {
	tm := MustTime(8000.5)
	obs := Observer{LatDeg: 35, LonDeg: -117}

	hor, err := Horizon(tm, obs, 0, 90, NoRefraction)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(hor.AltDeg-35) > 1e-9 {
		t.Errorf("pole altitude = %v, want 35", hor.AltDeg)
	}
	if hor.AzDeg > 1e-6 && hor.AzDeg < 360-1e-6 {
		t.Errorf("pole azimuth = %v, want 0", hor.AzDeg)
	}
}

func TestHorizon_Meridian(t *testing.T) {
	tm := MustTime(8000.5)
	obs := Observer{LatDeg: 35, LonDeg: -117}

	// A star on the local meridian transits due south at 90 − lat + dec.
	lst := NormalizeDegrees(15*SiderealTime(tm)+obs.LonDeg) / 15
	hor, err := Horizon(tm, obs, lst, 10, NoRefraction)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(hor.AltDeg-65) > 1e-9 {
		t.Errorf("transit altitude = %v, want 65", hor.AltDeg)
	}
	if math.Abs(hor.AzDeg-180) > 1e-6 {
		t.Errorf("transit azimuth = %v, want 180", hor.AzDeg)
	}

	// Six hours later by hour angle the star is in the west.
	hor, err = Horizon(tm, obs, lst-6, 0, NoRefraction)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(hor.AzDeg-270) > 1e-6 || math.Abs(hor.AltDeg) > 1e-9 {
		t.Errorf("equator star at HA=6h: az=%v alt=%v, want 270, 0", hor.AzDeg, hor.AltDeg)
	}
}

func TestHorizon_Refraction(t *testing.T) {
	tm := MustTime(8000.5)
	obs := Observer{LatDeg: 35, LonDeg: -117}
	lst := NormalizeDegrees(15*SiderealTime(tm)+obs.LonDeg) / 15

	// Declination −54.5 transits 0.5° above the southern horizon.
	raw, err := Horizon(tm, obs, lst, -54.5, NoRefraction)
	if err != nil {
		t.Fatal(err)
	}
	bent, err := Horizon(tm, obs, lst, -54.5, NormalRefraction)
	if err != nil {
		t.Fatal(err)
	}
	lift := bent.AltDeg - raw.AltDeg
	if math.Abs(lift-RefractionAngle(NormalRefraction, raw.AltDeg)) > 1e-9 {
		t.Errorf("refraction lift = %v, want %v", lift, RefractionAngle(NormalRefraction, raw.AltDeg))
	}
	if bent.Dec <= -54.5 {
		t.Errorf("refracted declination = %v, should move toward the zenith", bent.Dec)
	}
	if _, err := Horizon(tm, obs, lst, 91, NoRefraction); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("dec 91 error = %v", err)
	}
}

func TestHorizonFromVector(t *testing.T) {
	tests := []struct {
		name    string
		v       Vec3
		az, alt float64
	}{
		{"north", Vec3{X: 1}, 0, 0},
		{"west", Vec3{Y: 1}, 270, 0},
		{"east", Vec3{Y: -1}, 90, 0},
		{"south up", Vec3{X: -1, Z: 1}, 180, 45},
	}
	for _, tt := range tests {
		got := HorizonFromVector(tt.v)
		if math.Abs(got.AzDeg-tt.az) > 1e-9 || math.Abs(got.AltDeg-tt.alt) > 1e-9 {
			t.Errorf("%s: HorizonFromVector() = %+v, want az=%v alt=%v", tt.name, got, tt.az, tt.alt)
		}
	}
}

func TestRefractionAngle(t *testing.T) {
	if r := RefractionAngle(NormalRefraction, 0); r < 0.45 || r > 0.5 {
		t.Errorf("horizon refraction = %v°, want ~0.48°", r)
	}
	if r := RefractionAngle(NormalRefraction, 90); math.Abs(r) > 1e-3 {
		t.Errorf("zenith refraction = %v°, want ~0", r)
	}
	if r := RefractionAngle(NoRefraction, 0); r != 0 {
		t.Errorf("airless refraction = %v", r)
	}
	for _, alt := range []float64{-91, 91} {
		if r := RefractionAngle(NormalRefraction, alt); r != 0 {
			t.Errorf("RefractionAngle(%v) = %v, want 0", alt, r)
		}
	}
	// The jplhor model holds the −1° value below the horizon.
	if RefractionAngle(JPLHorizonsRefraction, -30) != RefractionAngle(JPLHorizonsRefraction, -1) {
		t.Error("jplhor refraction should be constant below -1°")
	}
	if RefractionAngle(NormalRefraction, -30) >= RefractionAngle(NormalRefraction, -1) {
		t.Error("normal refraction should taper below -1°")
	}
}

func TestRefractionRoundTrip(t *testing.T) {
	for alt := -90.1; alt <= 90.1; alt += 0.001 {
		refr := RefractionAngle(NormalRefraction, alt)
		bent := alt + refr
		corr, err := InverseRefractionAngle(NormalRefraction, bent)
		if err != nil {
			t.Fatalf("InverseRefractionAngle(%v) error = %v", bent, err)
		}
		if diff := math.Abs((bent + corr) - alt); diff > 2e-14 {
			t.Fatalf("alt=%v refr=%v corr=%v diff=%g", alt, refr, corr, diff)
		}
	}
}

func TestInverseRefractionAngle_JPLHorizons(t *testing.T) {
	for alt := -1.0; alt <= 90.0; alt += 0.1 {
		bent := alt + RefractionAngle(JPLHorizonsRefraction, alt)
		corr, err := InverseRefractionAngle(JPLHorizonsRefraction, bent)
		if err != nil {
			t.Fatalf("InverseRefractionAngle(%v) error = %v", bent, err)
		}
		if diff := math.Abs((bent + corr) - alt); diff > 1e-12 {
			t.Errorf("alt=%.1f diff=%g", alt, diff)
		}
	}
}

func TestParseRefraction(t *testing.T) {
	tests := map[string]Refraction{
		"none":   NoRefraction,
		"Normal": NormalRefraction,
		"jplhor": JPLHorizonsRefraction,
	}
	for in, want := range tests {
		got, err := ParseRefraction(in)
		if err != nil || got != want {
			t.Errorf("ParseRefraction(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseRefraction("vacuum"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseRefraction(vacuum) error = %v", err)
	}
}

func TestLongitudeOffset(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{-180, 180},
		{181, -179},
		{-1, -1},
		{359, -1},
		{720.5, 0.5},
	}
	for _, tt := range tests {
		if got := LongitudeOffset(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("LongitudeOffset(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAngularSeparation(t *testing.T) {
	tests := []struct {
		name      string
		ra1, dec1 float64
		ra2, dec2 float64
		wantSep   float64
	}{
		{"Same point", 100, 30, 100, 30, 0},
		{"90 degrees apart on equator", 0, 0, 90, 0, 90},
		{"180 degrees apart on equator", 0, 0, 180, 0, 180},
		{"Pole to equator", 0, 90, 0, 0, 90},
		{"Pole to pole", 0, 90, 0, -90, 180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngularSeparation(tt.ra1, tt.dec1, tt.ra2, tt.dec2)
			if math.Abs(got-tt.wantSep) > 0.001 {
				t.Errorf("AngularSeparation() = %v, want %v", got, tt.wantSep)
			}
		})
	}
}

func TestGetElevationTier(t *testing.T) {
	tests := []struct {
		alt  float64
		want ElevationTier
	}{
		{-5, ElevationNone},
		{0, ElevationNone},
		{10, ElevationLow},
		{30, ElevationMedium},
		{60, ElevationHigh},
	}
	for _, tt := range tests {
		if got := GetElevationTier(tt.alt); got != tt.want {
			t.Errorf("GetElevationTier(%v) = %v, want %v", tt.alt, got, tt.want)
		}
	}
}
