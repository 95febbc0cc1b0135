package ephem

import (
	"errors"
	"testing"

	"github.com/litescript/ls-almanac/internal/astro"
)

func TestParseBody(t *testing.T) {
	tests := []struct {
		in   string
		want Body
	}{
		{"Sun", Sun},
		{"moon", Moon},
		{"MERC", Mercury},
		{" venus ", Venus},
		{"jup", Jupiter},
		{"PLUTO", Pluto},
	}
	for _, tt := range tests {
		got, err := ParseBody(tt.in)
		if err != nil {
			t.Errorf("ParseBody(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBody(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	_, err := ParseBody("Vulcan")
	if !errors.Is(err, ErrUnknownBody) || !errors.Is(err, astro.ErrInvalidArgument) {
		t.Errorf("ParseBody(Vulcan) error = %v, want ErrUnknownBody", err)
	}
}

func TestBodyInfo(t *testing.T) {
	for _, b := range Bodies() {
		info, err := b.Info()
		if err != nil {
			t.Fatalf("%v.Info() error = %v", b, err)
		}
		if info.Name != b.String() {
			t.Errorf("Info().Name = %q, String() = %q", info.Name, b.String())
		}
		if info.RadiusKm <= 0 {
			t.Errorf("%v radius = %v", b, info.RadiusKm)
		}
		if b.IsPlanet() != (info.OrbitalPeriod > 0) {
			t.Errorf("%v IsPlanet() disagrees with orbital period", b)
		}
	}

	if _, err := Body(99).Info(); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("Body(99).Info() error = %v", err)
	}
	if s := Body(-1).String(); s != "Body(-1)" {
		t.Errorf("Body(-1).String() = %q", s)
	}
}

func TestPlanets_ExcludeEarth(t *testing.T) {
	for _, p := range Planets() {
		if p == Earth || !p.IsPlanet() {
			t.Errorf("Planets() contains %v", p)
		}
	}
}
