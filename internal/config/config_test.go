package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/logging"
	"github.com/litescript/ls-almanac/internal/report"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Observer.Name", cfg.Observer.Name, "Greenwich"},
		{"Observer.Latitude", cfg.Observer.Latitude, 51.4769},
		{"Refraction", cfg.Refraction, "normal"},
		{"Search.Tolerance", cfg.Search.Tolerance, 1.0},
		{"Search.MaxIterations", cfg.Search.MaxIterations, 100},
		{"Output.Format", cfg.Output.Format, "text"},
		{"Output.Count", cfg.Output.Count, 5},
		{"LogLevel", cfg.LogLevel, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if cfg.RefractionMode() != astro.NormalRefraction {
		t.Errorf("RefractionMode() = %v", cfg.RefractionMode())
	}
	if cfg.OutputFormat() != report.FormatText {
		t.Errorf("OutputFormat() = %v", cfg.OutputFormat())
	}
	if cfg.Level() != logging.LevelInfo {
		t.Errorf("Level() = %v", cfg.Level())
	}
	if opts := cfg.SearchOptions(); opts.Iterations() != 100 || opts.ToleranceDays() != 1.0/86400 {
		t.Errorf("SearchOptions() = %+v", opts)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "observer latitude",
			envKey: "LS_ALMANAC_OBSERVER_LATITUDE",
			envVal: "-33.9",
			field:  func(c Config) any { return c.Observer.Latitude },
			want:   -33.9,
		},
		{
			name:   "refraction",
			envKey: "LS_ALMANAC_REFRACTION",
			envVal: "jplhor",
			field:  func(c Config) any { return c.RefractionMode() },
			want:   astro.JPLHorizonsRefraction,
		},
		{
			name:   "output format",
			envKey: "LS_ALMANAC_OUTPUT_FORMAT",
			envVal: "yaml",
			field:  func(c Config) any { return c.OutputFormat() },
			want:   report.FormatYAML,
		},
		{
			name:   "max iterations",
			envKey: "LS_ALMANAC_SEARCH_MAX_ITERATIONS",
			envVal: "40",
			field:  func(c Config) any { return c.Search.MaxIterations },
			want:   40,
		},
		{
			name:   "log level",
			envKey: "LS_ALMANAC_LOG_LEVEL",
			envVal: "debug",
			field:  func(c Config) any { return c.Level() },
			want:   logging.LevelDebug,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			t.Setenv(tt.envKey, tt.envVal)
			t.Chdir(t.TempDir())
			if err := Init(""); err != nil {
				t.Fatalf("Init() error = %v", err)
			}

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			if got := tt.field(cfg); got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestInit_ConfigFile(t *testing.T) {
	resetViper()
	path := filepath.Join(t.TempDir(), "almanac.yaml")
	content := `observer:
  name: Cape Town
  latitude: -33.93
  longitude: 18.42
output:
  count: 12
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Init(path); err != nil {
		t.Fatalf("Init(%s) error = %v", path, err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	obs := cfg.ObserverSite()
	if obs.Name != "Cape Town" || obs.LatDeg != -33.93 || obs.LonDeg != 18.42 {
		t.Errorf("ObserverSite() = %+v", obs)
	}
	if cfg.Output.Count != 12 || cfg.OutputFormat() != report.FormatJSON {
		t.Errorf("Output = %+v", cfg.Output)
	}
	// Unset keys keep their defaults.
	if cfg.Refraction != "normal" {
		t.Errorf("Refraction = %q, want default", cfg.Refraction)
	}
}

func TestInit_MissingExplicitFile(t *testing.T) {
	resetViper()
	if err := Init(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Init() with a missing explicit file should fail")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value any
	}{
		{"observer.latitude", 95.0},
		{"refraction", "vacuum"},
		{"search.tolerance", 0.0},
		{"search.max_iterations", 0},
		{"output.format", "xml"},
		{"output.count", 0},
		{"output.count", 5000},
		{"log_level", "chatty"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			resetViper()
			viper.Set(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%v should fail", tt.key, tt.value)
			}
		})
	}
}
