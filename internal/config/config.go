// Package config loads runtime settings from .ls-almanac.yaml, LS_ALMANAC_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/logging"
	"github.com/litescript/ls-almanac/internal/report"
	"github.com/litescript/ls-almanac/internal/search"
)

// EnvPrefix is prepended to environment overrides, e.g.
// LS_ALMANAC_OBSERVER_LATITUDE.
const EnvPrefix = "LS_ALMANAC"

const maxCount = 1000

// ObserverConfig is the default observing site.
type ObserverConfig struct {
	Name      string  `mapstructure:"name"`
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
	Height    float64 `mapstructure:"height"`
}

// SearchConfig tunes the root finder.
type SearchConfig struct {
	Tolerance     float64 `mapstructure:"tolerance"` // seconds
	MaxIterations int     `mapstructure:"max_iterations"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Count  int    `mapstructure:"count"`
}

// Config holds all runtime configuration.
type Config struct {
	Observer   ObserverConfig `mapstructure:"observer"`
	Refraction string         `mapstructure:"refraction"`
	Search     SearchConfig   `mapstructure:"search"`
	Output     OutputConfig   `mapstructure:"output"`
	LogLevel   string         `mapstructure:"log_level"`
}

// Init points viper at cfgFile, or at .ls-almanac.yaml in the working or
// home directory, and enables environment overrides. A missing default
// file is not an error; a missing or malformed explicit file is.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".ls-almanac")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("observer.name", "Greenwich")
	viper.SetDefault("observer.latitude", 51.4769)
	viper.SetDefault("observer.longitude", -0.0005)
	viper.SetDefault("observer.height", 46.0)
	viper.SetDefault("refraction", "normal")
	viper.SetDefault("search.tolerance", search.DefaultTolerance)
	viper.SetDefault("search.max_iterations", search.DefaultMaxIterations)
	viper.SetDefault("output.format", "text")
	viper.SetDefault("output.count", 5)
	viper.SetDefault("log_level", "info")
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags, and validates it.
func Load() (Config, error) {
	setDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field that has a restricted range.
func (c Config) Validate() error {
	if err := c.ObserverSite().Validate(); err != nil {
		return fmt.Errorf("config observer: %w", err)
	}
	if _, err := astro.ParseRefraction(c.Refraction); err != nil {
		return fmt.Errorf("config refraction: %w", err)
	}
	if !(c.Search.Tolerance > 0) {
		return fmt.Errorf("config search.tolerance must be positive, got %v", c.Search.Tolerance)
	}
	if c.Search.MaxIterations < 1 {
		return fmt.Errorf("config search.max_iterations must be at least 1, got %d", c.Search.MaxIterations)
	}
	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("config output.format: %w", err)
	}
	if c.Output.Count < 1 || c.Output.Count > maxCount {
		return fmt.Errorf("config output.count must be in 1..%d, got %d", maxCount, c.Output.Count)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config log_level: %w", err)
	}
	return nil
}

// ObserverSite returns the configured observer.
func (c Config) ObserverSite() astro.Observer {
	return astro.Observer{
		LatDeg:  c.Observer.Latitude,
		LonDeg:  c.Observer.Longitude,
		HeightM: c.Observer.Height,
		Name:    c.Observer.Name,
	}
}

// RefractionMode returns the configured refraction model. Load has
// already validated it.
func (c Config) RefractionMode() astro.Refraction {
	mode, _ := astro.ParseRefraction(c.Refraction)
	return mode
}

// SearchOptions returns the configured search tuning.
func (c Config) SearchOptions() search.Options {
	return search.Options{Tolerance: c.Search.Tolerance, MaxIterations: c.Search.MaxIterations}
}

// OutputFormat returns the configured output format.
func (c Config) OutputFormat() report.Format {
	f, _ := report.ParseFormat(c.Output.Format)
	return f
}

// Level returns the configured log level.
func (c Config) Level() logging.Level {
	l, _ := logging.ParseLevel(c.LogLevel)
	return l
}
