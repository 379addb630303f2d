// Package config loads and validates the ecotally YAML configuration:
// logging settings, the comparison baseline, and an optional region-specific
// factor table path. Static configuration is read once at startup; nothing
// here mutates at runtime.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mfleet/ecotally/internal/engine"
)

// Default baseline values, per day in kg CO2e. The average approximates a
// 4 t/year European footprint; the target is the 2 t/year Paris-compatible
// ceiling.
const (
	DefaultAveragePerDayKg = 11.0
	DefaultTargetPerDayKg  = 5.5
)

// Validation errors.
var (
	ErrInvalidOutputFormat = errors.New("output format must be 'table' or 'json'")
	ErrUnknownTimezone     = errors.New("unknown timezone")
)

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is a zerolog level name. Defaults to "info".
	Level string `yaml:"level,omitempty"`
	// Format is "console" or "json". Defaults to "console".
	Format string `yaml:"format,omitempty"`
	// File, when set, appends logs to this path instead of stderr.
	File string `yaml:"file,omitempty"`
}

// BaselineConfig is the per-day comparison baseline. Per-period baselines
// are derived from it by scaling with the granularity's mean day count.
type BaselineConfig struct {
	// AveragePerDayKg is the national average daily footprint in kg CO2e.
	AveragePerDayKg float64 `yaml:"average_per_day_kg"`
	// TargetPerDayKg is the treaty target daily ceiling in kg CO2e.
	TargetPerDayKg float64 `yaml:"target_per_day_kg"`
}

// Baseline converts the per-day configuration into an engine baseline
// scaled to the given granularity.
func (b BaselineConfig) Baseline(g engine.Granularity) engine.Baseline {
	daily := engine.Baseline{AverageKg: b.AveragePerDayKg, TargetKg: b.TargetPerDayKg}
	return daily.Scale(g)
}

// Validate checks the baseline section.
func (b BaselineConfig) Validate() error {
	return engine.Baseline{AverageKg: b.AveragePerDayKg, TargetKg: b.TargetPerDayKg}.Validate()
}

// FactorsConfig selects the emission factor table.
type FactorsConfig struct {
	// Path points at a region-specific factor table YAML file. Empty means
	// the built-in table.
	Path string `yaml:"path,omitempty"`
}

// OutputConfig controls CLI rendering defaults.
type OutputConfig struct {
	// DefaultFormat is "table" or "json". Defaults to "table".
	DefaultFormat string `yaml:"default_format,omitempty"`
}

// Config is the root configuration document.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Baseline BaselineConfig `yaml:"baseline,omitempty"`
	Factors  FactorsConfig  `yaml:"factors,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
	// Timezone is an IANA zone name used for period boundaries. Empty means
	// the process-local zone.
	Timezone string `yaml:"timezone,omitempty"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Logging:  LoggingConfig{Level: "info", Format: "console"},
		Baseline: BaselineConfig{AveragePerDayKg: DefaultAveragePerDayKg, TargetPerDayKg: DefaultTargetPerDayKg},
		Output:   OutputConfig{DefaultFormat: "table"},
	}
}

// LoadFile reads a YAML config from path, layered over Default, and
// validates the result. A missing optional section keeps its default.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Baseline.Validate(); err != nil {
		return err
	}
	switch c.Output.DefaultFormat {
	case "", "table", "json":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidOutputFormat, c.Output.DefaultFormat)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone, defaulting to time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, c.Timezone)
	}
	return loc, nil
}

// Example returns a commented starter config for `ecotally config init`.
func Example() string {
	return `# ecotally configuration
logging:
  level: info        # trace, debug, info, warn, error
  format: console    # console or json
  # file: /var/log/ecotally.log

baseline:
  average_per_day_kg: 11.0   # national average daily footprint
  target_per_day_kg: 5.5     # treaty target daily ceiling

factors:
  # path: /etc/ecotally/factors-de.yaml   # region-specific factor table

output:
  default_format: table      # table or json

# timezone: Europe/Berlin    # period boundaries; defaults to local time
`
}
