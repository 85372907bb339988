// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	Grid         GridConfig         `yaml:"grid"`
	Habitat      HabitatConfig      `yaml:"habitat"`
	Movement     MovementConfig     `yaml:"movement"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Survival     SurvivalConfig     `yaml:"survival"`
	Seeding      SeedingConfig      `yaml:"seeding"`
	Run          RunConfig          `yaml:"run"`
	LifeTable    LifeTableConfig    `yaml:"life_table"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
}

// ScreenConfig holds viewer display settings.
type ScreenConfig struct {
	CellSize  int `yaml:"cell_size"` // Pixels per habitat patch
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds habitat grid dimensions.
type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// HabitatConfig holds patch initialization and drift parameters.
type HabitatConfig struct {
	BaseTemp       float64   `yaml:"base_temp"`       // Mean initial temperature (deg C)
	TempJitter     float64   `yaml:"temp_jitter"`     // Initial temp drawn from base +/- jitter
	BaseMoisture   float64   `yaml:"base_moisture"`   // Mean initial moisture fraction
	MoistureJitter float64   `yaml:"moisture_jitter"` // Initial moisture drawn from base +/- jitter
	ShadeLevels    []float64 `yaml:"shade_levels"`    // Discrete shade fractions sampled at creation
	TempDriftRate  float64   `yaml:"temp_drift_rate"` // Temp gain per step, scaled by step/day_length
	MoistureDecay  float64   `yaml:"moisture_decay"`  // Moisture loss per step, scaled by step/day_length
	DayLength      float64   `yaml:"day_length"`      // Pseudo-time divisor for drift scaling
}

// MovementConfig holds thermal-avoidance movement parameters.
type MovementConfig struct {
	HeatThreshold float64 `yaml:"heat_threshold"` // Patch temp above which individuals seek cooler neighbors
}

// ReproductionConfig holds reproduction parameters.
type ReproductionConfig struct {
	DrynessPenalty float64 `yaml:"dryness_penalty"` // Max fecundity reduction on fully dry patches
}

// SurvivalConfig holds mortality parameters.
type SurvivalConfig struct {
	HeatStressTemp   float64 `yaml:"heat_stress_temp"`   // Patch temp above which survival is penalized
	HeatStressFactor float64 `yaml:"heat_stress_factor"` // Multiplier applied to survival prob under heat stress
	MaxAge           int     `yaml:"max_age"`            // Hard age cutoff, independent of the life table
}

// SeedingConfig holds initial population parameters.
type SeedingConfig struct {
	MinPerAgeClass int `yaml:"min_per_age_class"`
	MaxPerAgeClass int `yaml:"max_per_age_class"`
}

// RunConfig holds run-length parameters.
type RunConfig struct {
	Steps int `yaml:"steps"`
}

// LifeTableConfig holds the age-indexed demographic tables.
// Survivorship (lx) is the fraction alive by each age; fecundity (bx) is
// expected offspring per individual at each age. Fecundity may be shorter
// than survivorship; missing ages are treated as zero.
type LifeTableConfig struct {
	Survivorship []float64 `yaml:"survivorship"`
	Fecundity    []float64 `yaml:"fecundity"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Steps per stats window
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the simulation cannot run with.
// All failures here surface before any simulation state is constructed.
func (c *Config) Validate() error {
	if c.Grid.Rows <= 0 || c.Grid.Cols <= 0 {
		return fmt.Errorf("config: grid dimensions must be positive, got %dx%d", c.Grid.Rows, c.Grid.Cols)
	}
	if c.Run.Steps < 0 {
		return fmt.Errorf("config: run steps must be non-negative, got %d", c.Run.Steps)
	}
	if len(c.Habitat.ShadeLevels) == 0 {
		return fmt.Errorf("config: habitat shade_levels must not be empty")
	}
	for i, s := range c.Habitat.ShadeLevels {
		if s < 0 || s > 1 {
			return fmt.Errorf("config: shade_levels[%d] = %v outside [0,1]", i, s)
		}
	}
	if c.Habitat.DayLength <= 0 {
		return fmt.Errorf("config: habitat day_length must be positive, got %v", c.Habitat.DayLength)
	}
	if c.Seeding.MinPerAgeClass < 0 || c.Seeding.MaxPerAgeClass < c.Seeding.MinPerAgeClass {
		return fmt.Errorf("config: seeding range [%d,%d] invalid",
			c.Seeding.MinPerAgeClass, c.Seeding.MaxPerAgeClass)
	}
	if c.Survival.MaxAge < 0 {
		return fmt.Errorf("config: survival max_age must be non-negative, got %d", c.Survival.MaxAge)
	}
	if err := validateLifeTable(c.LifeTable); err != nil {
		return err
	}
	return nil
}

// validateLifeTable enforces the demographic-table contract. Survivorship
// must be non-empty, strictly positive, at most 1, and non-increasing so
// that every conditional survival probability lx[a]/lx[a-1] lands in (0,1]
// without runtime clamping.
func validateLifeTable(lt LifeTableConfig) error {
	if len(lt.Survivorship) == 0 {
		return fmt.Errorf("config: life_table survivorship must not be empty")
	}
	for i, v := range lt.Survivorship {
		if v <= 0 || v > 1 {
			return fmt.Errorf("config: survivorship[%d] = %v outside (0,1]", i, v)
		}
		if i > 0 && v > lt.Survivorship[i-1] {
			return fmt.Errorf("config: survivorship must be non-increasing, rises at age %d (%v > %v)",
				i, v, lt.Survivorship[i-1])
		}
	}
	for i, v := range lt.Fecundity {
		if v < 0 {
			return fmt.Errorf("config: fecundity[%d] = %v must be non-negative", i, v)
		}
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
