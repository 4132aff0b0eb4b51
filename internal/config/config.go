// Package config loads settings for the tank simulation binary: defaults,
// then an optional YAML file, then environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config groups the runtime, store and simulation settings.
type Config struct {
	// Frequency is the number of Advance steps per 1000 ticks. Must be in (0, 1000].
	Frequency int `yaml:"frequency" env:"TICKX_FREQUENCY"`
	// Duration is the run length in ticks.
	Duration int `yaml:"duration" env:"TICKX_DURATION"`
	// MaxDepth bounds nested dispatch. Zero means unlimited.
	MaxDepth int `yaml:"max_depth" env:"TICKX_MAX_DEPTH"`

	LogLevel string `yaml:"log_level" env:"TICKX_LOG_LEVEL"`

	// SnapshotDir receives the final state snapshot. Empty disables it.
	SnapshotDir string `yaml:"snapshot_dir" env:"TICKX_SNAPSHOT_DIR"`
	// SnapshotFormat is "yaml" or "json".
	SnapshotFormat string `yaml:"snapshot_format" env:"TICKX_SNAPSHOT_FORMAT"`

	Tank Tank `yaml:"tank" envPrefix:"TICKX_TANK_"`
}

// Tank configures the simulated tanks.
type Tank struct {
	Count         int `yaml:"count" env:"COUNT"`
	Capacity      int `yaml:"capacity" env:"CAPACITY"`
	OverflowLevel int `yaml:"overflow_level" env:"OVERFLOW_LEVEL"`
	PollPeriod    int `yaml:"poll_period" env:"POLL_PERIOD"`
	InflowRate    int `yaml:"inflow_rate" env:"INFLOW_RATE"`
	DrainRate     int `yaml:"drain_rate" env:"DRAIN_RATE"`
}

// Default returns the settings used when nothing else is given.
func Default() Config {
	return Config{
		Frequency:      10,
		Duration:       10000,
		LogLevel:       "info",
		SnapshotFormat: "yaml",
		Tank: Tank{
			Count:         2,
			Capacity:      100,
			OverflowLevel: 80,
			PollPeriod:    100,
			InflowRate:    7,
			DrainRate:     15,
		},
	}
}

// Load reads path (if non-empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("yaml unmarshal %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Frequency <= 0 || c.Frequency > 1000 {
		errs = append(errs, fmt.Errorf("frequency %d out of range (0, 1000]", c.Frequency))
	}
	if c.Duration <= 0 {
		errs = append(errs, fmt.Errorf("duration %d must be positive", c.Duration))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth %d must not be negative", c.MaxDepth))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.SnapshotFormat) {
	case "yaml", "json":
	default:
		errs = append(errs, fmt.Errorf("snapshot_format %q must be yaml or json", c.SnapshotFormat))
	}
	t := c.Tank
	if t.Count <= 0 {
		errs = append(errs, fmt.Errorf("tank.count %d must be positive", t.Count))
	}
	if t.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("tank.capacity %d must be positive", t.Capacity))
	}
	if t.OverflowLevel <= 0 || t.OverflowLevel > t.Capacity {
		errs = append(errs, fmt.Errorf("tank.overflow_level %d out of range (0, %d]", t.OverflowLevel, t.Capacity))
	}
	if t.PollPeriod <= 0 {
		errs = append(errs, fmt.Errorf("tank.poll_period %d must be positive", t.PollPeriod))
	}
	if t.InflowRate < 0 || t.DrainRate < 0 {
		errs = append(errs, errors.New("tank rates must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// ValveCommand is one scripted valve override for the tank simulation.
type ValveCommand struct {
	At   int  `yaml:"at"`
	Tank int  `yaml:"tank"`
	Open bool `yaml:"open"`
}

// LoadScript reads a YAML list of valve commands. Commands must target an
// existing tank at a non-negative tick offset.
func LoadScript(path string, tanks int) ([]ValveCommand, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var cmds []ValveCommand
	if err := yaml.Unmarshal(data, &cmds); err != nil {
		return nil, fmt.Errorf("yaml unmarshal %s: %w", path, err)
	}
	var errs []error
	for i, c := range cmds {
		if c.At < 0 {
			errs = append(errs, fmt.Errorf("command %d: at %d must not be negative", i, c.At))
		}
		if c.Tank < 0 || c.Tank >= tanks {
			errs = append(errs, fmt.Errorf("command %d: tank %d out of range [0, %d)", i, c.Tank, tanks))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid script: %w", errors.Join(errs...))
	}
	return cmds, nil
}
