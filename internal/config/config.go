// Package config loads holeplan settings: compiled defaults, optionally
// overlaid by a TOML file. Command-line flags are applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/chazu/holeplan/pkg/kernel/sdfx"
	"github.com/chazu/holeplan/pkg/opening"
)

// Config is the full set of tunables.
type Config struct {
	Clearance float64 `toml:"clearance"`
	Workers   int     `toml:"workers"`
	LogLevel  string  `toml:"log_level"`
	Raycast   Raycast `toml:"raycast"`
	Preview   Preview `toml:"preview"`
}

// Raycast tunes the distance field marcher.
type Raycast struct {
	MinStep   float64 `toml:"min_step"`
	MaxSteps  int     `toml:"max_steps"`
	Tolerance float64 `toml:"tolerance"`
}

// Preview tunes mesh generation.
type Preview struct {
	MeshCells int `toml:"mesh_cells"`
}

// Default returns the compiled defaults. Workers 0 means one per CPU.
func Default() Config {
	return Config{
		Clearance: opening.DefaultClearance,
		LogLevel:  "info",
		Raycast: Raycast{
			MinStep:   sdfx.DefaultMinStep,
			MaxSteps:  sdfx.DefaultMaxSteps,
			Tolerance: sdfx.DefaultTolerance,
		},
		Preview: Preview{MeshCells: sdfx.DefaultMeshCells},
	}
}

// Load returns the defaults overlaid with the TOML file at path. An empty
// path returns the defaults. Keys the file does not set keep their default;
// unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config: %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every out-of-range value at once.
func (c Config) Validate() error {
	var errs []error
	if c.Clearance <= 0 {
		errs = append(errs, fmt.Errorf("clearance must be positive, got %g", c.Clearance))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.Raycast.MinStep <= 0 {
		errs = append(errs, fmt.Errorf("raycast.min_step must be positive, got %g", c.Raycast.MinStep))
	}
	if c.Raycast.MaxSteps <= 0 {
		errs = append(errs, fmt.Errorf("raycast.max_steps must be positive, got %d", c.Raycast.MaxSteps))
	}
	if c.Raycast.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("raycast.tolerance must be positive, got %g", c.Raycast.Tolerance))
	}
	if c.Preview.MeshCells <= 0 {
		errs = append(errs, fmt.Errorf("preview.mesh_cells must be positive, got %d", c.Preview.MeshCells))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() log.Level {
	l, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return l
}

// KernelOptions returns the sdfx options matching c.
func (c Config) KernelOptions() []sdfx.Option {
	return []sdfx.Option{
		sdfx.WithMarch(c.Raycast.MinStep, c.Raycast.MaxSteps, c.Raycast.Tolerance),
		sdfx.WithMeshCells(c.Preview.MeshCells),
	}
}
