// Package config loads hexgen settings from YAML and the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talgya/hex-terrain/internal/world"
)

// MaxRadius bounds the hex radius (about 50M tiles).
const MaxRadius = 4096

// Config is the on-disk and environment configuration for a generation run.
type Config struct {
	// Seed is optional; nil means pick one at random.
	Seed     *uint32 `yaml:"seed"`
	Radius   uint32  `yaml:"radius"`
	Noise    Noise   `yaml:"noise"`
	Ledger   string  `yaml:"ledger"` // SQLite path; empty disables the run ledger
	LogLevel string  `yaml:"log_level"`
}

// Noise mirrors world.NoiseConfig with YAML names.
type Noise struct {
	Basis       string  `yaml:"basis"`
	Octaves     int     `yaml:"octaves"`
	Lacunarity  float64 `yaml:"lacunarity"`
	Persistence float64 `yaml:"persistence"`
}

// Default returns the standard configuration: radius 64, perlin fBm, no ledger.
func Default() Config {
	d := world.DefaultGenConfig()
	return Config{
		Radius: d.Radius,
		Noise: Noise{
			Basis:       string(d.Noise.Basis),
			Octaves:     d.Noise.Octaves,
			Lacunarity:  d.Noise.Lacunarity,
			Persistence: d.Noise.Persistence,
		},
		LogLevel: "info",
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from HEXGEN_* environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("HEXGEN_SEED"); v != "" {
		seed, err := ParseUint32(v)
		if err != nil {
			return fmt.Errorf("HEXGEN_SEED: %w", err)
		}
		c.Seed = &seed
	}
	if v := getenv("HEXGEN_RADIUS"); v != "" {
		radius, err := ParseUint32(v)
		if err != nil {
			return fmt.Errorf("HEXGEN_RADIUS: %w", err)
		}
		c.Radius = radius
	}
	if v := getenv("HEXGEN_BASIS"); v != "" {
		c.Noise.Basis = v
	}
	if v := getenv("HEXGEN_LEDGER"); v != "" {
		c.Ledger = v
	}
	if v := getenv("HEXGEN_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

// ParseUint32 parses a decimal seed or radius, rejecting values over 32 bits.
// Flags and environment both go through it.
func ParseUint32(v string) (uint32, error) {
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

// Validate checks the radius, noise parameters and log level.
func (c Config) Validate() error {
	if c.Radius > MaxRadius {
		return fmt.Errorf("radius %d exceeds maximum %d", c.Radius, MaxRadius)
	}
	if err := c.NoiseConfig().Validate(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// NoiseConfig converts to the generator's noise parameters.
func (c Config) NoiseConfig() world.NoiseConfig {
	return world.NoiseConfig{
		Basis:       world.Basis(strings.ToLower(c.Noise.Basis)),
		Octaves:     c.Noise.Octaves,
		Lacunarity:  c.Noise.Lacunarity,
		Persistence: c.Noise.Persistence,
	}
}

// GenConfig resolves the generator configuration using seed when Seed is unset.
func (c Config) GenConfig(fallbackSeed uint32) world.GenConfig {
	seed := fallbackSeed
	if c.Seed != nil {
		seed = *c.Seed
	}
	return world.GenConfig{
		Seed:   seed,
		Radius: c.Radius,
		Noise:  c.NoiseConfig(),
	}
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
}
