// Package config loads and watches operator configuration for the render
// pool. Settings cover the knobs an operator can turn at runtime: pool
// size, tile size, and debug logging. Files are TOML; missing files fall
// back to defaults so a config file is always optional.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is returned by Validate for values that cannot be
// clamped into a usable range.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds the operator-tunable render settings.
type Config struct {
	// Width and Height are the frame dimensions in pixels.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// Workers is the render pool size. Zero selects available parallelism.
	Workers int `toml:"workers"`

	// TileSize is the tile edge length in pixels.
	TileSize int `toml:"tile_size"`

	// DebugTiles enables per-tile scheduler logging.
	DebugTiles bool `toml:"debug_tiles"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Width:    400,
		Height:   400,
		Workers:  0,
		TileSize: 50,
	}
}

// Load reads a TOML config file, layered over Default. A missing file is
// not an error: defaults are returned. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate clamps soft limits and rejects values with no sensible clamp.
// Workers is bounded to [0, available parallelism] and TileSize to at
// least 1; non-positive frame dimensions are an error.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: frame dimensions %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Workers < 0 {
		c.Workers = 0
	}
	if limit := runtime.NumCPU(); c.Workers > limit {
		c.Workers = limit
	}
	if c.TileSize < 1 {
		c.TileSize = 1
	}
	return nil
}
