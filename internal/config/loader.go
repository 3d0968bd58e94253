package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"

	"github.com/dshills/teletextmap/internal/glyph"
	"github.com/dshills/teletextmap/internal/logging"
	"github.com/dshills/teletextmap/internal/session"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TELETEXT_"

// Load reads defaults, then path (if non-empty and present), then the
// environment, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := decode(path, data, cfg); err != nil {
				return nil, err
			}
		case os.IsNotExist(err):
			// Defaults apply.
		default:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode unmarshals data into cfg according to the file extension.
func decode(path string, data []byte, cfg *Config) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}

// envSetter applies one environment value.
type envSetter func(cfg *Config, value string) error

// envMapping maps variable names (without prefix) to setters.
var envMapping = map[string]envSetter{
	"LOG_LEVEL":         func(c *Config, v string) error { c.Logging.Level = v; return nil },
	"RAMP":              func(c *Config, v string) error { c.Raster.Ramp = v; return nil },
	"WIDTH":             intSetter(func(c *Config) *int { return &c.Raster.Width }),
	"HEIGHT":            intSetter(func(c *Config) *int { return &c.Raster.Height }),
	"VECTOR_SIZE":       intSetter(func(c *Config) *int { return &c.Vector.Size }),
	"TILE_STYLE":        func(c *Config, v string) error { c.Tile.Style = v; return nil },
	"OVERPASS_ENDPOINT": func(c *Config, v string) error { c.Overpass.Endpoint = v; return nil },
	"HTTP_TIMEOUT":      func(c *Config, v string) error { c.HTTP.Timeout = v; return nil },
}

func intSetter(field func(*Config) *int) envSetter {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

// applyEnv applies TELETEXT_* overrides and resolves the tile token.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for name, set := range envMapping {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		if err := set(cfg, v); err != nil {
			return &ValidationError{Path: "env." + EnvPrefix + name, Message: err.Error(), Value: v}
		}
	}

	if cfg.Tile.TokenEnv != "" {
		if v, ok := lookup(cfg.Tile.TokenEnv); ok {
			cfg.Tile.Token = v
		}
	}
	return nil
}

// Validate checks every setting and returns the first failure.
func (c *Config) Validate() error {
	switch {
	case c.Raster.Width < 1:
		return &ValidationError{Path: "raster.width", Message: "must be at least 1", Value: c.Raster.Width}
	case c.Raster.Height < 1:
		return &ValidationError{Path: "raster.height", Message: "must be at least 1", Value: c.Raster.Height}
	case c.Vector.Size < 1:
		return &ValidationError{Path: "vector.size", Message: "must be at least 1", Value: c.Vector.Size}
	case c.Classify.Margin < 0:
		return &ValidationError{Path: "classify.margin", Message: "must not be negative", Value: c.Classify.Margin}
	case c.Tile.Size < 1 || c.Tile.Size > 1280:
		return &ValidationError{Path: "tile.size", Message: "must be between 1 and 1280", Value: c.Tile.Size}
	case c.View.Zoom < session.MinZoom || c.View.Zoom > session.MaxZoom:
		return &ValidationError{Path: "view.zoom", Message: "must be between 1 and 20", Value: c.View.Zoom}
	case c.View.Lat < -90 || c.View.Lat > 90:
		return &ValidationError{Path: "view.lat", Message: "must be between -90 and 90", Value: c.View.Lat}
	case !logging.ValidLevel(c.Logging.Level):
		return &ValidationError{Path: "logging.level", Message: "must be debug, info, warn or error", Value: c.Logging.Level}
	}

	if _, err := glyph.ParseRamp(c.Raster.Ramp); err != nil {
		return &ValidationError{Path: "raster.ramp", Message: err.Error(), Value: c.Raster.Ramp}
	}

	colors := map[string]string{
		"palette.water":      c.Palette.Water,
		"palette.vegetation": c.Palette.Vegetation,
		"palette.light":      c.Palette.Light,
		"palette.dark":       c.Palette.Dark,
		"palette.default":    c.Palette.Default,
	}
	for path, hex := range colors {
		if _, err := colorful.Hex(hex); err != nil {
			return &ValidationError{Path: path, Message: "must be a #RRGGBB color", Value: hex}
		}
	}
	return nil
}
