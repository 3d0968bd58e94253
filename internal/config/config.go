package config

import (
	"time"

	"github.com/dshills/teletextmap/internal/glyph"
	"github.com/dshills/teletextmap/internal/logging"
	"github.com/dshills/teletextmap/internal/render"
	"github.com/dshills/teletextmap/internal/session"
	"github.com/dshills/teletextmap/internal/terrain"
)

// Config is the complete application configuration.
type Config struct {
	Raster   RasterConfig   `toml:"raster" yaml:"raster"`
	Classify ClassifyConfig `toml:"classify" yaml:"classify"`
	Vector   VectorConfig   `toml:"vector" yaml:"vector"`
	Tile     TileConfig     `toml:"tile" yaml:"tile"`
	Overpass OverpassConfig `toml:"overpass" yaml:"overpass"`
	View     ViewConfig     `toml:"view" yaml:"view"`
	Palette  PaletteConfig  `toml:"palette" yaml:"palette"`
	Logging  LoggingConfig  `toml:"logging" yaml:"logging"`
	HTTP     HTTPConfig     `toml:"http" yaml:"http"`
}

// RasterConfig sizes the raster grid and picks its glyph ramp.
type RasterConfig struct {
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	Ramp   string `toml:"ramp" yaml:"ramp"`
}

// ClassifyConfig holds the terrain classifier thresholds.
type ClassifyConfig struct {
	Margin int `toml:"margin" yaml:"margin"`
	Light  int `toml:"light" yaml:"light"`
}

// VectorConfig sizes the occupancy grid and its text glyphs.
type VectorConfig struct {
	Size    int    `toml:"size" yaml:"size"`
	On      string `toml:"on" yaml:"on"`
	Off     string `toml:"off" yaml:"off"`
	NorthUp bool   `toml:"north_up" yaml:"north_up"`
}

// TileConfig describes the static tile service.
type TileConfig struct {
	Endpoint string `toml:"endpoint" yaml:"endpoint"`
	Style    string `toml:"style" yaml:"style"`
	Size     int    `toml:"size" yaml:"size"`
	// TokenEnv names the environment variable holding the access token.
	TokenEnv string `toml:"token_env" yaml:"token_env"`
	// Token is resolved from TokenEnv at load time; never read from files.
	Token string `toml:"-" yaml:"-"`
}

// OverpassConfig describes the vector feature service.
type OverpassConfig struct {
	Endpoint string `toml:"endpoint" yaml:"endpoint"`
	Filter   string `toml:"filter" yaml:"filter"`
}

// ViewConfig is the viewer's starting position and pan step.
type ViewConfig struct {
	Lat  float64 `toml:"lat" yaml:"lat"`
	Lng  float64 `toml:"lng" yaml:"lng"`
	Zoom int     `toml:"zoom" yaml:"zoom"`
	Step float64 `toml:"step" yaml:"step"`
}

// PaletteConfig holds display colors per terrain class as hex strings.
type PaletteConfig struct {
	Water      string `toml:"water" yaml:"water"`
	Vegetation string `toml:"vegetation" yaml:"vegetation"`
	Light      string `toml:"light" yaml:"light"`
	Dark       string `toml:"dark" yaml:"dark"`
	Default    string `toml:"default" yaml:"default"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// HTTPConfig controls outbound requests.
type HTTPConfig struct {
	Timeout string `toml:"timeout" yaml:"timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	pos := session.DefaultPosition()
	return &Config{
		Raster:   RasterConfig{Width: 40, Height: 25, Ramp: glyph.DefaultRamp},
		Classify: ClassifyConfig{Margin: 20, Light: 200},
		Vector:   VectorConfig{Size: 20, On: "#", Off: "."},
		Tile: TileConfig{
			Endpoint: "https://api.mapbox.com/styles/v1",
			Style:    "mapbox/streets-v11",
			Size:     400,
			TokenEnv: "MAPBOX_ACCESS_TOKEN",
		},
		Overpass: OverpassConfig{Endpoint: "https://overpass-api.de/api/interpreter", Filter: "highway"},
		View:     ViewConfig{Lat: pos.Lat, Lng: pos.Lng, Zoom: pos.Zoom, Step: 0.01},
		Palette: PaletteConfig{
			Water:      "#3b82f6",
			Vegetation: "#22c55e",
			Light:      "#f5f5f5",
			Dark:       "#9ca3af",
			Default:    "#facc15",
		},
		Logging: LoggingConfig{Level: "info"},
		HTTP:    HTTPConfig{Timeout: "20s"},
	}
}

// Thresholds returns the classifier thresholds.
func (c *Config) Thresholds() terrain.Thresholds {
	return terrain.Thresholds{Margin: c.Classify.Margin, Light: c.Classify.Light}
}

// Position returns the configured starting view.
func (c *Config) Position() session.Position {
	return session.Position{Lat: c.View.Lat, Lng: c.View.Lng, Zoom: c.View.Zoom}
}

// Timeout returns the parsed HTTP timeout, or 20s if unparsable.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.HTTP.Timeout)
	if err != nil || d <= 0 {
		return 20 * time.Second
	}
	return d
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Logging.Level)
}

// RenderOptions builds renderer options from the configuration.
func (c *Config) RenderOptions(logger *logging.Logger) (render.Options, error) {
	ramp, err := glyph.ParseRamp(c.Raster.Ramp)
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{
		Width:      c.Raster.Width,
		Height:     c.Raster.Height,
		Ramp:       ramp,
		Thresholds: c.Thresholds(),
		VectorSize: c.Vector.Size,
		Logger:     logger,
	}, nil
}
