package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/teletextmap/internal/render"
	"github.com/dshills/teletextmap/internal/terrain"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Thresholds() != terrain.DefaultThresholds() {
		t.Errorf("default thresholds differ: %+v", cfg.Thresholds())
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Raster.Width != 40 || cfg.Raster.Height != 25 {
		t.Errorf("expected defaults, got %+v", cfg.Raster)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teletext.toml")
	content := `
[raster]
width = 20
ramp = "ab"

[vector]
size = 10
north_up = true

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Raster.Width != 20 || cfg.Raster.Height != 25 || cfg.Raster.Ramp != "ab" {
		t.Errorf("unexpected raster config %+v", cfg.Raster)
	}
	if cfg.Vector.Size != 10 || !cfg.Vector.NorthUp || cfg.Vector.On != "#" {
		t.Errorf("unexpected vector config %+v", cfg.Vector)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %q", cfg.Logging.Level)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teletext.yaml")
	content := "classify:\n  margin: 30\n  light: 180\nview:\n  zoom: 3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Classify.Margin != 30 || cfg.Classify.Light != 180 {
		t.Errorf("unexpected classify config %+v", cfg.Classify)
	}
	if cfg.Position().Zoom != 3 {
		t.Errorf("expected zoom 3, got %d", cfg.Position().Zoom)
	}
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[raster\nwidth = "), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Path != path {
		t.Errorf("expected path %q, got %q", path, pe.Path)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	if err := os.WriteFile(path, []byte("x=1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"TELETEXT_WIDTH":      "64",
		"TELETEXT_RAMP":       " #",
		"TELETEXT_LOG_LEVEL":  "warn",
		"MAPBOX_ACCESS_TOKEN": "pk.test",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := applyEnv(cfg, lookup); err != nil {
		t.Fatalf("applyEnv failed: %v", err)
	}
	if cfg.Raster.Width != 64 || cfg.Raster.Ramp != " #" || cfg.Logging.Level != "warn" {
		t.Errorf("env overrides not applied: %+v %+v", cfg.Raster, cfg.Logging)
	}
	if cfg.Tile.Token != "pk.test" {
		t.Errorf("expected token from MAPBOX_ACCESS_TOKEN, got %q", cfg.Tile.Token)
	}
}

func TestApplyEnvBadInt(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == "TELETEXT_HEIGHT" {
			return "tall", true
		}
		return "", false
	}
	err := applyEnv(Default(), lookup)
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected validation failure, got %v", err)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teletext.toml")
	if err := os.WriteFile(path, []byte("[raster]\nwidth = 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TELETEXT_WIDTH", "30")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Raster.Width != 30 {
		t.Errorf("expected env to win with 30, got %d", cfg.Raster.Width)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"zero width", func(c *Config) { c.Raster.Width = 0 }, "raster.width"},
		{"zero height", func(c *Config) { c.Raster.Height = 0 }, "raster.height"},
		{"zero vector", func(c *Config) { c.Vector.Size = 0 }, "vector.size"},
		{"negative margin", func(c *Config) { c.Classify.Margin = -1 }, "classify.margin"},
		{"zoom too high", func(c *Config) { c.View.Zoom = 21 }, "view.zoom"},
		{"bad latitude", func(c *Config) { c.View.Lat = 91 }, "view.lat"},
		{"empty ramp", func(c *Config) { c.Raster.Ramp = "" }, "raster.ramp"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad color", func(c *Config) { c.Palette.Water = "blue" }, "palette.water"},
		{"huge tile", func(c *Config) { c.Tile.Size = 5000 }, "tile.size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if ve.Path != tt.path {
				t.Errorf("expected path %q, got %q", tt.path, ve.Path)
			}
		})
	}
}

func TestTimeout(t *testing.T) {
	cfg := Default()
	if cfg.Timeout() != 20*time.Second {
		t.Errorf("expected 20s, got %v", cfg.Timeout())
	}
	cfg.HTTP.Timeout = "nonsense"
	if cfg.Timeout() != 20*time.Second {
		t.Errorf("expected fallback 20s, got %v", cfg.Timeout())
	}
	cfg.HTTP.Timeout = "5s"
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("expected 5s, got %v", cfg.Timeout())
	}
}

func TestRenderOptions(t *testing.T) {
	cfg := Default()
	cfg.Raster.Width = 12
	opts, err := cfg.RenderOptions(nil)
	if err != nil {
		t.Fatalf("RenderOptions failed: %v", err)
	}
	if _, err := render.New(opts); err != nil {
		t.Fatalf("render.New rejected options: %v", err)
	}
	if opts.Width != 12 || opts.Ramp.Len() != 9 || opts.VectorSize != 20 {
		t.Errorf("unexpected options %+v", opts)
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "teletext.toml")
	if err := os.WriteFile(path, []byte("[raster]\nwidth = 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Config, 4)
	w, err := NewWatcher(path, func(cfg *Config, err error) {
		if err == nil {
			reloaded <- cfg
		}
	}, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	if err := os.WriteFile(path, []byte("[raster]\nwidth = 11\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Raster.Width != 11 {
			t.Errorf("expected reloaded width 11, got %d", cfg.Raster.Width)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
