package display

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/teletextmap/internal/config"
	"github.com/dshills/teletextmap/internal/terrain"
)

// Color is a 24-bit color or the terminal default.
type Color struct {
	R, G, B uint8
	// Default indicates the terminal's default color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromHex parses "#RRGGBB".
func ColorFromHex(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color: %s", hex)
	}
	r, g, b := c.RGB255()
	return ColorFromRGB(r, g, b), nil
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default || other.Default {
		return c.Default == other.Default
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// Dim returns the color blended halfway toward black in Lab space.
func (c Color) Dim() Color {
	if c.Default {
		return c
	}
	src := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	r, g, b := src.BlendLab(colorful.Color{}, 0.5).Clamped().RGB255()
	return ColorFromRGB(r, g, b)
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.Default {
		return "default"
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Palette assigns a display color to every terrain class.
type Palette map[terrain.Color]Color

// Color returns the color for class t, or ColorDefault if unset.
func (p Palette) Color(t terrain.Color) Color {
	if c, ok := p[t]; ok {
		return c
	}
	return ColorDefault
}

// PaletteFromConfig parses the configured hex colors.
func PaletteFromConfig(pc config.PaletteConfig) (Palette, error) {
	hexes := map[terrain.Color]string{
		terrain.Water:        pc.Water,
		terrain.Vegetation:   pc.Vegetation,
		terrain.LightSurface: pc.Light,
		terrain.DarkSurface:  pc.Dark,
		terrain.Default:      pc.Default,
	}
	p := make(Palette, len(hexes))
	for t, hex := range hexes {
		c, err := ColorFromHex(hex)
		if err != nil {
			return nil, fmt.Errorf("palette %s: %w", t, err)
		}
		p[t] = c
	}
	return p, nil
}
