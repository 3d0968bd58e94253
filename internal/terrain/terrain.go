// Package terrain classifies averaged tile colors into coarse terrain
// classes.
package terrain

// Color is the terrain class assigned to a sampled cell.
type Color int

const (
	// Default is used when no rule matches.
	Default Color = iota
	// Water is blue-dominant.
	Water
	// Vegetation is green-dominant.
	Vegetation
	// LightSurface is a bright, near-gray color.
	LightSurface
	// DarkSurface is a dim, near-gray color.
	DarkSurface
)

// All lists every terrain class in declaration order.
var All = []Color{Default, Water, Vegetation, LightSurface, DarkSurface}

// String returns the class name.
func (c Color) String() string {
	switch c {
	case Default:
		return "default"
	case Water:
		return "water"
	case Vegetation:
		return "vegetation"
	case LightSurface:
		return "light"
	case DarkSurface:
		return "dark"
	default:
		return "unknown"
	}
}

// Thresholds holds the classifier constants.
type Thresholds struct {
	// Margin is how far a channel must exceed the other two to dominate,
	// and the maximum channel spread for a gray.
	Margin int
	// Light is the red level above which a gray counts as light.
	Light int
}

// DefaultThresholds returns the standard margin of 20 and light level of 200.
func DefaultThresholds() Thresholds {
	return Thresholds{Margin: 20, Light: 200}
}

// Classify applies the rules in order, first match wins:
//
//	b > r+margin && b > g+margin        → Water
//	g > r+margin && g > b+margin        → Vegetation
//	|r-g| < margin && |g-b| < margin    → LightSurface if r > light, else DarkSurface
//	otherwise                           → Default
func (t Thresholds) Classify(r, g, b uint8) Color {
	ri, gi, bi := int(r), int(g), int(b)

	switch {
	case bi > ri+t.Margin && bi > gi+t.Margin:
		return Water
	case gi > ri+t.Margin && gi > bi+t.Margin:
		return Vegetation
	case abs(ri-gi) < t.Margin && abs(gi-bi) < t.Margin:
		if ri > t.Light {
			return LightSurface
		}
		return DarkSurface
	default:
		return Default
	}
}

// Classify uses DefaultThresholds.
func Classify(r, g, b uint8) Color {
	return DefaultThresholds().Classify(r, g, b)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
