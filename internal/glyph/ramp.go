// Package glyph maps brightness values onto an ordered character ramp.
package glyph

import (
	"errors"
	"math"
	"strings"

	"github.com/rivo/uniseg"
)

// DefaultRamp is the darkest-to-brightest ramp used by the teletext view.
const DefaultRamp = " .:=+*#%@"

// ErrEmptyRamp indicates a ramp with no glyphs.
var ErrEmptyRamp = errors.New("glyph ramp is empty")

// Ramp is an ordered, read-only sequence of glyphs from darkest to
// brightest. Each glyph is one grapheme cluster.
type Ramp struct {
	glyphs []string
}

// ParseRamp splits s into grapheme clusters. Multi-codepoint glyphs such
// as "é" count as a single ramp step.
func ParseRamp(s string) (Ramp, error) {
	var glyphs []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		glyphs = append(glyphs, g.Str())
	}
	if len(glyphs) == 0 {
		return Ramp{}, ErrEmptyRamp
	}
	return Ramp{glyphs: glyphs}, nil
}

// MustParseRamp is like ParseRamp but panics on error.
func MustParseRamp(s string) Ramp {
	r, err := ParseRamp(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Default returns the DefaultRamp.
func Default() Ramp {
	return MustParseRamp(DefaultRamp)
}

// Len returns the number of glyphs.
func (r Ramp) Len() int {
	return len(r.glyphs)
}

// Glyph returns the glyph at index i.
func (r Ramp) Glyph(i int) string {
	return r.glyphs[i]
}

// Index returns floor(brightness/256*len), clamped to [0, len-1].
// Out-of-range brightness (negative, NaN, >= 256) is clamped rather than
// rejected.
func (r Ramp) Index(brightness float64) int {
	n := len(r.glyphs)
	if n == 0 || math.IsNaN(brightness) {
		return 0
	}
	f := math.Floor(brightness / 256 * float64(n))
	if f < 0 {
		return 0
	}
	if f > float64(n-1) {
		return n - 1
	}
	return int(f)
}

// Map returns the glyph for brightness.
func (r Ramp) Map(brightness float64) string {
	if len(r.glyphs) == 0 {
		return " "
	}
	return r.glyphs[r.Index(brightness)]
}

// String returns the ramp as a single string.
func (r Ramp) String() string {
	return strings.Join(r.glyphs, "")
}
