// Package export writes rendered teletext grids out as text or images.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/dshills/teletextmap/internal/display"
	"github.com/dshills/teletextmap/internal/render"
)

// Glyph cell size of basicfont.Face7x13.
const (
	CellWidth  = 7
	CellHeight = 13
	baseline   = 11
)

// Text returns one string per grid row.
func Text(grid *render.Grid) []string {
	return grid.Lines()
}

// Image draws grid on a black background, one 7×13 cell per glyph,
// each glyph colored by its terrain class.
func Image(grid *render.Grid, palette display.Palette) *image.NRGBA {
	w, h := grid.Size()
	img := image.NewNRGBA(image.Rect(0, 0, w*CellWidth, h*CellHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Face: basicfont.Face7x13}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := grid.At(x, y)
			d.Src = image.NewUniform(toRGBA(palette.Color(c.Color)))
			d.Dot = fixed.P(x*CellWidth, y*CellHeight+baseline)
			d.DrawString(c.Glyph)
		}
	}
	return img
}

// PNG encodes Image(grid, palette) to w.
func PNG(w io.Writer, grid *render.Grid, palette display.Palette) error {
	if err := png.Encode(w, Image(grid, palette)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func toRGBA(c display.Color) color.NRGBA {
	if c.Default {
		return color.NRGBA{R: 0xC0, G: 0xC0, B: 0xC0, A: 0xFF}
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}
