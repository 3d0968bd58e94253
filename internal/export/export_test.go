package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/dshills/teletextmap/internal/display"
	"github.com/dshills/teletextmap/internal/raster"
	"github.com/dshills/teletextmap/internal/render"
	"github.com/dshills/teletextmap/internal/terrain"
)

func whiteGrid(t *testing.T, w, h int) *render.Grid {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	opts := render.DefaultOptions()
	opts.Width, opts.Height = w, h
	r, err := render.New(opts)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	buf, err := raster.FromImage(img)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	g, err := r.RenderRaster(buf)
	if err != nil {
		t.Fatalf("RenderRaster: %v", err)
	}
	return g
}

func TestText(t *testing.T) {
	lines := Text(whiteGrid(t, 3, 2))
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for i, l := range lines {
		if l != "@@@" {
			t.Errorf("line %d: expected %q, got %q", i, "@@@", l)
		}
	}
}

func TestImageSize(t *testing.T) {
	img := Image(whiteGrid(t, 4, 3), display.Palette{})
	b := img.Bounds()
	if b.Dx() != 4*CellWidth || b.Dy() != 3*CellHeight {
		t.Errorf("expected %dx%d, got %dx%d", 4*CellWidth, 3*CellHeight, b.Dx(), b.Dy())
	}
	if got := img.NRGBAAt(b.Max.X-1, b.Max.Y-1); got != (color.NRGBA{0, 0, 0, 0xFF}) {
		t.Errorf("expected black background in corner, got %v", got)
	}
}

func TestImageUsesPalette(t *testing.T) {
	palette := display.Palette{terrain.LightSurface: display.ColorFromRGB(255, 0, 0)}
	img := Image(whiteGrid(t, 1, 1), palette)

	found := false
	for y := 0; y < CellHeight && !found; y++ {
		for x := 0; x < CellWidth; x++ {
			c := img.NRGBAAt(x, y)
			if c.R > 0 && c.G == 0 && c.B == 0 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("expected glyph pixels in the light-surface palette color")
	}
}

func TestPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := PNG(&buf, whiteGrid(t, 2, 2), display.Palette{}); err != nil {
		t.Fatalf("PNG failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 2*CellWidth {
		t.Errorf("expected width %d, got %d", 2*CellWidth, img.Bounds().Dx())
	}
}
