package raster

import (
	"errors"
	"image"
	"math"
)

// ErrInvalidGrid indicates a non-positive grid dimension.
var ErrInvalidGrid = errors.New("grid dimensions must be positive")

// SampleCell holds the channel means of one grid cell.
// All values are in [0, 255].
type SampleCell struct {
	X, Y       int
	R, G, B    float64
	Brightness float64
}

// RGB8 returns the channel means rounded to the nearest byte.
func (c SampleCell) RGB8() (r, g, b uint8) {
	return round8(c.R), round8(c.G), round8(c.B)
}

func round8(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// SampleWindow returns the source rectangle for output cell (x, y) of a
// cols×rows grid over buf. See the package documentation for the rule.
func SampleWindow(buf *PixelBuffer, cols, rows, x, y int) image.Rectangle {
	x0, x1 := span(x, cols, buf.Width)
	y0, y1 := span(y, rows, buf.Height)
	return image.Rect(x0, y0, x1, y1)
}

// span computes [lo, hi) along one axis for cell i of n over size pixels.
func span(i, n, size int) (lo, hi int) {
	lo = i * size / n
	hi = (i + 1) * size / n
	if hi <= lo {
		hi = lo + 1
	}
	if lo > size-1 {
		lo = size - 1
	}
	if hi > size {
		hi = size
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// Sample partitions buf into a cols×rows grid and returns the per-cell
// averages in row-major order (len == cols*rows).
func Sample(buf *PixelBuffer, cols, rows int) ([]SampleCell, error) {
	if cols < 1 || rows < 1 {
		return nil, ErrInvalidGrid
	}
	if buf == nil || buf.Width < 1 || buf.Height < 1 {
		return nil, ErrEmptyImage
	}

	cells := make([]SampleCell, 0, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			cells = append(cells, sampleWindow(buf, x, y, SampleWindow(buf, cols, rows, x, y)))
		}
	}
	return cells, nil
}

func sampleWindow(buf *PixelBuffer, x, y int, win image.Rectangle) SampleCell {
	var sr, sg, sb uint64
	for py := win.Min.Y; py < win.Max.Y; py++ {
		row := buf.Pix[py*buf.Stride:]
		for px := win.Min.X; px < win.Max.X; px++ {
			i := px * 4
			sr += uint64(row[i])
			sg += uint64(row[i+1])
			sb += uint64(row[i+2])
		}
	}

	n := float64(win.Dx() * win.Dy())
	// Brightness is the mean over all 3n channel values.
	return SampleCell{
		X:          x,
		Y:          y,
		R:          float64(sr) / n,
		G:          float64(sg) / n,
		B:          float64(sb) / n,
		Brightness: float64(sr+sg+sb) / (3 * n),
	}
}
