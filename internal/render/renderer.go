package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/dshills/teletextmap/internal/geo"
	"github.com/dshills/teletextmap/internal/glyph"
	"github.com/dshills/teletextmap/internal/logging"
	"github.com/dshills/teletextmap/internal/raster"
	"github.com/dshills/teletextmap/internal/terrain"
	"github.com/dshills/teletextmap/internal/vector"
)

// ErrInvalidDimensions indicates a grid dimension below 1.
var ErrInvalidDimensions = errors.New("grid dimensions must be at least 1")

// Options configures a Renderer.
type Options struct {
	// Width and Height are the raster grid dimensions in cells.
	Width  int
	Height int

	// Ramp maps brightness to glyphs, darkest first.
	Ramp glyph.Ramp

	// Thresholds drive terrain classification.
	Thresholds terrain.Thresholds

	// VectorSize is the side S of the square occupancy grid.
	VectorSize int

	// Logger receives diagnostics. Nil discards them.
	Logger *logging.Logger
}

// DefaultOptions returns a 40×25 raster grid, the default ramp and
// thresholds, and a 20×20 vector grid.
func DefaultOptions() Options {
	return Options{
		Width:      40,
		Height:     25,
		Ramp:       glyph.Default(),
		Thresholds: terrain.DefaultThresholds(),
		VectorSize: 20,
	}
}

// Renderer turns pixel buffers and geo graphs into teletext grids.
type Renderer struct {
	opts   Options
	logger *logging.Logger
}

// New validates opts and creates a Renderer.
func New(opts Options) (*Renderer, error) {
	if opts.Width < 1 || opts.Height < 1 || opts.VectorSize < 1 {
		return nil, fmt.Errorf("%w: raster %dx%d, vector %d", ErrInvalidDimensions, opts.Width, opts.Height, opts.VectorSize)
	}
	if opts.Ramp.Len() == 0 {
		return nil, glyph.ErrEmptyRamp
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Null()
	}
	return &Renderer{opts: opts, logger: logger.WithComponent("render")}, nil
}

// Options returns the renderer configuration.
func (r *Renderer) Options() Options {
	return r.opts
}

// RenderRaster samples buf into the configured grid and classifies each cell.
func (r *Renderer) RenderRaster(buf *raster.PixelBuffer) (*Grid, error) {
	samples, err := raster.Sample(buf, r.opts.Width, r.opts.Height)
	if err != nil {
		return nil, err
	}

	grid := &Grid{width: r.opts.Width, height: r.opts.Height, cells: make([]Cell, len(samples))}
	for i, s := range samples {
		grid.cells[i] = r.cellFor(s)
	}

	r.logger.Debug("rendered %dx%d raster grid from %dx%d image", grid.width, grid.height, buf.Width, buf.Height)
	return grid, nil
}

// RenderImage decodes an encoded tile and renders it.
// Decode failures match raster.ErrImageDecode.
func (r *Renderer) RenderImage(rd io.Reader) (*Grid, error) {
	buf, err := raster.Decode(rd)
	if err != nil {
		r.logger.Error("map unavailable: %v", err)
		return nil, err
	}
	return r.RenderRaster(buf)
}

func (r *Renderer) cellFor(s raster.SampleCell) Cell {
	red, green, blue := s.RGB8()
	return Cell{
		Glyph: r.opts.Ramp.Map(s.Brightness),
		Color: r.opts.Thresholds.Classify(red, green, blue),
	}
}

// RenderVector rasterizes g onto a VectorSize×VectorSize occupancy grid.
// Fails with geo.ErrEmptyNodeSet when g has no nodes; dangling way
// references are reported in the result, not as an error.
func (r *Renderer) RenderVector(g *geo.Graph) (*vector.Result, error) {
	if g == nil {
		return nil, geo.ErrEmptyNodeSet
	}
	return vector.NewRasterizer(r.opts.VectorSize, r.logger).Rasterize(g)
}
