package render

import (
	"strings"

	"github.com/dshills/teletextmap/internal/terrain"
)

// Cell is one output unit of the raster path.
type Cell struct {
	Glyph string
	Color terrain.Color
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	return c.Glyph == other.Glyph && c.Color == other.Color
}

// Grid is an immutable width×height grid of cells, row-major.
type Grid struct {
	width, height int
	cells         []Cell
}

// Size returns the grid dimensions.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// At returns the cell at (x, y). Out-of-bounds positions return a zero Cell.
func (g *Grid) At(x, y int) Cell {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return Cell{}
	}
	return g.cells[y*g.width+x]
}

// Rows returns a copy of the grid as rows of cells.
func (g *Grid) Rows() [][]Cell {
	rows := make([][]Cell, g.height)
	for y := range rows {
		rows[y] = make([]Cell, g.width)
		copy(rows[y], g.cells[y*g.width:(y+1)*g.width])
	}
	return rows
}

// Lines returns the glyphs of each row joined into strings.
func (g *Grid) Lines() []string {
	lines := make([]string, g.height)
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		b.Reset()
		for x := 0; x < g.width; x++ {
			b.WriteString(g.cells[y*g.width+x].Glyph)
		}
		lines[y] = b.String()
	}
	return lines
}

// Histogram counts cells per terrain color.
func (g *Grid) Histogram() map[terrain.Color]int {
	h := make(map[terrain.Color]int)
	for _, c := range g.cells {
		h[c.Color]++
	}
	return h
}
