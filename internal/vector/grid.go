// Package vector rasterizes way polylines onto a binary occupancy grid.
package vector

import "strings"

// Grid is a width×height binary occupancy grid indexed [y][x].
// Row 0 corresponds to the minimum latitude.
type Grid struct {
	width, height int
	cells         []bool
}

// NewGrid creates an empty grid.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{width: width, height: height, cells: make([]bool, width*height)}
}

// Size returns the grid dimensions.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Set marks (x, y). Out-of-bounds positions are ignored and return false.
func (g *Grid) Set(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.cells[y*g.width+x] = true
	return true
}

// Occupied reports whether (x, y) is marked. Out-of-bounds is false.
func (g *Grid) Occupied(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.cells[y*g.width+x]
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// Rows returns a copy of the grid as rows of occupancy values.
func (g *Grid) Rows() [][]bool {
	rows := make([][]bool, g.height)
	for y := range rows {
		rows[y] = make([]bool, g.width)
		copy(rows[y], g.cells[y*g.width:(y+1)*g.width])
	}
	return rows
}

// Lines renders the grid as text using on/off glyphs.
// When northUp is set the rows are emitted from maximum latitude down.
func (g *Grid) Lines(on, off string, northUp bool) []string {
	lines := make([]string, g.height)
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		b.Reset()
		for x := 0; x < g.width; x++ {
			if g.cells[y*g.width+x] {
				b.WriteString(on)
			} else {
				b.WriteString(off)
			}
		}
		row := y
		if northUp {
			row = g.height - 1 - y
		}
		lines[row] = b.String()
	}
	return lines
}
