package vector

import (
	"fmt"

	"github.com/dshills/teletextmap/internal/geo"
	"github.com/dshills/teletextmap/internal/logging"
)

// DanglingReference records a way segment skipped because one of its
// endpoints is not in the node set.
type DanglingReference struct {
	WayID  int64
	NodeID geo.NodeID
	// Index is the position of the missing reference within the way.
	Index int
}

// Error implements the error interface.
func (d DanglingReference) Error() string {
	return fmt.Sprintf("way %d references unknown node %d at index %d", d.WayID, d.NodeID, d.Index)
}

// Result is the outcome of a rasterization pass.
type Result struct {
	Grid     *Grid
	Segments int
	Dangling []DanglingReference
}

// Rasterizer draws ways onto an S×S grid.
type Rasterizer struct {
	size   int
	logger *logging.Logger
}

// NewRasterizer creates a rasterizer for a size×size grid.
// A nil logger discards output.
func NewRasterizer(size int, logger *logging.Logger) *Rasterizer {
	if logger == nil {
		logger = logging.Null()
	}
	return &Rasterizer{size: size, logger: logger.WithComponent("vector")}
}

// Rasterize normalizes the graph's nodes and draws every consecutive node
// pair of every way. Segments touching an unknown node are skipped and
// reported in Result.Dangling. Fails only with geo.ErrEmptyNodeSet.
func (r *Rasterizer) Rasterize(g *geo.Graph) (*Result, error) {
	norm, err := geo.NewNormalizer(g.Nodes, r.size)
	if err != nil {
		return nil, err
	}
	return r.RasterizeWith(g, norm), nil
}

// RasterizeWith draws g using an existing normalizer, e.g. one built over
// a viewport box rather than the node extent.
func (r *Rasterizer) RasterizeWith(g *geo.Graph, norm *geo.Normalizer) *Result {
	res := &Result{Grid: NewGrid(r.size, r.size)}
	nodes := g.Lookup()

	for _, way := range g.Ways {
		var prev geo.Node
		prevOK := false
		for i, id := range way.Nodes {
			cur, ok := nodes[id]
			if !ok {
				d := DanglingReference{WayID: way.ID, NodeID: id, Index: i}
				res.Dangling = append(res.Dangling, d)
				r.logger.Warn("skipping segment: %v", d)
				prevOK = false
				continue
			}
			if prevOK {
				x0, y0 := norm.NormalizeNode(prev)
				x1, y1 := norm.NormalizeNode(cur)
				DrawLine(res.Grid, x0, y0, x1, y1)
				res.Segments++
			}
			prev, prevOK = cur, true
		}
	}

	r.logger.Debug("rasterized %d segments, %d cells occupied", res.Segments, res.Grid.Count())
	return res
}

// DrawLine marks every cell on the integer Bresenham line from (x0, y0) to
// (x1, y1), both endpoints included. The path is 8-connected.
func DrawLine(g *Grid, x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	x, y := x0, y0
	for {
		g.Set(x, y)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
