package geo

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
)

// ErrEmptyNodeSet is returned when a bounding box is requested for no nodes.
var ErrEmptyNodeSet = errors.New("empty node set")

// BoundingBox is the lat/lon extent of a node set.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Bounds computes the extent of nodes.
func Bounds(nodes []Node) (BoundingBox, error) {
	if len(nodes) == 0 {
		return BoundingBox{}, ErrEmptyNodeSet
	}

	mp := make(orb.MultiPoint, len(nodes))
	for i, n := range nodes {
		mp[i] = orb.Point{n.Lon, n.Lat}
	}
	return FromBound(mp.Bound()), nil
}

// FromBound converts an orb.Bound (X = lon, Y = lat).
func FromBound(b orb.Bound) BoundingBox {
	return BoundingBox{
		MinLat: b.Min.Lat(),
		MaxLat: b.Max.Lat(),
		MinLon: b.Min.Lon(),
		MaxLon: b.Max.Lon(),
	}
}

// Bound returns the box as an orb.Bound.
func (b BoundingBox) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.MinLon, b.MinLat},
		Max: orb.Point{b.MaxLon, b.MaxLat},
	}
}

// Normalizer maps coordinates inside a bounding box onto an S×S grid.
type Normalizer struct {
	box  BoundingBox
	size int
}

// NewNormalizer builds a normalizer over the extent of nodes for a grid of
// size×size cells.
func NewNormalizer(nodes []Node, size int) (*Normalizer, error) {
	box, err := Bounds(nodes)
	if err != nil {
		return nil, err
	}
	return &Normalizer{box: box, size: size}, nil
}

// NewNormalizerForBox builds a normalizer over an explicit box.
func NewNormalizerForBox(box BoundingBox, size int) *Normalizer {
	return &Normalizer{box: box, size: size}
}

// Box returns the bounding box in use.
func (n *Normalizer) Box() BoundingBox {
	return n.box
}

// Size returns the grid size S.
func (n *Normalizer) Size() int {
	return n.size
}

// Degenerate reports which axes have a zero span.
func (n *Normalizer) Degenerate() (lat, lon bool) {
	return n.box.MaxLat == n.box.MinLat, n.box.MaxLon == n.box.MinLon
}

// Normalize returns the grid cell of (lat, lon):
//
//	gx = floor((lon-minLon)/(maxLon-minLon) * (S-1))
//	gy = floor((lat-minLat)/(maxLat-minLat) * (S-1))
//
// An axis with zero span maps to S/2. Results are clamped into [0, S-1].
func (n *Normalizer) Normalize(lat, lon float64) (gx, gy int) {
	gx = axis(lon, n.box.MinLon, n.box.MaxLon, n.size)
	gy = axis(lat, n.box.MinLat, n.box.MaxLat, n.size)
	return gx, gy
}

// NormalizeNode is Normalize for a node.
func (n *Normalizer) NormalizeNode(node Node) (gx, gy int) {
	return n.Normalize(node.Lat, node.Lon)
}

func axis(v, lo, hi float64, size int) int {
	if size < 1 {
		return 0
	}
	var f float64
	if hi == lo {
		f = float64(size / 2)
	} else {
		f = math.Floor((v - lo) / (hi - lo) * float64(size-1))
	}
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > float64(size-1) {
		return size - 1
	}
	return int(f)
}
