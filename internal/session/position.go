// Package session holds the viewer's map position and tracks in-flight
// render requests so stale results can be discarded.
package session

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Zoom limits for the static tile service.
const (
	MinZoom = 1
	MaxZoom = 20
)

// Position is a map center and zoom level.
type Position struct {
	Lat  float64
	Lng  float64
	Zoom int
}

// DefaultPosition is central Istanbul at street zoom.
func DefaultPosition() Position {
	return Position{Lat: 41.014266, Lng: 28.994267, Zoom: 14}
}

// Pan returns p moved by the given deltas in degrees.
func (p Position) Pan(dlat, dlng float64) Position {
	p.Lat += dlat
	p.Lng += dlng
	return p
}

// ZoomBy returns p with zoom changed by delta, clamped to [MinZoom, MaxZoom].
func (p Position) ZoomBy(delta int) Position {
	p.Zoom = max(MinZoom, min(MaxZoom, p.Zoom+delta))
	return p
}

// HalfSpan returns the half-width in degrees covered at p's zoom level,
// 180 / 2^zoom.
func (p Position) HalfSpan() float64 {
	return 180 / math.Pow(2, float64(p.Zoom))
}

// Bound returns the lon/lat box of HalfSpan around the center, with
// latitude clamped to [-90, 90].
func (p Position) Bound() orb.Bound {
	h := p.HalfSpan()
	return orb.Bound{
		Min: orb.Point{p.Lng - h, max(-90, p.Lat-h)},
		Max: orb.Point{p.Lng + h, min(90, p.Lat+h)},
	}
}

// String formats the position as the viewer's coordinates line.
func (p Position) String() string {
	return fmt.Sprintf("LAT: %.4f LON: %.4f Z: %d", p.Lat, p.Lng, p.Zoom)
}
