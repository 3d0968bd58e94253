package source

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/paulmach/osm"

	"github.com/dshills/teletextmap/internal/geo"
)

// ParseOSMXML reads an OSM XML document (as served by the OSM API or
// Overpass with [out:xml]).
func ParseOSMXML(r io.Reader) (*geo.Graph, error) {
	var o osm.OSM
	if err := xml.NewDecoder(r).Decode(&o); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return FromOSM(&o), nil
}

// FromOSM converts decoded OSM data to a graph. Relations are ignored.
func FromOSM(o *osm.OSM) *geo.Graph {
	g := geo.NewGraph()
	for _, n := range o.Nodes {
		g.AddNode(geo.Node{ID: geo.NodeID(n.ID), Lat: n.Lat, Lon: n.Lon})
	}
	for _, w := range o.Ways {
		way := geo.Way{ID: int64(w.ID), Nodes: make([]geo.NodeID, 0, len(w.Nodes))}
		for _, wn := range w.Nodes {
			way.Nodes = append(way.Nodes, geo.NodeID(wn.ID))
		}
		if len(w.Tags) > 0 {
			way.Tags = w.Tags.Map()
		}
		g.AddWay(way)
	}
	return g
}
