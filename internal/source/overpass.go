// Package source converts vector-feature payloads into geo graphs and
// shapes rendered grids into JSON payloads.
package source

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dshills/teletextmap/internal/geo"
)

// ErrInvalidPayload indicates input that is not a usable feature document.
var ErrInvalidPayload = errors.New("invalid feature payload")

// ParseOverpassJSON reads an Overpass API JSON response ("elements" array
// of nodes and ways). Other element types are ignored. Nodes repeated by
// "out skel" are merged by ID.
func ParseOverpassJSON(data []byte) (*geo.Graph, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidPayload)
	}

	elements := gjson.GetBytes(data, "elements")
	if !elements.IsArray() {
		if remark := gjson.GetBytes(data, "remark"); remark.Exists() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, remark.String())
		}
		return nil, fmt.Errorf("%w: missing elements array", ErrInvalidPayload)
	}

	g := geo.NewGraph()
	elements.ForEach(func(_, el gjson.Result) bool {
		switch el.Get("type").String() {
		case "node":
			lat, lon := el.Get("lat"), el.Get("lon")
			if !lat.Exists() || !lon.Exists() {
				return true
			}
			g.AddNode(geo.Node{
				ID:  geo.NodeID(el.Get("id").Int()),
				Lat: lat.Float(),
				Lon: lon.Float(),
			})
		case "way":
			refs := el.Get("nodes").Array()
			way := geo.Way{ID: el.Get("id").Int(), Nodes: make([]geo.NodeID, 0, len(refs))}
			for _, ref := range refs {
				way.Nodes = append(way.Nodes, geo.NodeID(ref.Int()))
			}
			if tags := el.Get("tags"); tags.IsObject() {
				way.Tags = make(map[string]string)
				tags.ForEach(func(k, v gjson.Result) bool {
					way.Tags[k.String()] = v.String()
					return true
				})
			}
			g.AddWay(way)
		}
		return true
	})

	return g, nil
}
