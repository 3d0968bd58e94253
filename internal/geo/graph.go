// Package geo holds the node/way graph model and maps geographic
// coordinates onto integer grid coordinates.
package geo

// NodeID identifies a node within a graph.
type NodeID int64

// Node is a geographic point.
type Node struct {
	ID  NodeID
	Lat float64
	Lon float64
}

// Way is an ordered polyline of node references.
type Way struct {
	ID    int64
	Nodes []NodeID
	Tags  map[string]string
}

// Graph is a node set plus the ways referencing it.
// Nodes keep their insertion order; lookups go through an index.
// A Graph is not safe for concurrent use; use Lookup to share a
// read-only view.
type Graph struct {
	Nodes []Node
	Ways  []Way

	index   map[NodeID]int
	indexed int // len(Nodes) when index was last built
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[NodeID]int)}
}

// AddNode adds n, replacing any earlier node with the same ID.
func (g *Graph) AddNode(n Node) {
	if g.index == nil {
		g.reindex()
	}
	if i, ok := g.index[n.ID]; ok {
		g.Nodes[i] = n
		return
	}
	g.index[n.ID] = len(g.Nodes)
	g.Nodes = append(g.Nodes, n)
	g.indexed = len(g.Nodes)
}

// AddWay appends a way. References are not checked here.
func (g *Graph) AddWay(w Way) {
	g.Ways = append(g.Ways, w)
}

// Node looks up a node by ID. Graphs built as literals are indexed on
// first use, and again whenever Nodes has grown since.
func (g *Graph) Node(id NodeID) (Node, bool) {
	if g.index == nil || g.indexed != len(g.Nodes) {
		g.reindex()
	}
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// reindex rebuilds the lookup table for graphs assembled by hand.
func (g *Graph) reindex() {
	g.index = make(map[NodeID]int, len(g.Nodes))
	for i, n := range g.Nodes {
		g.index[n.ID] = i
	}
	g.indexed = len(g.Nodes)
}

// Lookup returns a fresh ID to node map. With duplicate IDs the later
// node wins, matching AddNode.
func (g *Graph) Lookup() map[NodeID]Node {
	m := make(map[NodeID]Node, len(g.Nodes))
	for _, n := range g.Nodes {
		m[n.ID] = n
	}
	return m
}
