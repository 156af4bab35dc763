package graph

import "errors"

// Sentinel errors for the graph package.
var (
	// ErrUnknownNodeCategory indicates a GraphML node's d2 value was not
	// one of "peptide", "factor", "taxon".
	ErrUnknownNodeCategory = errors.New("graph: node data has unknown category")

	// ErrMissingNodeData indicates a required data key (d0/d1 for peptide,
	// d3 for factor) was absent.
	ErrMissingNodeData = errors.New("graph: missing required node data key")

	// ErrUnknownNodeID indicates an edge's source or target id was never
	// declared by a <node> element.
	ErrUnknownNodeID = errors.New("graph: edge references unknown node id")

	// ErrNotFactorNode indicates a node whose Kind is not Factor where a
	// factor was expected. FillFactors and AddCTNodes do not return it:
	// both skip non-factor nodes.
	ErrNotFactorNode = errors.New("graph: node is not a factor node")
)

// Kind tags the four node variants a CTFactorGraph can hold.
type Kind int

const (
	Taxon Kind = iota
	Peptide
	Factor
	ConvolutionTree
)

// String renders Kind the way it appears in the d2 GraphML attribute and
// in CSV output's category column.
func (k Kind) String() string {
	switch k {
	case Taxon:
		return "taxon"
	case Peptide:
		return "peptide"
	case Factor:
		return "factor"
	case ConvolutionTree:
		return "convolution_tree"
	default:
		return "unknown"
	}
}

// Node is a tagged-union graph node. Every message-update branch elsewhere
// in this module dispatches on Kind; category strings are always derived
// from Kind via String(), never stored independently.
type Node struct {
	// ID is the node's stable integer identifier within its graph.
	ID int

	// Name is the human-readable identifier from the GraphML source (or,
	// for inserted convolution-tree nodes, the space-joined ids of their
	// taxon parents). Names may collide across components.
	Name string

	// Edges holds the ids of edges incident to this node.
	Edges []int

	Kind Kind

	// Belief holds (p0, p1) for Taxon and Peptide nodes.
	Belief [2]float64

	// ParentCount holds the parent fan-in N for Factor and
	// ConvolutionTree nodes.
	ParentCount int

	// CPD holds the (N+1)x2 noisy-OR conditional probability table for
	// Factor nodes, filled in by FillFactors.
	CPD [][2]float64
}

// Edge is an undirected connection between two node ids.
type Edge struct {
	ID int
	A  int
	B  int

	// MessageLength is the length messages along this edge carry: N+1 on
	// the edge between a convolution tree of parent count N and its factor,
	// 2 on every other edge (including a convolution tree's taxon edges).
	MessageLength int

	// removed marks an edge severed by AddCTNodes, pending compaction.
	removed bool
}

// Other returns the endpoint of e that is not id.
func (e Edge) Other(id int) int {
	if e.A == id {
		return e.B
	}
	return e.A
}

// CTFactorGraph is the factor graph: a name-to-id index plus contiguous
// node and edge slices. It is mutated only during construction (Parse,
// FillPriors, FillFactors, AddCTNodes, Components); belief propagation
// treats it as read-only topology.
type CTFactorGraph struct {
	NameToID map[string]int
	Nodes    []Node
	Edges    []Edge
}

// NewCTFactorGraph returns an empty graph ready for incremental
// construction (used by Components to build derived graphs).
func NewCTFactorGraph() *CTFactorGraph {
	return &CTFactorGraph{NameToID: make(map[string]int)}
}

// AddNode appends n, assigning it the next dense id, and indexes it by
// name. Returns the assigned id.
func (g *CTFactorGraph) AddNode(n Node) int {
	n.ID = len(g.Nodes)
	g.Nodes = append(g.Nodes, n)
	g.NameToID[n.Name] = n.ID
	return n.ID
}

// AddEdge appends a new edge between node ids a and b with the given
// message length, recording it on both endpoints' incident-edge lists.
// Returns the assigned edge id.
func (g *CTFactorGraph) AddEdge(a, b, messageLength int) int {
	eid := len(g.Edges)
	g.Edges = append(g.Edges, Edge{ID: eid, A: a, B: b, MessageLength: messageLength})
	g.Nodes[a].Edges = append(g.Nodes[a].Edges, eid)
	g.Nodes[b].Edges = append(g.Nodes[b].Edges, eid)
	return eid
}

// Neighbors returns, for node id, the (edge id, neighbor id) pairs across
// all its incident edges, in incident-edge order.
func (g *CTFactorGraph) Neighbors(id int) []NeighborRef {
	edges := g.Nodes[id].Edges
	out := make([]NeighborRef, len(edges))
	for i, eid := range edges {
		e := g.Edges[eid]
		out[i] = NeighborRef{EdgeID: eid, NodeID: e.Other(id), MessageLength: e.MessageLength}
	}
	return out
}

// NeighborRef describes one neighbor of a node, reached via EdgeID.
type NeighborRef struct {
	EdgeID        int
	NodeID        int
	MessageLength int
}
