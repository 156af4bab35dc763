package graph

import "strings"

// AddCTNodes replaces every factor node of degree > 2 with a convolution
// tree: a new ConvolutionTree node is inserted between the factor and its
// taxon parents, named by the space-joined names of those parents. The
// edges that previously connected the factor directly to its parents are
// removed; the factor keeps its edge to its peptide and gains a single
// edge (message length N+1) to the new convolution-tree node, which in
// turn gains one edge (message length 2) to each parent.
//
// Degree is measured on the graph's original edges, so a single pass
// handles every qualifying factor without being confused by nodes this
// same call appends.
func (g *CTFactorGraph) AddCTNodes() {
	originalNodeCount := len(g.Nodes)

	for fid := 0; fid < originalNodeCount; fid++ {
		f := g.Nodes[fid]
		if f.Kind != Factor || len(f.Edges) <= 2 {
			continue
		}

		var parentIDs []int
		var parentEdgeIDs []int
		for _, eid := range f.Edges {
			e := g.Edges[eid]
			if e.removed {
				continue
			}
			other := e.Other(fid)
			if g.Nodes[other].Kind == Taxon {
				parentIDs = append(parentIDs, other)
				parentEdgeIDs = append(parentEdgeIDs, eid)
			}
		}
		if len(parentIDs) == 0 {
			continue
		}

		names := make([]string, len(parentIDs))
		for i, pid := range parentIDs {
			names[i] = g.Nodes[pid].Name
		}
		ctID := g.AddNode(Node{
			Name:        strings.Join(names, " "),
			Kind:        ConvolutionTree,
			ParentCount: len(parentIDs),
		})

		g.AddEdge(ctID, fid, len(parentIDs)+1)
		for _, pid := range parentIDs {
			g.AddEdge(ctID, pid, 2)
		}
		for _, eid := range parentEdgeIDs {
			g.Edges[eid].removed = true
		}
	}

	g.compact()
}

// compact drops edges marked removed, reassigning dense edge ids and
// rebuilding every node's incident-edge list from scratch.
func (g *CTFactorGraph) compact() {
	newEdges := make([]Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if e.removed {
			continue
		}
		e.ID = len(newEdges)
		newEdges = append(newEdges, e)
	}

	for i := range g.Nodes {
		g.Nodes[i].Edges = nil
	}
	for _, e := range newEdges {
		g.Nodes[e.A].Edges = append(g.Nodes[e.A].Edges, e.ID)
		g.Nodes[e.B].Edges = append(g.Nodes[e.B].Edges, e.ID)
	}
	g.Edges = newEdges
}
