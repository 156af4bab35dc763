package graph

import "sort"

// Components splits g into its connected components, each as an
// independent CTFactorGraph with densely renumbered (0..k-1) nodes and
// edges and consistent incident-edge lists. Every node of g belongs to
// exactly one returned component; edge counts sum to len(g.Edges).
//
// Reachability is computed by an iterative depth-first walk directly over
// g's own Neighbors(id) adjacency, run once per unvisited root to cover
// disconnected input (the same "one root at a time, skip already-visited
// roots" shape as a full-graph DFS forest traversal), rather than
// mirroring the graph into a string-keyed structure and walking that: g
// already stores node ids as dense ints, so there is nothing to mirror.
func (g *CTFactorGraph) Components() ([]*CTFactorGraph, error) {
	visited := make([]bool, len(g.Nodes))
	componentOf := make([]int, len(g.Nodes))
	numComponents := 0

	for root := range g.Nodes {
		if visited[root] {
			continue
		}
		g.walkComponent(root, visited, componentOf, numComponents)
		numComponents++
	}

	return g.materializeComponents(componentOf, numComponents), nil
}

// walkComponent marks every node reachable from root with component index
// comp, using an explicit stack rather than recursion so the depth of a
// single component cannot overflow the goroutine stack.
func (g *CTFactorGraph) walkComponent(root int, visited []bool, componentOf []int, comp int) {
	stack := []int{root}
	visited[root] = true
	componentOf[root] = comp

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, nb := range g.Neighbors(id) {
			if visited[nb.NodeID] {
				continue
			}
			visited[nb.NodeID] = true
			componentOf[nb.NodeID] = comp
			stack = append(stack, nb.NodeID)
		}
	}
}

// materializeComponents builds one CTFactorGraph per component index,
// remapping original node ids to dense per-component ids in original-id
// order, then copying every edge whose endpoints share a component.
func (g *CTFactorGraph) materializeComponents(componentOf []int, numComponents int) []*CTFactorGraph {
	out := make([]*CTFactorGraph, numComponents)
	newID := make([]int, len(g.Nodes))

	for c := 0; c < numComponents; c++ {
		out[c] = NewCTFactorGraph()
	}

	order := make([]int, len(g.Nodes))
	for i := range order {
		order[i] = i
	}
	sort.Ints(order)

	for _, oldID := range order {
		c := componentOf[oldID]
		n := g.Nodes[oldID]
		n.Edges = nil
		newID[oldID] = out[c].AddNode(n)
	}

	for _, e := range g.Edges {
		c := componentOf[e.A]
		out[c].AddEdge(newID[e.A], newID[e.B], e.MessageLength)
	}

	return out
}
