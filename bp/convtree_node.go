package bp

import (
	"github.com/compomics/peptonizer-go/convtree"
	"github.com/compomics/peptonizer-go/graph"
	"github.com/compomics/peptonizer-go/internal/arrmath"
)

// computeOutMessagesCTTree refreshes every message a convolution-tree node
// emits in one call. Its Taxon neighbors each supply a parent marginal
// (the construction rule in the graph package connects a CT node to
// exactly one factor and to every taxon it replaced); the single Factor
// neighbor supplies the shared-likelihood vector over the parent count.
// If neither has changed since the previous step's log baseline, the
// previous outgoing messages are copied forward unchanged rather than
// rebuilding the tree. dest is either m.msgInNew (warm-up sweeps) or
// m.msgIn (residual-loop directed updates).
func (m *messages) computeOutMessagesCTTree(start int, dest [][][]float64) {
	neighbors := m.g.Neighbors(start)

	var parentPos []int
	sharedPos := -1
	for k, nb := range neighbors {
		if m.g.Nodes[nb.NodeID].Kind == graph.Taxon {
			parentPos = append(parentPos, k)
		} else {
			sharedPos = k
		}
	}

	shared := arrmath.AvoidUnderflow(arrmath.Clone(m.msgIn[start][sharedPos]))
	parents := make([][]float64, len(parentPos))
	for i, k := range parentPos {
		parents[i] = arrmath.Clone(m.msgIn[start][k])
	}

	unchanged := arrmath.Equal(shared, m.msgInLog[start][sharedPos])
	for i, k := range parentPos {
		if !unchanged {
			break
		}
		if !arrmath.Equal(parents[i], m.msgInLog[start][k]) {
			unchanged = false
		}
	}

	if unchanged {
		m.copyForward(start, sharedPos, parentPos, neighbors, dest)
		return
	}

	tree, err := convtree.NewConvolutionTree(shared, parents)
	if err != nil {
		m.copyForward(start, sharedPos, parentPos, neighbors, dest)
		return
	}

	for i, k := range parentPos {
		nbID := neighbors[k].NodeID
		pos := m.positionOf(nbID, start)
		dest[nbID][pos] = arrmath.AvoidUnderflow(tree.MessageToVariable(i))
	}

	nbID := neighbors[sharedPos].NodeID
	pos := m.positionOf(nbID, start)
	dest[nbID][pos] = arrmath.AvoidUnderflow(tree.MessageToSharedLikelihood())
}

// copyForward re-emits the previous incoming message along every edge
// incident to the convolution tree, used when nothing has changed since
// the last rebuild.
func (m *messages) copyForward(start, sharedPos int, parentPos []int, neighbors []graph.NeighborRef, dest [][][]float64) {
	for _, k := range append([]int{sharedPos}, parentPos...) {
		nbID := neighbors[k].NodeID
		pos := m.positionOf(nbID, start)
		dest[nbID][pos] = arrmath.Clone(m.msgIn[nbID][pos])
	}
}
