package bp

import (
	"github.com/compomics/peptonizer-go/graph"
	"github.com/compomics/peptonizer-go/internal/arrmath"
	"github.com/rs/zerolog/log"
)

// residualLoop runs the priority-driven phase of belief propagation: after
// the five-sweep warm-up, repeatedly consume the directed edge with the
// largest outstanding residual, update it, and propagate the resulting
// residual bookkeeping to the edges it could affect, until every residual
// falls at or below the configured tolerance or the step cap is reached.
func (m *messages) residualLoop() (bool, int) {
	m.seedPriorities()

	steps := 0
	for steps < m.cfg.MaxIter {
		if m.peekMaxResidual() <= m.cfg.Tol {
			return true, steps
		}
		item, ok := m.popMaxPriority()
		if !ok {
			return true, steps
		}
		m.applyResidualStep(item)
		steps++
	}

	converged := m.peekMaxResidual() <= m.cfg.Tol
	if !converged {
		log.Warn().
			Int("max_iter", m.cfg.MaxIter).
			Float64("tol", m.cfg.Tol).
			Float64("max_residual", m.peekMaxResidual()).
			Msg("belief propagation did not converge")
	}
	return converged, steps
}

// seedPriorities computes the initial residual of every directed edge in
// the graph, resetting the log baseline to all-ones first wherever the
// current and baseline message lengths disagree (the CT-insertion pass
// leaves some edges at CT length and others at binary length, and the
// warm-up sweeps never change an edge's length once fixed, so this only
// ever fires for edges the warm-up skipped entirely).
func (m *messages) seedPriorities() {
	for end := range m.g.Nodes {
		for k, nb := range m.g.Neighbors(end) {
			cur := m.msgIn[end][k]
			base := m.msgInLog[end][k]
			if len(cur) != len(base) {
				base = onesOf(len(cur))
				m.msgInLog[end][k] = base
			}
			residual := arrmath.MaxAbsLogResidual(cur, base)
			m.totalResiduals[end][k] = residual
			m.setPriority(end, k, nb.NodeID, residual)
		}
	}
}

// updatedEdge names one directed edge (start -> end, landing at position
// startInEnd in end's incoming array) that directedUpdate just refreshed.
type updatedEdge struct {
	end        int
	startInEnd int
}

// applyResidualStep performs the directed update named by item, then
// carries out the bookkeeping spec'd for a consumed residual-loop step
// for every edge the update touched (more than one when start is a
// convolution tree): recompute the edge's own residual, reset the
// sender's bookkeeping row, fold the new residual into the receiver's
// row, and re-derive every other back-edge priority out of the receiver
// from the rest of its rows.
func (m *messages) applyResidualStep(item *pqItem) {
	start := item.start
	updated := m.directedUpdate(start, item.end, item.startInEnd)

	for k := range m.totalResiduals[start] {
		m.totalResiduals[start][k] = 0
	}

	changedNodes := make(map[int]bool, len(updated))
	for _, e := range updated {
		end := e.end
		newResidual := arrmath.MaxAbsLogResidual(m.msgIn[end][e.startInEnd], m.msgInLog[end][e.startInEnd])
		m.setPriority(end, e.startInEnd, start, newResidual)
		m.totalResiduals[end][e.startInEnd] = newResidual
		changedNodes[end] = true

		for k, nb := range m.g.Neighbors(end) {
			if nb.NodeID == start {
				continue
			}
			endInNb := m.positionOf(nb.NodeID, end)
			var sum float64
			for j := range m.totalResiduals[end] {
				if j == k {
					continue
				}
				sum += m.totalResiduals[end][j]
			}
			m.setPriority(nb.NodeID, endInNb, end, sum)
		}
	}

	for v := range changedNodes {
		m.msgInLog[v] = arrmath.CloneAll(m.msgIn[v])
	}
}

// directedUpdate performs one directed message update from start to end
// and writes the result(s) straight into msgIn (not msgInNew, since the
// residual loop updates one edge at a time rather than sweeping
// synchronously). It returns every edge whose incoming message changed,
// which for a convolution-tree sender is every edge incident to it at
// once.
func (m *messages) directedUpdate(start, end, startInEnd int) []updatedEdge {
	startNode := m.g.Nodes[start]

	switch startNode.Kind {
	case graph.Taxon, graph.Peptide:
		endInStart := m.positionOf(end, start)
		m.msgIn[end][startInEnd] = m.computeOutMessageVariable(start, endInStart)
		return []updatedEdge{{end: end, startInEnd: startInEnd}}
	case graph.Factor:
		endInStart := m.positionOf(end, start)
		m.msgIn[end][startInEnd] = m.computeOutMessageFactor(start, end, endInStart)
		return []updatedEdge{{end: end, startInEnd: startInEnd}}
	case graph.ConvolutionTree:
		m.computeOutMessagesCTTree(start, m.msgIn)
		neighbors := m.g.Neighbors(start)
		updated := make([]updatedEdge, len(neighbors))
		for i, nb := range neighbors {
			updated[i] = updatedEdge{end: nb.NodeID, startInEnd: m.positionOf(nb.NodeID, start)}
		}
		return updated
	}
	return nil
}
