package bp

import (
	"math"

	"github.com/compomics/peptonizer-go/internal/arrmath"
)

// computeOutMessageVariable computes the message a Taxon/Peptide node
// `start` sends to the neighbor at position endInStart: in the log
// domain, sum every other incoming log-message, add the node's own log
// initial belief componentwise, log-normalize, exponentiate, and floor
// to 1e-30.
//
// If start has exactly one neighbor (necessarily the target), the usual
// rule would sum zero other messages and just re-emit the node's own
// belief; instead, when that belief is bit-identical to the target's
// initial belief, the outgoing message is a copy of the currently cached
// incoming message from the target, to avoid the node reinforcing its
// own belief back at its only neighbor.
func (m *messages) computeOutMessageVariable(start, endInStart int) []float64 {
	neighbors := m.g.Neighbors(start)
	belief := m.beliefs[start]

	if len(neighbors) == 1 {
		target := neighbors[endInStart].NodeID
		targetBelief := m.g.Nodes[target].Belief
		if belief == targetBelief {
			startInTarget := m.positionOf(target, start)
			return arrmath.Clone(m.msgIn[target][startInTarget])
		}
		return []float64{belief[0], belief[1]}
	}

	sumLog := [2]float64{0, 0}
	for k, in := range m.msgIn[start] {
		if k == endInStart {
			continue
		}
		sumLog[0] += math.Log(in[0])
		sumLog[1] += math.Log(in[1])
	}

	beliefLog := [2]float64{math.Log(belief[0]), math.Log(belief[1])}
	combined := []float64{beliefLog[0] + sumLog[0], beliefLog[1] + sumLog[1]}

	out := arrmath.LogNormalize(combined)

	return arrmath.AvoidUnderflow(out)
}
