package bp

import (
	"math"

	"github.com/compomics/peptonizer-go/graph"
	"github.com/compomics/peptonizer-go/internal/arrmath"
)

// computeOutMessageFactor computes the message factor node `start` sends
// to the neighbor at end/endInStart. A factor always has exactly two
// neighbors once convolution-tree insertion has run: either {parent
// taxon, peptide} for a single-parent factor, or {convolution tree,
// peptide} for everything else. The branch is chosen on end's Kind.
func (m *messages) computeOutMessageFactor(start, end, endInStart int) []float64 {
	cpd := m.g.Nodes[start].CPD
	if m.g.Nodes[end].Kind == graph.ConvolutionTree {
		return m.factorToCountAxis(start, endInStart, cpd)
	}
	return m.factorToVariable(start, endInStart, cpd)
}

// factorToCountAxis sends a message toward the parent-count axis of a
// convolution tree (a single taxon parent is served by factorToVariable
// instead): the componentwise
// product of every other-neighbor message (padded with [1,1] so a
// degree-1 factor still has something to fold over) is broadcast along
// the CPD's columns, the 2D table is normalized, and each row is summed
// to produce a length-(N+1) message.
func (m *messages) factorToCountAxis(start, endInStart int, cpd [][2]float64) []float64 {
	prod := [2]float64{1, 1}
	for k, in := range m.msgIn[start] {
		if k == endInStart {
			continue
		}
		prod[0] *= in[0]
		prod[1] *= in[1]
	}
	return broadcastColumnsSumRows(cpd, prod)
}

// factorToVariable sends a message toward an ordinary variable (taxon or
// peptide). The other neighbor's message is broadcast along the axis
// matching what that neighbor represents: a convolution-tree or taxon
// neighbor supplies a count-indexed message, broadcast along the CPD's
// rows and summed out over the count axis (done in log domain, since the
// count-axis message can span a wide dynamic range); a peptide neighbor
// supplies a presence/absence message, broadcast along the CPD's columns
// and summed out over rows (done in linear domain).
func (m *messages) factorToVariable(start, endInStart int, cpd [][2]float64) []float64 {
	neighbors := m.g.Neighbors(start)
	if len(neighbors) != 2 {
		return sumRows(cpd)
	}
	otherK := endInStart ^ 1
	other := m.msgIn[start][otherK]
	otherKind := m.g.Nodes[neighbors[otherK].NodeID].Kind

	if otherKind == graph.Peptide {
		return broadcastColumnsSumRows(cpd, [2]float64{other[0], other[1]})
	}
	return broadcastRowsSumColumns(cpd, other)
}

// broadcastColumnsSumRows multiplies each CPD row's two columns by
// colFactor independently, normalizes the resulting 2D table by its
// total sum, and returns the row sums (length len(cpd)).
func broadcastColumnsSumRows(cpd [][2]float64, colFactor [2]float64) []float64 {
	n := len(cpd)
	out := make([]float64, n)
	var sum float64
	for i := range cpd {
		rowSum := cpd[i][0]*colFactor[0] + cpd[i][1]*colFactor[1]
		out[i] = rowSum
		sum += rowSum
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// broadcastRowsSumColumns adds log(rowFactor[i]) to both of row i's
// log-CPD entries, log-normalizes the resulting 2D table, and returns the
// two column sums, floored to the underflow limit. rowFactor must have
// length len(cpd).
func broadcastRowsSumColumns(cpd [][2]float64, rowFactor []float64) []float64 {
	n := len(cpd)
	logTable := make([]float64, 2*n)
	for i := range cpd {
		lf := math.Log(rowFactor[i])
		logTable[2*i] = math.Log(cpd[i][0]) + lf
		logTable[2*i+1] = math.Log(cpd[i][1]) + lf
	}
	normTable := arrmath.LogNormalize(logTable)

	out := make([]float64, 2)
	for i := 0; i < n; i++ {
		out[0] += normTable[2*i]
		out[1] += normTable[2*i+1]
	}
	return arrmath.AvoidUnderflow(out)
}

// sumRows collapses a CPD to its two column sums, for the degenerate
// degree-1 factor with no other neighbor to broadcast against.
func sumRows(cpd [][2]float64) []float64 {
	out := make([]float64, 2)
	for _, row := range cpd {
		out[0] += row[0]
		out[1] += row[1]
	}
	return arrmath.Normalize(out)
}
