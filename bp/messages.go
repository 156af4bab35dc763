package bp

import (
	"math"

	"github.com/compomics/peptonizer-go/graph"
	"github.com/compomics/peptonizer-go/internal/arrmath"
)

// newMessages builds the initial message state for component g: every
// binary edge starts at [0.5, 0.5] with a [0, 0] pending buffer; every
// CT-length edge starts at all-ones with an all-ones pending buffer.
// Current beliefs are copied from each node's initial belief.
func newMessages(g *graph.CTFactorGraph, cfg Config) *messages {
	n := len(g.Nodes)
	m := &messages{
		g:              g,
		cfg:            cfg,
		beliefs:        make([][2]float64, n),
		msgIn:          make([][][]float64, n),
		msgInNew:       make([][][]float64, n),
		msgInLog:       make([][][]float64, n),
		totalResiduals: make([][]float64, n),
		items:          make(map[edgeKey]*pqItem),
	}

	for v := range g.Nodes {
		m.beliefs[v] = g.Nodes[v].Belief

		neighbors := g.Neighbors(v)
		msgInV := make([][]float64, len(neighbors))
		msgInNewV := make([][]float64, len(neighbors))
		for k, nb := range neighbors {
			if nb.MessageLength > 2 {
				msgInV[k] = onesOf(nb.MessageLength)
				msgInNewV[k] = onesOf(nb.MessageLength)
			} else {
				msgInV[k] = []float64{0.5, 0.5}
				msgInNewV[k] = []float64{0, 0}
			}
		}
		m.msgIn[v] = msgInV
		m.msgInNew[v] = msgInNewV
		m.totalResiduals[v] = make([]float64, len(neighbors))
	}

	m.msgInLog = cloneMessages(m.msgIn)

	return m
}

func onesOf(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

func cloneMessages(src [][][]float64) [][][]float64 {
	out := make([][][]float64, len(src))
	for v := range src {
		out[v] = make([][]float64, len(src[v]))
		for k := range src[v] {
			out[v][k] = arrmath.Clone(src[v][k])
		}
	}
	return out
}

// positionOf returns the position of node `start` within node `end`'s
// neighbor list.
func (m *messages) positionOf(end, start int) int {
	for k, nb := range m.g.Neighbors(end) {
		if nb.NodeID == start {
			return k
		}
	}
	return -1
}

// Run executes the five-sweep warm-up followed by the residual loop, and
// returns the resulting beliefs for Taxon/Peptide nodes: each node's
// initial belief times every incoming message, normalized.
func Run(g *graph.CTFactorGraph, cfg Config) Result {
	m := newMessages(g, cfg)

	for sweep := 0; sweep < 5; sweep++ {
		m.sweepAll()
		m.rotateAll()
	}

	converged, steps := m.residualLoop()

	for v, node := range g.Nodes {
		if node.Kind != graph.Taxon && node.Kind != graph.Peptide {
			continue
		}
		logB := []float64{math.Log(node.Belief[0]), math.Log(node.Belief[1])}
		for _, in := range m.msgIn[v] {
			logB[0] += math.Log(in[0])
			logB[1] += math.Log(in[1])
		}
		b := arrmath.LogNormalize(logB)
		m.beliefs[v] = [2]float64{b[0], b[1]}
	}

	return Result{Beliefs: m.beliefs, Converged: converged, Steps: steps}
}

// sweepAll performs one synchronous update of every directed edge in the
// graph, writing results into msgInNew.
func (m *messages) sweepAll() {
	checkedCT := make(map[int]bool)
	for start := range m.g.Nodes {
		for endInStart, nb := range m.g.Neighbors(start) {
			m.singleUpdate(start, nb.NodeID, endInStart, checkedCT)
		}
	}
}

// rotateAll rotates (msgIn, msgInNew, msgInLog) for every node: the
// previous current becomes the log baseline, pending becomes current,
// and the old log baseline becomes the new scratch buffer.
func (m *messages) rotateAll() {
	m.msgInLog, m.msgIn, m.msgInNew = m.msgIn, m.msgInNew, m.msgInLog
}

// singleUpdate dispatches one directed message update from start to end
// based on start's Kind. Convolution-tree nodes are updated at most once
// per call to the containing sweep/step via checkedCT, since one call
// refreshes every message the tree emits.
func (m *messages) singleUpdate(start, end, endInStart int, checkedCT map[int]bool) {
	startNode := m.g.Nodes[start]
	startInEnd := m.positionOf(end, start)

	switch startNode.Kind {
	case graph.Taxon, graph.Peptide:
		m.msgInNew[end][startInEnd] = m.computeOutMessageVariable(start, endInStart)
	case graph.Factor:
		m.msgInNew[end][startInEnd] = m.computeOutMessageFactor(start, end, endInStart)
	case graph.ConvolutionTree:
		if !checkedCT[start] {
			m.computeOutMessagesCTTree(start, m.msgInNew)
			checkedCT[start] = true
		}
	}
}
