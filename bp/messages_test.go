package bp

import (
	"math"
	"testing"

	"github.com/compomics/peptonizer-go/graph"
	"github.com/stretchr/testify/require"
)

// buildTwoTaxonOnePeptide builds a factor of degree 3 (two taxon parents,
// one peptide), which AddCTNodes replaces with a convolution tree.
func buildTwoTaxonOnePeptide(t *testing.T, prior float64, peptideBelief [2]float64, alpha, beta float64, regularized bool) *graph.CTFactorGraph {
	t.Helper()
	g := graph.NewCTFactorGraph()

	t1 := g.AddNode(graph.Node{Name: "t1", Kind: graph.Taxon})
	t2 := g.AddNode(graph.Node{Name: "t2", Kind: graph.Taxon})
	pep := g.AddNode(graph.Node{Name: "p1", Kind: graph.Peptide, Belief: peptideBelief})
	f := g.AddNode(graph.Node{Name: "f1", Kind: graph.Factor, ParentCount: 2})

	g.AddEdge(f, t1, 2)
	g.AddEdge(f, t2, 2)
	g.AddEdge(f, pep, 2)

	g.FillPriors(prior)
	g.FillFactors(alpha, beta, regularized)
	g.AddCTNodes()

	return g
}

func requireNoNaNOrNegative(t *testing.T, m *messages) {
	t.Helper()
	for v := range m.msgIn {
		for _, msg := range m.msgIn[v] {
			for _, x := range msg {
				require.False(t, math.IsNaN(x), "NaN message value")
				require.GreaterOrEqual(t, x, 0.0, "negative message value")
			}
		}
	}
	for _, b := range m.beliefs {
		require.False(t, math.IsNaN(b[0]) || math.IsNaN(b[1]))
		require.GreaterOrEqual(t, b[0], 0.0)
		require.GreaterOrEqual(t, b[1], 0.0)
	}
}

func TestRun_TwoTaxonOnePeptide_StrongPositiveEvidenceRaisesBothTaxa(t *testing.T) {
	g := buildTwoTaxonOnePeptide(t, 0.5, [2]float64{0.001, 0.999}, 0.9, 0.01, false)

	m := newMessages(g, DefaultConfig())
	for sweep := 0; sweep < 5; sweep++ {
		m.sweepAll()
		m.rotateAll()
	}
	requireNoNaNOrNegative(t, m)

	converged, steps := m.residualLoop()
	require.GreaterOrEqual(t, steps, 0)
	_ = converged
	requireNoNaNOrNegative(t, m)

	res := Run(g, DefaultConfig())
	require.Greater(t, res.Beliefs[0][1], 0.5, "t1 rises above its 0.5 prior")
	require.Greater(t, res.Beliefs[1][1], 0.5, "t2 rises above its 0.5 prior")
}

func TestRun_IsolatedTaxonReportsPriorUnchanged(t *testing.T) {
	g := graph.NewCTFactorGraph()
	g.AddNode(graph.Node{Name: "lonely", Kind: graph.Taxon, Belief: [2]float64{0.9, 0.1}})

	res := Run(g, DefaultConfig())
	require.InDelta(t, 0.1, res.Beliefs[0][1], DefaultConfig().Tol)
	require.True(t, res.Converged)
}

func TestRun_IdempotentOnAnAlreadyConvergedState(t *testing.T) {
	g := buildTwoTaxonOnePeptide(t, 0.5, [2]float64{0.2, 0.8}, 0.9, 0.01, false)

	m := newMessages(g, DefaultConfig())
	for sweep := 0; sweep < 5; sweep++ {
		m.sweepAll()
		m.rotateAll()
	}
	converged, _ := m.residualLoop()
	require.True(t, converged, "this small graph should converge under the default tolerance")

	m.cfg.Tol = 1
	_, steps := m.residualLoop()
	require.Equal(t, 0, steps, "re-running on an already-converged state with a loose tolerance performs no updates")
}

func TestComputeOutMessageVariable_SingleNeighborCopiesTargetMessageWhenBeliefsMatch(t *testing.T) {
	g := graph.NewCTFactorGraph()
	same := [2]float64{0.3, 0.7}
	a := g.AddNode(graph.Node{Name: "a", Kind: graph.Taxon, Belief: same})
	b := g.AddNode(graph.Node{Name: "b", Kind: graph.Taxon, Belief: same})
	g.AddEdge(a, b, 2)

	m := newMessages(g, DefaultConfig())
	m.msgIn[b][0] = []float64{0.11, 0.89}

	out := m.computeOutMessageVariable(a, 0)
	require.Equal(t, []float64{0.11, 0.89}, out)
}

func TestComputeOutMessageVariable_SingleNeighborEmitsOwnBeliefWhenBeliefsDiffer(t *testing.T) {
	g := graph.NewCTFactorGraph()
	a := g.AddNode(graph.Node{Name: "a", Kind: graph.Taxon, Belief: [2]float64{0.4, 0.6}})
	b := g.AddNode(graph.Node{Name: "b", Kind: graph.Taxon, Belief: [2]float64{0.9, 0.1}})
	g.AddEdge(a, b, 2)

	m := newMessages(g, DefaultConfig())
	out := m.computeOutMessageVariable(a, 0)
	require.InDelta(t, 0.4, out[0], 1e-12)
	require.InDelta(t, 0.6, out[1], 1e-12)
}
