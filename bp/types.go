package bp

import (
	"github.com/compomics/peptonizer-go/graph"
)

// Config holds the tunables for one belief-propagation run.
type Config struct {
	// MaxIter caps the number of residual-loop steps after warm-up.
	MaxIter int

	// Tol is the convergence tolerance: the loop stops once the largest
	// outstanding residual is <= Tol.
	Tol float64
}

// DefaultConfig returns the engine's documented defaults.
func DefaultConfig() Config {
	return Config{MaxIter: 10000, Tol: 0.006}
}

// Result is the outcome of one component's belief-propagation run.
type Result struct {
	// Beliefs holds, for every node, its current (p0, p1) belief. Only
	// Taxon and Peptide entries are meaningful; Factor and
	// ConvolutionTree entries are left zero.
	Beliefs [][2]float64

	// Converged is false if MaxIter was reached before every residual
	// fell to or below Tol.
	Converged bool

	// Steps is the number of residual-loop steps actually taken.
	Steps int
}

// messages holds all mutable per-run state: the three message triads,
// per-node current beliefs, and the residual bookkeeping the scheduler
// consults to reconstruct incoming-edge priorities.
type messages struct {
	g   *graph.CTFactorGraph
	cfg Config

	// beliefs[v] is node v's current (p0, p1) belief; only meaningful for
	// Taxon and Peptide nodes.
	beliefs [][2]float64

	// msgIn, msgInNew, msgInLog are indexed [nodeID][neighborPosition];
	// each entry is the message along that incident edge as seen from
	// nodeID's perspective (i.e. msgIn[v][k] is the message node v has
	// received from its k-th neighbor).
	msgIn, msgInNew, msgInLog [][][]float64

	// totalResiduals[v][k] is the residual of the most recently delivered
	// incoming message along v's k-th edge, the bookkeeping the residual
	// loop sums over to derive back-edge priorities.
	totalResiduals [][]float64

	pq      residualPQ
	items   map[edgeKey]*pqItem
	nextSeq int
}

// edgeKey identifies a directed edge by its endpoint and the position of
// the sender within that endpoint's neighbor list, matching the spec's
// (end_id, start_in_end_id) priority-map key.
type edgeKey struct {
	End        int
	StartInEnd int
}
