package convtree

import "errors"

// Sentinel errors for the convtree package, meant to be tested with
// errors.Is rather than matched on their message text.
var (
	// ErrNoParents indicates NewConvolutionTree was called with zero parent
	// distributions; a convolution tree needs at least one leaf.
	ErrNoParents = errors.New("convtree: at least one parent distribution required")

	// ErrSharedLikelihoodLength indicates the supplied shared-likelihood
	// vector's length does not equal len(parents)+1, as required by the
	// "sum distribution over N parents has N+1 possible counts" invariant.
	ErrSharedLikelihoodLength = errors.New("convtree: shared likelihood length must equal len(parents)+1")

	// ErrLikelihoodBelowUnset is an internal invariant violation: a node's
	// likelihood-below was read before the backward pass reached it.
	ErrLikelihoodBelowUnset = errors.New("convtree: likelihood_below read before backward pass set it")
)

// ctNode is one node of the convolution tree's layer arena. Nodes live in
// flat per-layer slices rather than behind owning parent/child pointers;
// the backward pass addresses a node's two children by index (2*i, 2*i+1)
// into the layer below.
type ctNode struct {
	// jointAbove is the (normalized) sum distribution of present parents in
	// this node's subtree: jointAbove[k] = P(exactly k parents present).
	jointAbove []float64

	// likelihoodBelow is set by the backward pass (root is seeded from the
	// externally supplied shared-likelihood vector); nil until then.
	likelihoodBelow []float64
}

// ConvolutionTree is a balanced FFT-convolution tree over a fixed set of
// parent Bernoulli marginals and a shared-likelihood vector over their
// count. It is built once per bp computeOutMessagesCTTree call and is
// immutable after construction.
type ConvolutionTree struct {
	allLayers []ctNode // layer boundaries below
	starts    []int    // starts[l] is the index of layer l's first node in allLayers
	lengths   []int    // lengths[l] is the number of nodes in layer l
	logLength int       // number of layers above the leaves = log2(next-pow2(nParents))
	nParents  int       // original (unpadded) parent count
}
