package convtree

import (
	"math/bits"

	"github.com/compomics/peptonizer-go/internal/arrmath"
)

// NewConvolutionTree builds a ConvolutionTree over the given parent
// Bernoulli marginals (each a length-2 [P(absent), P(present)] vector) and
// the shared-likelihood vector over their count (length len(parents)+1).
//
// Construction is three passes:
//  1. layer 0: one normalized node per parent, padded with degenerate
//     [1,0] nodes so the layer length is the next power of two.
//  2. upward pass: each higher node's joint-above is the normalized
//     FFT-convolution of its two children's joint-above distributions.
//  3. downward pass: the root's likelihood-below is seeded from the
//     supplied shared-likelihood vector, then propagated down to the
//     leaves via messageUp.
//
// Complexity: O(N log^2 N) time, O(N) space (N = len(parents)).
func NewConvolutionTree(sharedLikelihood []float64, parents [][]float64) (*ConvolutionTree, error) {
	if len(parents) == 0 {
		return nil, ErrNoParents
	}
	n := len(parents)
	if len(sharedLikelihood) != n+1 {
		return nil, ErrSharedLikelihoodLength
	}

	layerLen := nextPow2(n)
	logLength := bits.Len(uint(layerLen)) - 1 // layerLen is a power of two

	starts := make([]int, logLength+1)
	lengths := make([]int, logLength+1)
	total := 0
	l := layerLen
	for lvl := 0; lvl <= logLength; lvl++ {
		starts[lvl] = total
		lengths[lvl] = l
		total += l
		l /= 2
	}

	arena := make([]ctNode, total)
	for i, p := range parents {
		arena[i] = ctNode{jointAbove: arrmath.Normalize(arrmath.Clone(p))}
	}
	for i := n; i < layerLen; i++ {
		arena[i] = ctNode{jointAbove: []float64{1, 0}}
	}

	for lvl := 1; lvl <= logLength; lvl++ {
		prevStart := starts[lvl-1]
		curStart := starts[lvl]
		for i := 0; i < lengths[lvl]; i++ {
			left := arena[prevStart+2*i]
			right := arena[prevStart+2*i+1]
			joint := fftConvolve(left.jointAbove, right.jointAbove)
			arena[curStart+i] = ctNode{jointAbove: arrmath.Normalize(joint)}
		}
	}

	rootIdx := starts[logLength]
	arena[rootIdx].likelihoodBelow = arrmath.Normalize(arrmath.Clone(sharedLikelihood))

	tree := &ConvolutionTree{
		allLayers: arena,
		starts:    starts,
		lengths:   lengths,
		logLength: logLength,
		nParents:  n,
	}
	tree.propagateBackward()

	return tree, nil
}

// propagateBackward walks layers from the root down to the leaves,
// deriving each child's likelihood-below from its sibling's joint-above
// and their parent's likelihood-below.
func (t *ConvolutionTree) propagateBackward() {
	for lvl := t.logLength; lvl >= 1; lvl-- {
		prevStart := t.starts[lvl-1]
		curStart := t.starts[lvl]
		for i := 0; i < t.lengths[lvl]; i++ {
			node := t.allLayers[curStart+i]
			leftIdx := prevStart + 2*i
			rightIdx := prevStart + 2*i + 1
			left := t.allLayers[leftIdx]
			right := t.allLayers[rightIdx]

			t.allLayers[leftIdx].likelihoodBelow = messageUp(len(left.jointAbove), right.jointAbove, node.likelihoodBelow)
			t.allLayers[rightIdx].likelihoodBelow = messageUp(len(right.jointAbove), left.jointAbove, node.likelihoodBelow)
		}
	}
}

// messageUp computes the upward message a node sends to one child, given
// the *other* child's joint-above distribution and the parent's
// likelihood-below: FFT-convolve reverse(otherJoint) with likelihoodBelow,
// slice out the answerSize-long window starting at len(otherJoint)-1, and
// normalize.
func messageUp(answerSize int, otherJoint, likelihoodBelow []float64) []float64 {
	reversed := make([]float64, len(otherJoint))
	for i, v := range otherJoint {
		reversed[len(otherJoint)-1-i] = v
	}

	convolved := fftConvolve(reversed, likelihoodBelow)
	start := len(otherJoint) - 1
	result := arrmath.Clone(convolved[start : start+answerSize])

	return arrmath.Normalize(result)
}

// MessageToVariable returns the message the tree sends back to the
// parentIdx-th parent: that leaf's likelihood-below, as set by the
// backward pass.
func (t *ConvolutionTree) MessageToVariable(parentIdx int) []float64 {
	return arrmath.Clone(t.allLayers[parentIdx].likelihoodBelow)
}

// MessageToSharedLikelihood returns the message the tree sends back to the
// peptides sharing its likelihood vector: the root's joint-above
// distribution, truncated to the N+1 possible parent-present counts.
func (t *ConvolutionTree) MessageToSharedLikelihood() []float64 {
	root := t.allLayers[t.starts[t.logLength]]
	return arrmath.Clone(root.jointAbove[:t.nParents+1])
}

// NumParents returns the (unpadded) number of parent distributions the
// tree was built over.
func (t *ConvolutionTree) NumParents() int {
	return t.nParents
}
