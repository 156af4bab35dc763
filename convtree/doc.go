// Package convtree implements the convolution tree: a balanced binary tree
// that computes, in O(N log^2 N), the exact sum distribution over N
// independent Bernoulli parent variables via FFT-based polynomial
// multiplication, plus the backward message-passing pass that derives the
// per-parent and per-peptide messages a factor-graph factor node needs when
// its parent fan-in is too large to marginalize directly.
//
// Construction builds the tree bottom-up (leaves are the parent marginals,
// internal nodes hold the convolved joint distribution of their subtree),
// then propagates backward top-down, deriving each node's likelihood-below
// from its sibling's joint-above and their shared parent's likelihood-below.
//
// Complexity:
//
//   - Time:   O(N log^2 N), N = number of parents (each of the log N levels
//     does O(N) work via FFT convolution of geometrically shrinking pairs).
//   - Memory: O(N) for the layer arena; FFT scratch is transient per call.
//
// Nodes are addressed by index into a flat per-layer arena rather than
// through owning parent/child pointers, so the tree carries no reference
// cycles and can be copied or discarded without a finalizer.
package convtree
