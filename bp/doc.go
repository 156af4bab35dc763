// Package bp implements residual (zero-look-ahead) belief propagation
// over a graph.CTFactorGraph component: a priority-driven asynchronous
// message-passing scheduler that runs five synchronous warm-up sweeps,
// then repeatedly consumes the directed edge with the largest
// infinity-norm log residual until every residual drops at or below a
// convergence tolerance or a step cap is reached.
//
// Message update rules dispatch on the sending node's Kind: variable
// nodes (taxon/peptide) combine incoming log-messages with the node's
// own belief; factor nodes combine incoming messages with their noisy-OR
// CPD, branching on whether the far endpoint is a convolution tree;
// convolution-tree nodes rebuild a convtree.ConvolutionTree from their
// taxon parent marginals and the shared-likelihood message of their one
// factor neighbor, and redistribute its messages to every neighbor in one
// step.
//
// Complexity:
//
//   - Warm-up: O(V+E) per sweep, five sweeps.
//   - Residual loop: O(log E) per heap operation, one or more operations
//     per consumed edge, up to max_iter steps.
//
// Errors: none are raised by this package during the residual loop;
// non-convergence (max_iter reached with max residual > tol) is logged
// via zerolog and the current beliefs are returned regardless, per the
// engine's error-handling policy (non-convergence is reported, not
// fatal).
package bp
