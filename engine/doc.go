// Package engine wires the graph, bp, and peptio packages into the
// belief-propagation entry point: parse a GraphML document, fill priors
// and factors, insert convolution-tree nodes, decompose into connected
// components, run residual belief propagation on every component larger
// than two nodes, and render the combined posterior as CSV.
//
// Errors:
//
//	Returns the graph package's parse sentinels for malformed GraphML
//	input; everything else is deterministic given its inputs.
package engine
