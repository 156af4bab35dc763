// Package graph implements the factor graph used for taxonomic inference:
// parsing a GraphML description into typed nodes (taxon, peptide, factor),
// filling taxon priors and factor noisy-OR conditional probability tables,
// inserting convolution-tree nodes in place of high-degree factor
// neighborhoods, and decomposing the result into independently solvable
// connected components.
//
// Node identity is a tagged union dispatched by Kind rather than an
// interface per node subtype: every consumer (belief propagation, CSV
// output) switches on Kind instead of type-asserting.
//
// Complexity:
//
//   - ParseGraphML: O(V+E) in the document size.
//   - FillFactors:  O(sum of (parent count + 1)) over all factor nodes.
//   - AddCTNodes:   O(V+E).
//   - Components:   O(V+E) via depth-first search.
//
// Errors:
//
//	ErrUnknownNodeCategory - a GraphML node's d2 value is not
//	                         peptide/factor/taxon.
//	ErrMissingNodeData     - a required data key is absent for a node's
//	                         category.
//	ErrUnknownNodeID       - an edge references a node id not declared
//	                         by any <node> element.
package graph
