// Package peptonizer is the root of a metaproteomics taxonomic inference
// engine: it turns a set of peptide-spectrum matches against ambiguous
// taxon assignments into a posterior confidence per candidate taxon.
//
// The pipeline, front to back:
//
//	taxonomy/  — resolves NCBI taxon ids to a fixed lineage rank via Unipept
//	weighing/  — degeneracy-aware weighted sampling and taxon aggregation
//	graph/     — the factor-graph data model: nodes, edges, GraphML I/O,
//	             convolution-tree insertion, connected-component splitting
//	bp/        — residual (zero-look-ahead) belief propagation
//	peptio/    — CSV input/output for every stage above
//	config/    — engine tunables loaded from defaults, YAML, and environment
//	engine/    — wires the above into a single parse-to-posterior run
//
// cmd/peptonize is a runnable demonstration of the engine package; this
// module is a library, not a command-line tool.
//
// This package itself holds no executable code — it exists to document
// the module as a whole. Import the subpackage for the concern you need.
package peptonizer
