// Package taxonomy resolves NCBI taxon ids to the lineage id at a fixed
// target rank via the Unipept taxonomy service, deduplicating requests
// against a process-local cache.
//
// Complexity:
//
//   - ResolveToRank: O(U) HTTP batches where U is the number of distinct
//     not-yet-cached input ids, plus O(len(taxa)) for the lookup pass.
//
// Errors:
//
//	ErrLookupFailed - the service returned a non-success response for a
//	                   batch, or a response row was missing taxon_id.
package taxonomy
