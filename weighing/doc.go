// Package weighing implements the degeneracy-aware taxa weighing
// preprocessor: normalize each PSM record's taxa to a target rank, draw a
// degeneracy-weighted distinct sample, project a degeneracy weight
// (psm count / |taxa|^3), aggregate per taxon, and select the taxa to
// report.
//
// Complexity:
//
//   - Perform: O(R) taxonomy lookups (R distinct records) plus
//     O(n log n) for the sample draw and taxon sort, where n is the
//     sample size.
//
// Errors:
//
//	ErrMissingScore    - a sampled sequence has no entry in the score map.
//	ErrMissingPSMCount - a sampled sequence has no entry in the PSM map.
package weighing
