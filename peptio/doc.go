// Package peptio handles the engine's CSV boundaries: the belief CSV
// produced by a belief-propagation run, the two weighing-preprocessor
// output tables, and re-parsing a posterior CSV back into a taxon score
// map.
//
// Errors:
//
//	ErrMalformedRow - a CSV row has the wrong column count or an
//	                  unparsable numeric field.
package peptio
