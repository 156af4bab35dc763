package taxonomy

import "errors"

// ErrLookupFailed indicates the taxonomy service returned a non-success
// response for a batch, or a response row carried no taxon_id.
var ErrLookupFailed = errors.New("taxonomy: lookup failed")

// ErrUnknownRank indicates a requested target rank is not one of the
// fixed NCBIRanks.
var ErrUnknownRank = errors.New("taxonomy: unknown rank")
