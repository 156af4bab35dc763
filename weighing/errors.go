package weighing

import "errors"

// ErrMissingScore indicates a sampled record's sequence has no entry in
// the score map.
var ErrMissingScore = errors.New("weighing: sequence missing from score map")

// ErrMissingPSMCount indicates a sampled record's sequence has no entry
// in the PSM-count map.
var ErrMissingPSMCount = errors.New("weighing: sequence missing from psm count map")
