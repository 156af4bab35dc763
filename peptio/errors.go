package peptio

import "errors"

// ErrMalformedRow indicates a CSV row had the wrong column count or an
// unparsable numeric field.
var ErrMalformedRow = errors.New("peptio: malformed row")
