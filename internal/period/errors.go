package period

import "errors"

// ErrInvalidParameter indicates a modulus, base or measurement outside the
// domain of period extraction.
var ErrInvalidParameter = errors.New("period: invalid parameter")
