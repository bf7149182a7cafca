package pricing

import "errors"

// ErrInvalidConfig is returned when the supplier's margin, commission or
// tax configuration makes the price equation unsolvable, for example a
// commission rate of 100% or more, or a non-positive denominator in the
// fixed-point solution.
var ErrInvalidConfig = errors.New("invalid pricing configuration")
