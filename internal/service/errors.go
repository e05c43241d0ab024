package service

import (
	"errors"
	"fmt"
)

// ErrValidation marks input rejected before it reaches the store
var ErrValidation = errors.New("invalid input")

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// MaxQuantity caps any single quantity so sums across a plan stay finite
const MaxQuantity = 1e9

// ValidQuantity reports whether q is positive and at most MaxQuantity;
// NaN and Inf fail
func ValidQuantity(q float64) bool {
	return q > 0 && q <= MaxQuantity
}
