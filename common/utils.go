package common

import (
	"cmp"
)

// Coalesce returns the first non-zero value, or the zero value if all are zero.
// Config resolution uses it to layer flag, file and default values.
//
// Parameters:
//   - values: candidates in priority order
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Clamp limits v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to limit
//   - lo: the lower bound
//   - hi: the upper bound, must not be below lo
//
// Returns:
//   - T: lo if v < lo, hi if v > hi, v otherwise
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
