package common

import "cmp"

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
// Used to fill sampler and texture staging defaults.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
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

// Clamp clamps v into [lo, hi]. lo must not exceed hi.
//
// Parameters:
//   - v: the value to clamp
//   - lo: the inclusive lower bound
//   - hi: the inclusive upper bound
//
// Returns:
//   - T: the clamped value
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
