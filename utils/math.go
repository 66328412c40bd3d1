package utils

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// ReduceRange shifts value by whole multiples of (upper - lower) until it lies in [lower, upper).
// Values already in range are returned untouched.
func ReduceRange(value, lower, upper float64) float64 {
	if value >= lower && value < upper {
		return value
	}
	span := upper - lower
	reduced := lower + math.Mod(value-lower, span)
	if reduced < lower {
		reduced += span
	}
	// rounding of the addition above can land exactly on the upper bound
	if reduced >= upper {
		reduced -= span
	}
	return reduced
}

// Clamp limits value to [lower, upper].
func Clamp(value, lower, upper float64) float64 {
	return math.Max(lower, math.Min(value, upper))
}

// Float64AlmostEqual reports whether a and b differ by no more than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return scalar.EqualWithinAbs(a, b, epsilon)
}

// NegativeZeroToZero returns +0 for either signed zero and v otherwise.
func NegativeZeroToZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
