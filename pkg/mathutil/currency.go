// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/hotel-forecast/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
// Values too large to scale are already whole and returned unchanged.
func Round(val float64) float64 {
	scaled := val * constants.DecimalPrecision
	if math.IsInf(scaled, 0) {
		return val
	}
	return math.Round(scaled) / constants.DecimalPrecision
}

// RoundHalfUp rounds to the nearest integer with halves going towards
// positive infinity, so 2.5 becomes 3 and -2.5 becomes -2.
func RoundHalfUp(val float64) float64 {
	return math.Floor(val + 0.5)
}

// IsNegative checks if a value is negative (less than negative tolerance)
func IsNegative(val float64) bool {
	return val < -constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Finite replaces NaN and infinities with zero.
func Finite(val float64) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0
	}
	return val
}

// NonNegative replaces negative and non-finite values with zero.
func NonNegative(val float64) float64 {
	val = Finite(val)
	if val < 0 {
		return 0
	}
	return val
}

// SafeDivide divides numerator by denominator, returning 0 when the
// denominator is not strictly positive.
func SafeDivide(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}

// CalculatePercentage calculates what percentage value is of total, 0 when
// total is not strictly positive.
func CalculatePercentage(value, total float64) float64 {
	return SafeDivide(value, total) * constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}
