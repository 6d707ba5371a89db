// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
)

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// IsFinite reports whether a value is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// PercentToDecimal converts a percentage (5.5) into a fraction (0.055).
func PercentToDecimal(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * PercentToDecimal(percentage)
}

// PeriodicRate converts an annual percentage rate into the rate applied each
// period when compounding periodsPerYear times a year.
func PeriodicRate(annualRatePercent float64, periodsPerYear int) float64 {
	if periodsPerYear <= 0 {
		return 0
	}
	return PercentToDecimal(annualRatePercent) / float64(periodsPerYear)
}

// GrowthFactor returns (1+rate)^periods.
func GrowthFactor(rate float64, periods int) float64 {
	return math.Pow(1+rate, float64(periods))
}

// AnnuityFactor returns the future value of a unit payment made at the end of
// each of the given periods, ((1+rate)^n - 1) / rate, degrading to n when the
// rate is zero.
func AnnuityFactor(rate float64, periods int) float64 {
	if rate == 0 {
		return float64(periods)
	}
	return (GrowthFactor(rate, periods) - 1) / rate
}
