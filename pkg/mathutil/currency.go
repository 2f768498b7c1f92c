// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/solar-calculator/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Halves round away from zero. Non-finite values are returned unchanged.
func Round(val float64) float64 {
	if !IsFinite(val) {
		return val
	}
	return decimal.NewFromFloat(val).Round(constants.DecimalPlaces).InexactFloat64()
}

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// CeilWhole rounds up to the next whole number. A value within 1e-12 of an
// integer, relative to its magnitude, is taken as that integer so that float
// noise from dividing bill, price and generation never adds a unit. The
// tradeoff is that a real excess below that tolerance is dropped; for a
// capacity of a few kW that is an excess under 1e-11 kW.
func CeilWhole(val float64) float64 {
	nearest := math.Round(val)
	if math.Abs(val-nearest) <= ceilTolerance*math.Max(1, math.Abs(val)) {
		return nearest
	}
	return math.Ceil(val)
}

const ceilTolerance = 1e-12

// Compound returns base grown by rate for the given number of periods.
func Compound(base, rate float64, periods int) float64 {
	return base * math.Pow(1+rate, float64(periods))
}
