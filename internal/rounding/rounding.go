// Package rounding holds the decimal-exact rounding rules used by the costing engine.
package rounding

import (
	"math"

	"github.com/shopspring/decimal"
)

// CommercialStep is the currency step prices are rounded up to.
const CommercialStep = 100

// IsFinite reports whether value is neither NaN nor an infinity.
func IsFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// Finite returns value, or 0 when value is NaN or infinite.
func Finite(value float64) float64 {
	if !IsFinite(value) {
		return 0
	}
	return value
}

// Decimal converts a float into a decimal. Non-finite values become zero.
func Decimal(value float64) decimal.Decimal {
	if !IsFinite(value) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(value)
}

// Round rounds value half away from zero to the given number of decimal places.
// NaN and infinities round to 0.
func Round(value float64, places int32) float64 {
	if !IsFinite(value) {
		return 0
	}
	return Finite(decimal.NewFromFloat(value).Round(places).InexactFloat64())
}

// CeilCommercial rounds value up to the next multiple of CommercialStep.
// Values already on a multiple are returned unchanged.
func CeilCommercial(value decimal.Decimal) decimal.Decimal {
	step := decimal.NewFromInt(CommercialStep)
	return value.Div(step).Ceil().Mul(step)
}

// Float converts a decimal into the float64 exposed to callers. Values outside
// the float64 range become 0.
func Float(value decimal.Decimal) float64 {
	return Finite(value.InexactFloat64())
}
