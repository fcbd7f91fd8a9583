// Package decimal wraps shopspring/decimal with the helpers the validation
// engine needs: fixed-precision arithmetic and tolerance comparison.
package decimal

import (
	"github.com/shopspring/decimal"

	"github.com/rezonia/saft-validator/internal/model"
)

// Round rounds to the engine's calculation precision
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(model.CalcPrecision)
}

// Mul multiplies two decimals at calculation precision
func Mul(a, b decimal.Decimal) decimal.Decimal {
	return Round(a.Mul(b))
}

// WithinDelta reports whether |a-b| <= delta. Every monetary tolerance
// check in the validators goes through here.
func WithinDelta(a, b, delta decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(delta)
}

// FormatAmount renders d with exactly two decimal places, the form required
// inside the signature message and in reports.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// IsZero reports whether the pointed-to decimal is absent or zero.
func IsZero(d *decimal.Decimal) bool {
	return d == nil || d.IsZero()
}
