// Package money provides small helpers for working with decimal monetary
// amounts. All engine balances and cash flows are shopspring decimals; these
// helpers cover the recurring comparison operations.
package money

import (
	"github.com/shopspring/decimal"
)

// Min returns the smaller of two amounts.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// ClampNonNegative floors an amount at zero.
func ClampNonNegative(a decimal.Decimal) decimal.Decimal {
	if a.IsNegative() {
		return decimal.Zero
	}
	return a
}
