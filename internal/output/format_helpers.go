package output

import "github.com/shopspring/decimal"

// FormatCurrency formats a decimal as USD currency with 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string { return "$" + amount.StringFixed(2) }

// FormatPercent formats a 0..1 fraction as a percentage with 1 decimal.
func FormatPercent(fraction float64) string {
	return decimal.NewFromFloat(fraction * 100).StringFixed(1) + "%"
}
