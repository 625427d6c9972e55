package utils

import (
	"github.com/shopspring/decimal"
)

// CurrencySymbol is prefixed to every amount shown to users.
const CurrencySymbol = "₹"

// FormatRupees renders a whole-rupee amount for user-facing text.
// Example: 1234.56 returns "₹1235"
func FormatRupees(amount decimal.Decimal) string {
	return CurrencySymbol + amount.StringFixed(0)
}

// FormatWithPrecision formats an amount with the given precision
// Example: 12.3456 with precision 1 returns "12.3"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
