package models

import (
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a rental carries no currency.
const DefaultCurrency = "USD"

// AmountTolerance absorbs rounding drift between local and provider amounts.
var AmountTolerance = decimal.New(1, -2)

// RoundAmount rounds to two decimal places, half away from zero.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// AmountsMatch reports whether two amounts are equal within one cent after rounding.
func AmountsMatch(a, b decimal.Decimal) bool {
	return RoundAmount(a).Sub(RoundAmount(b)).Abs().LessThanOrEqual(AmountTolerance)
}

// FormatAmount renders an amount the way payment providers expect it ("12.50").
func FormatAmount(d decimal.Decimal) string {
	return RoundAmount(d).StringFixed(2)
}
