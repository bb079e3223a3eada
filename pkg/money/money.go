// Package money holds the small set of exact-decimal helpers shared by the
// state machines. All prices and totals in the module are decimal values;
// float64 never touches a currency amount.
package money

import "github.com/shopspring/decimal"

// Zero is the canonical zero amount.
func Zero() decimal.Decimal {
	return decimal.Zero
}

// Sum adds the given amounts exactly.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total
}

// NonNegative reports whether the amount is zero or positive.
func NonNegative(amount decimal.Decimal) bool {
	return !amount.IsNegative()
}

// Equal compares two amounts by value, ignoring exponent representation.
func Equal(a, b decimal.Decimal) bool {
	return a.Equal(b)
}

// MustParse converts a literal into an amount and panics on bad input.
// Intended for seeds and tests only.
func MustParse(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}
