package money

import (
	"github.com/shopspring/decimal"
)

// Zero is the canonical zero amount.
var Zero = decimal.Zero

// FormatINR renders an amount as rupees with two-decimal display formatting.
//
// The fee plan carries a currency column, but every screen of the legacy
// application renders the rupee symbol; conversion is intentionally absent.
func FormatINR(amount decimal.Decimal) string {
	return "₹" + amount.StringFixed(2)
}

// NonNegative reports whether the amount is a finite value >= 0.
func NonNegative(amount decimal.Decimal) bool {
	return !amount.IsNegative()
}
