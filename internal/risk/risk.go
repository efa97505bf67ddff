package risk

import "github.com/shopspring/decimal"

// Limits encodes guard-rails for how much size a single trade may take on.
// A zero MaxNotionalPerTrade disables the check.
type Limits struct {
	MaxNotionalPerTrade decimal.Decimal
}

// Allow reports whether a trade of the given notional may proceed.
func (l Limits) Allow(notional decimal.Decimal) bool {
	if l.MaxNotionalPerTrade.IsZero() {
		return true
	}
	return notional.LessThanOrEqual(l.MaxNotionalPerTrade)
}
