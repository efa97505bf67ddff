package arb

import (
	"github.com/shopspring/decimal"

	"balancerarb-go/internal/gateway"
)

// Deviation computes the relative difference between venue and oracle prices,
// (venue - oracle) / oracle. Both inputs must share the quote-per-base
// convention.
func Deviation(oracle, venue decimal.Decimal) decimal.Decimal {
	return venue.Sub(oracle).Div(oracle)
}

// Evaluate maps the price deviation to a trade direction. A deviation inside
// the profitability threshold yields no trade; a venue price above the oracle
// means the base asset is rich on the venue, so sell it there; below means it
// is cheap, so buy.
func Evaluate(oracle, venue PriceSample, minProfitability decimal.Decimal) Decision {
	deviation := Deviation(oracle.Price, venue.Price)
	if deviation.Abs().LessThanOrEqual(minProfitability) {
		return Decision{Deviation: deviation}
	}
	side := gateway.Buy
	if deviation.Sign() > 0 {
		side = gateway.Sell
	}
	return Decision{Side: side, Deviation: deviation}
}

// LimitPrice shades the venue price by the slippage buffer in the
// adverse-tolerant direction: up for buys, down for sells.
func LimitPrice(venue decimal.Decimal, side gateway.Side, slippage decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if side == gateway.Buy {
		return venue.Mul(one.Add(slippage))
	}
	return venue.Mul(one.Sub(slippage))
}
