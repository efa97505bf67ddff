// Package arb implements the decision-and-settlement pipeline: price
// acquisition, deviation-based direction computation, trade submission, and
// confirmation polling.
package arb

import (
	"github.com/shopspring/decimal"

	"balancerarb-go/internal/gateway"
)

// PriceSample is a single observed price tagged with where it came from.
type PriceSample struct {
	Source string
	Price  decimal.Decimal
}

// TradeParams pins down the venue context of one cycle. Address stays empty
// until a profitable direction has been determined and the wallet registry has
// been consulted; execution refuses to run without it.
type TradeParams struct {
	Chain     string
	Network   string
	Connector string
	Base      string
	Quote     string
	Address   string
}

// Decision is the outcome of the deviation evaluation. A zero Side means no
// profitable trade was found.
type Decision struct {
	Side      gateway.Side
	Deviation decimal.Decimal
}

// Trade reports whether the decision calls for an order.
func (d Decision) Trade() bool { return d.Side != "" }

// TxHandle identifies a submitted trade for confirmation polling.
type TxHandle struct {
	Chain   string
	Network string
	Hash    string
}

// TxStatus is the settlement outcome of a submitted trade.
type TxStatus int

const (
	TxPending TxStatus = iota
	TxConfirmed
	// TxFailed means the trade stayed pending past the polling attempt budget.
	TxFailed
	// TxUnknown means the gateway reported a status code outside the known set.
	TxUnknown
)

func (s TxStatus) String() string {
	switch s {
	case TxPending:
		return "pending"
	case TxConfirmed:
		return "confirmed"
	case TxFailed:
		return "failed"
	case TxUnknown:
		return "unknown"
	}
	return "invalid"
}
