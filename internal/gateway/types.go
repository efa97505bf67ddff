package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// Side enumerates order directions accepted by the gateway.
type Side string

const (
	// Buy indicates buying the base asset on the venue.
	Buy Side = "BUY"
	// Sell indicates selling the base asset on the venue.
	Sell Side = "SELL"
)

// Transaction status codes as reported by the gateway.
const (
	StatusConfirmed       = 1
	StatusPendingUnsigned = -1
	StatusPendingMempool  = 0
	StatusPendingMined    = 2
)

// PendingStatus reports whether a gateway status code still awaits finality.
func PendingStatus(code int) bool {
	switch code {
	case StatusPendingUnsigned, StatusPendingMempool, StatusPendingMined:
		return true
	}
	return false
}

// PriceRequest identifies a quote lookup for a given trade size and direction.
type PriceRequest struct {
	Chain     string
	Network   string
	Connector string
	Base      string
	Quote     string
	Amount    decimal.Decimal
	Side      Side
}

// PriceResponse is the parsed body of a gateway price quote.
type PriceResponse struct {
	Price decimal.Decimal `json:"price"`
}

// TradeRequest carries everything the gateway needs to submit an AMM swap.
type TradeRequest struct {
	Chain      string          `json:"chain"`
	Network    string          `json:"network"`
	Connector  string          `json:"connector"`
	Address    string          `json:"address"`
	Base       string          `json:"base"`
	Quote      string          `json:"quote"`
	Side       Side            `json:"side"`
	Amount     decimal.Decimal `json:"amount"`
	LimitPrice decimal.Decimal `json:"limitPrice"`
}

// TradeResponse is the parsed body of a trade submission.
type TradeResponse struct {
	TxHash string `json:"txHash"`
}

// StatusResponse is the parsed body of a transaction status poll.
type StatusResponse struct {
	TxStatus int `json:"txStatus"`
}

// BalancesResponse is the parsed body of a balances lookup.
type BalancesResponse struct {
	Balances map[string]decimal.Decimal `json:"balances"`
}

// API is the gateway surface the arbitrage core consumes.
type API interface {
	GetPrice(ctx context.Context, req PriceRequest) (PriceResponse, error)
	AmmTrade(ctx context.Context, req TradeRequest) (TradeResponse, error)
	TransactionStatus(ctx context.Context, chain, network, txHash string) (StatusResponse, error)
	Balances(ctx context.Context, chain, network, address string, assets []string) (BalancesResponse, error)
}
