package arb

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"balancerarb-go/internal/gateway"
	"balancerarb-go/internal/metrics"
)

// Executor submits bounded-slippage orders through the gateway. Submission is
// never retried: a rejected trade is surfaced, since re-submission risks
// duplicate execution.
type Executor struct {
	gw  gateway.API
	log zerolog.Logger
}

// NewExecutor wraps a gateway client and logger for trade submission.
func NewExecutor(gw gateway.API, log zerolog.Logger) *Executor {
	return &Executor{gw: gw, log: log}
}

// Execute submits the order at the given limit price and returns a handle for
// confirmation polling. params.Address must already be resolved.
func (e *Executor) Execute(ctx context.Context, params TradeParams, side gateway.Side, amount, limitPrice decimal.Decimal) (TxHandle, error) {
	if params.Address == "" {
		return TxHandle{}, ErrNoWalletConfigured
	}

	e.log.Info().
		Str("connector", params.Connector).
		Str("base", params.Base).
		Str("quote", params.Quote).
		Str("side", string(side)).
		Str("amount", amount.String()).
		Str("limit_price", limitPrice.String()).
		Msg("submitting trade")

	resp, err := e.gw.AmmTrade(ctx, gateway.TradeRequest{
		Chain:      params.Chain,
		Network:    params.Network,
		Connector:  params.Connector,
		Address:    params.Address,
		Base:       params.Base,
		Quote:      params.Quote,
		Side:       side,
		Amount:     amount,
		LimitPrice: limitPrice,
	})
	if err != nil {
		return TxHandle{}, fmt.Errorf("%w: %v", ErrExecutionRejected, err)
	}

	metrics.TradesTotal.WithLabelValues(params.Base+"-"+params.Quote, string(side)).Inc()
	e.log.Info().Str("tx_hash", resp.TxHash).Msg("trade submitted")
	return TxHandle{Chain: params.Chain, Network: params.Network, Hash: resp.TxHash}, nil
}
