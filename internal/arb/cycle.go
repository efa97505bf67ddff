package arb

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"balancerarb-go/internal/config"
	"balancerarb-go/internal/gateway"
	"balancerarb-go/internal/metrics"
	"balancerarb-go/internal/oracle"
	"balancerarb-go/internal/risk"
	"balancerarb-go/internal/wallet"
)

// Cycle orchestrates one arbitrage pass per tick: refresh the oracle rate,
// quote the venue, evaluate the deviation, and when profitable resolve a
// wallet, submit the trade, and poll it to a terminal status. At most one
// cycle is in flight at a time; ticks arriving while one runs are skipped.
type Cycle struct {
	params    TradeParams
	amount    decimal.Decimal
	slippage  decimal.Decimal
	minProfit decimal.Decimal

	src     oracle.Source
	gw      gateway.API
	wallets *wallet.Registry
	limits  risk.Limits
	exec    *Executor
	poller  *Poller
	log     zerolog.Logger

	inFlight atomic.Bool
	wg       sync.WaitGroup
}

// NewCycle wires the pipeline from configuration and collaborators.
func NewCycle(cfg *config.Config, src oracle.Source, gw gateway.API, log zerolog.Logger) (*Cycle, error) {
	connector, chain, network, err := cfg.Strategy.Venue()
	if err != nil {
		return nil, err
	}
	base, quote, err := cfg.Strategy.Pair()
	if err != nil {
		return nil, err
	}
	if cfg.Strategy.OrderAmount.Sign() <= 0 {
		return nil, fmt.Errorf("order_amount must be positive, got %s", cfg.Strategy.OrderAmount)
	}

	poller := NewPoller(gw, log, time.Duration(cfg.Poller.CooldownMs)*time.Millisecond)
	poller.MaxAttempts = cfg.Poller.MaxAttempts
	poller.UnknownAsPending = cfg.Poller.TreatUnknownAsPending

	return &Cycle{
		params: TradeParams{
			Chain:     chain,
			Network:   network,
			Connector: connector,
			Base:      base,
			Quote:     quote,
		},
		amount:    cfg.Strategy.OrderAmount,
		slippage:  cfg.Strategy.SlippageBuffer,
		minProfit: cfg.Strategy.MinProfitability,
		src:       src,
		gw:        gw,
		wallets:   wallet.NewRegistry(cfg.Wallets),
		limits:    risk.Limits{MaxNotionalPerTrade: cfg.Risk.MaxNotionalPerTrade},
		exec:      NewExecutor(gw, log),
		poller:    poller,
		log:       log,
	}, nil
}

// OnTick is the scheduler entry point. It launches one asynchronous cycle,
// unless the previous one has not finished yet, in which case the tick is
// dropped entirely: not queued, not run in parallel. The in-flight guard is
// released only after all of the cycle's work, including polling, completes.
func (c *Cycle) OnTick(ctx context.Context) {
	if !c.inFlight.CompareAndSwap(false, true) {
		c.log.Debug().Msg("previous cycle still in flight, skipping tick")
		metrics.CyclesTotal.WithLabelValues("skipped").Inc()
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer c.inFlight.Store(false)
		c.runOnce(ctx)
	}()
}

// Wait blocks until any in-flight cycle has finished. Used for shutdown.
func (c *Cycle) Wait() { c.wg.Wait() }

func (c *Cycle) runOnce(ctx context.Context) {
	params := c.params // cycle-local copy; Address is resolved below

	rate, err := c.src.Rate(ctx)
	if err != nil {
		c.fail("oracle", err)
		return
	}
	oraclePx := PriceSample{Source: "oracle", Price: rate}
	c.log.Info().Str("rate", rate.String()).Msg("oracle rate refreshed")

	// Reference-size quote, always queried as a buy regardless of the
	// eventual trade direction.
	quoteResp, err := c.gw.GetPrice(ctx, gateway.PriceRequest{
		Chain:     params.Chain,
		Network:   params.Network,
		Connector: params.Connector,
		Base:      params.Base,
		Quote:     params.Quote,
		Amount:    c.amount,
		Side:      gateway.Buy,
	})
	if err != nil {
		c.fail("quote", fmt.Errorf("%w: %v", ErrQuoteUnavailable, err))
		return
	}
	venuePx := PriceSample{Source: params.Connector, Price: quoteResp.Price}
	c.log.Info().Str("price", venuePx.Price.String()).Msg("venue quote fetched")

	decision := Evaluate(oraclePx, venuePx, c.minProfit)
	c.log.Info().
		Str("deviation_pct", decision.Deviation.Mul(decimal.NewFromInt(100)).StringFixed(2)).
		Msg("price deviation evaluated")
	if !decision.Trade() {
		c.log.Info().Msg("no profitable arbitrage opportunity found")
		metrics.CyclesTotal.WithLabelValues("no_trade").Inc()
		return
	}
	c.log.Info().Str("side", string(decision.Side)).Msg("profitable trade detected")

	address, ok := c.wallets.Lookup(params.Chain, params.Connector, params.Network)
	if !ok {
		c.fail("wallet", fmt.Errorf("%w for %s_%s_%s", ErrNoWalletConfigured,
			params.Chain, params.Connector, params.Network))
		return
	}
	params.Address = address

	if err := c.reportBalances(ctx, params, "pre-trade"); err != nil {
		c.fail("balances", err)
		return
	}

	notional := c.amount.Mul(venuePx.Price)
	if !c.limits.Allow(notional) {
		c.log.Warn().Str("notional", notional.String()).Msg("trade blocked by notional limit")
		metrics.CyclesTotal.WithLabelValues("blocked").Inc()
		return
	}

	limit := LimitPrice(venuePx.Price, decision.Side, c.slippage)
	handle, err := c.exec.Execute(ctx, params, decision.Side, c.amount, limit)
	if err != nil {
		c.fail("execute", err)
		return
	}

	status, err := c.poller.AwaitConfirmation(ctx, handle)
	if err != nil {
		c.fail("poll", err)
		return
	}
	c.log.Info().Str("tx_hash", handle.Hash).Str("status", status.String()).Msg("trade settled")

	if err := c.reportBalances(ctx, params, "post-trade"); err != nil {
		c.fail("balances", err)
		return
	}

	metrics.CyclesTotal.WithLabelValues("traded").Inc()
}

func (c *Cycle) reportBalances(ctx context.Context, params TradeParams, stage string) error {
	resp, err := c.gw.Balances(ctx, params.Chain, params.Network, params.Address,
		[]string{params.Base, params.Quote})
	if err != nil {
		return fmt.Errorf("fetch %s balances: %w", stage, err)
	}
	event := c.log.Info().Str("address", params.Address)
	for asset, amount := range resp.Balances {
		event = event.Str(asset, amount.String())
	}
	event.Msg(stage + " balances")
	return nil
}

// fail records a stage failure and ends the cycle. Errors never escape to the
// scheduler; the next tick proceeds regardless.
func (c *Cycle) fail(stage string, err error) {
	c.log.Error().Err(err).Str("stage", stage).Msg("cycle aborted")
	metrics.StageFailures.WithLabelValues(stage).Inc()
	metrics.CyclesTotal.WithLabelValues("error").Inc()
}
