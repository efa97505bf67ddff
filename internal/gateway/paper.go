package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Paper is an in-memory gateway used by the dry-run binary and tests. It quotes
// a configurable venue price, fills trades against virtual balances, and
// reports each transaction as pending for a configurable number of polls
// before confirming it.
type Paper struct {
	mu           sync.Mutex
	price        decimal.Decimal
	balances     map[string]decimal.Decimal
	pendingPolls int
	rejectTrades bool
	statusCode   int // overrides the confirmed code when nonzero

	nextTx    int
	txPending map[string]int
}

// NewPaper constructs a simulated gateway quoting the given venue price.
func NewPaper(price decimal.Decimal, balances map[string]decimal.Decimal) *Paper {
	bal := make(map[string]decimal.Decimal, len(balances))
	for k, v := range balances {
		bal[k] = v
	}
	return &Paper{
		price:     price,
		balances:  bal,
		txPending: make(map[string]int),
	}
}

// SetPrice replaces the quoted venue price.
func (p *Paper) SetPrice(price decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.price = price
}

// SetPendingPolls makes each submitted trade report pending that many times before confirming.
func (p *Paper) SetPendingPolls(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pendingPolls = n
}

// RejectTrades makes every subsequent AmmTrade call fail like a venue rejection.
func (p *Paper) RejectTrades(reject bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rejectTrades = reject
}

// SetTerminalStatus overrides the code reported once a transaction leaves pending.
func (p *Paper) SetTerminalStatus(code int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statusCode = code
}

// GetPrice returns the configured venue price regardless of size or side.
func (p *Paper) GetPrice(ctx context.Context, req PriceRequest) (PriceResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PriceResponse{Price: p.price}, nil
}

// AmmTrade fills the order against virtual balances and issues a synthetic tx hash.
func (p *Paper) AmmTrade(ctx context.Context, req TradeRequest) (TradeResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rejectTrades {
		return TradeResponse{}, fmt.Errorf("paper gateway: trade rejected")
	}

	notional := req.Amount.Mul(p.price)
	switch req.Side {
	case Buy:
		p.balances[req.Base] = p.balances[req.Base].Add(req.Amount)
		p.balances[req.Quote] = p.balances[req.Quote].Sub(notional)
	case Sell:
		p.balances[req.Base] = p.balances[req.Base].Sub(req.Amount)
		p.balances[req.Quote] = p.balances[req.Quote].Add(notional)
	default:
		return TradeResponse{}, fmt.Errorf("paper gateway: unknown side %q", req.Side)
	}

	p.nextTx++
	hash := fmt.Sprintf("0xpaper%06d", p.nextTx)
	p.txPending[hash] = p.pendingPolls
	return TradeResponse{TxHash: hash}, nil
}

// TransactionStatus counts down the configured pending polls, then reports the terminal code.
func (p *Paper) TransactionStatus(ctx context.Context, chain, network, txHash string) (StatusResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	remaining, ok := p.txPending[txHash]
	if !ok {
		return StatusResponse{}, fmt.Errorf("paper gateway: unknown txHash %s", txHash)
	}
	if remaining > 0 {
		p.txPending[txHash] = remaining - 1
		return StatusResponse{TxStatus: StatusPendingMempool}, nil
	}
	if p.statusCode != 0 {
		return StatusResponse{TxStatus: p.statusCode}, nil
	}
	return StatusResponse{TxStatus: StatusConfirmed}, nil
}

// Balances returns the requested subset of virtual balances.
func (p *Paper) Balances(ctx context.Context, chain, network, address string, assets []string) (BalancesResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]decimal.Decimal, len(assets))
	for _, asset := range assets {
		out[asset] = p.balances[asset]
	}
	return BalancesResponse{Balances: out}, nil
}

// Balance reports a single virtual balance, for assertions in tests.
func (p *Paper) Balance(asset string) decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.balances[asset]
}
