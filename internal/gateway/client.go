// Package gateway is a typed HTTP client for the execution gateway that quotes
// venue prices, submits AMM trades, and answers chain status queries.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks JSON over HTTP to a gateway instance.
type Client struct {
	Base string
	Http *http.Client
}

// NewClient builds a client for the given base URL. A zero timeout falls back to 8s.
func NewClient(base string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		Base: strings.TrimSuffix(base, "/"),
		Http: &http.Client{Timeout: timeout},
	}
}

// GetPrice fetches the venue price for the requested size and direction.
func (c *Client) GetPrice(ctx context.Context, req PriceRequest) (PriceResponse, error) {
	q := url.Values{}
	q.Set("chain", req.Chain)
	q.Set("network", req.Network)
	q.Set("connector", req.Connector)
	q.Set("base", req.Base)
	q.Set("quote", req.Quote)
	q.Set("amount", req.Amount.String())
	q.Set("side", string(req.Side))
	u := c.Base + "/amm/price?" + q.Encode()

	var out PriceResponse
	if err := c.getJSON(ctx, u, &out); err != nil {
		return PriceResponse{}, err
	}
	return out, nil
}

// AmmTrade submits a bounded-slippage swap and returns the gateway's tx hash.
func (c *Client) AmmTrade(ctx context.Context, req TradeRequest) (TradeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return TradeResponse{}, fmt.Errorf("encode trade: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.Base+"/amm/trade", bytes.NewReader(body))
	if err != nil {
		return TradeResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.Http.Do(httpReq)
	if err != nil {
		return TradeResponse{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return TradeResponse{}, fmt.Errorf("gateway trade status %d", resp.StatusCode)
	}
	var out TradeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return TradeResponse{}, err
	}
	if out.TxHash == "" {
		return TradeResponse{}, fmt.Errorf("gateway trade response missing txHash")
	}
	return out, nil
}

// TransactionStatus polls the chain status of a previously submitted trade.
func (c *Client) TransactionStatus(ctx context.Context, chain, network, txHash string) (StatusResponse, error) {
	q := url.Values{}
	q.Set("chain", chain)
	q.Set("network", network)
	q.Set("txHash", txHash)
	u := c.Base + "/chain/poll?" + q.Encode()

	var out StatusResponse
	if err := c.getJSON(ctx, u, &out); err != nil {
		return StatusResponse{}, err
	}
	return out, nil
}

// Balances fetches wallet balances for the supplied asset symbols.
func (c *Client) Balances(ctx context.Context, chain, network, address string, assets []string) (BalancesResponse, error) {
	q := url.Values{}
	q.Set("chain", chain)
	q.Set("network", network)
	q.Set("address", address)
	q.Set("tokenSymbols", strings.Join(assets, ","))
	u := c.Base + "/chain/balances?" + q.Encode()

	var out BalancesResponse
	if err := c.getJSON(ctx, u, &out); err != nil {
		return BalancesResponse{}, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return err
	}
	resp, err := c.Http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("gateway status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
