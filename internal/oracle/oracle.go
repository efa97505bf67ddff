// Package oracle hosts reference-rate sources for the arbitrage loop.
//
// Every source reports the rate as quote asset per unit of base asset, the
// same convention the gateway uses for venue quotes.
package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnavailable indicates the reference rate could not be obtained.
var ErrUnavailable = errors.New("oracle unavailable")

// Source supplies the current reference rate for the configured pair.
type Source interface {
	Rate(ctx context.Context) (decimal.Decimal, error)
}

// Fixed is a constant-rate source, the minimal configuration.
type Fixed struct {
	rate decimal.Decimal
}

// NewFixed builds a source that always reports the supplied rate.
func NewFixed(rate decimal.Decimal) *Fixed { return &Fixed{rate: rate} }

// Rate returns the configured constant.
func (f *Fixed) Rate(ctx context.Context) (decimal.Decimal, error) {
	if f.rate.Sign() <= 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: fixed rate not configured", ErrUnavailable)
	}
	return f.rate, nil
}

type rateResponse struct {
	Price decimal.Decimal `json:"price"`
}

// HTTPSource fetches the rate from a JSON endpoint, caching it for a TTL so a
// 1s tick cadence does not hammer the upstream API.
type HTTPSource struct {
	url  string
	ttl  time.Duration
	http *http.Client

	mu        sync.Mutex
	cached    decimal.Decimal
	fetchedAt time.Time
}

// NewHTTPSource builds a TTL-cached HTTP rate source.
func NewHTTPSource(url string, ttl time.Duration) *HTTPSource {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &HTTPSource{
		url:  url,
		ttl:  ttl,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Rate returns the cached rate when fresh, refetching otherwise.
func (s *HTTPSource) Rate(ctx context.Context) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cached.IsZero() && time.Since(s.fetchedAt) < s.ttl {
		return s.cached, nil
	}

	rate, err := s.fetch(ctx)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	s.cached = rate
	s.fetchedAt = time.Now()
	return rate, nil
}

func (s *HTTPSource) fetch(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.url, nil)
	if err != nil {
		return decimal.Decimal{}, err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return decimal.Decimal{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return decimal.Decimal{}, fmt.Errorf("rate endpoint status %d", resp.StatusCode)
	}
	var out rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return decimal.Decimal{}, err
	}
	if out.Price.Sign() <= 0 {
		return decimal.Decimal{}, fmt.Errorf("non-positive rate %s", out.Price)
	}
	return out.Price, nil
}
