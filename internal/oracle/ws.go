package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// WSSource consumes a websocket stream of rate updates and serves the most
// recent one. Until the first update arrives Rate reports ErrUnavailable.
type WSSource struct {
	url string
	log zerolog.Logger

	mu      sync.RWMutex
	rate    decimal.Decimal
	haveOne bool
}

// NewWSSource builds a push-based rate source. Run must be started for Rate to
// ever succeed.
func NewWSSource(url string, log zerolog.Logger) *WSSource {
	return &WSSource{url: url, log: log}
}

// Rate returns the last pushed rate.
func (s *WSSource) Rate(ctx context.Context) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.haveOne {
		return decimal.Decimal{}, fmt.Errorf("%w: no update received yet", ErrUnavailable)
	}
	return s.rate, nil
}

// Run consumes the stream until the context is canceled, reconnecting with
// backoff on transport errors.
func (s *WSSource) Run(ctx context.Context) error {
	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.consume(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Warn().Err(err).Msg("oracle stream disconnected, retrying")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff = time.Duration(math.Min(float64(maxBackoff), float64(backoff)*1.8))
			continue
		}
		return nil
	}
}

func (s *WSSource) consume(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	s.log.Info().Str("url", s.url).Msg("connected oracle rate stream")

	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	conn.SetPongHandler(func(appData string) error {
		return conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	})

	pingCtx, pingCancel := context.WithCancel(ctx)
	defer pingCancel()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					s.log.Warn().Err(err).Msg("oracle stream ping failed")
					return
				}
			case <-pingCtx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var update rateResponse
		if err := json.Unmarshal(message, &update); err != nil {
			s.log.Warn().Err(err).Msg("failed to decode oracle update")
			continue
		}
		if update.Price.Sign() <= 0 {
			s.log.Warn().Str("price", update.Price.String()).Msg("ignoring non-positive oracle update")
			continue
		}

		s.mu.Lock()
		s.rate = update.Price
		s.haveOne = true
		s.mu.Unlock()
	}
}
