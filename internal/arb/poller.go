package arb

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"balancerarb-go/internal/gateway"
	"balancerarb-go/internal/metrics"
)

// SleepFunc suspends for the given duration or until the context is done.
// Injectable so tests can run the poller without real delays.
type SleepFunc func(ctx context.Context, d time.Duration) error

func defaultSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Poller repeatedly queries transaction status until a terminal outcome.
type Poller struct {
	gw       gateway.API
	log      zerolog.Logger
	cooldown time.Duration

	// MaxAttempts bounds the number of status queries; 0 means unbounded.
	MaxAttempts int
	// UnknownAsPending keeps polling on unrecognized status codes instead of
	// abandoning the trade as terminal-unknown.
	UnknownAsPending bool
	// Sleep is the suspension hook between polls.
	Sleep SleepFunc
}

// NewPoller builds a confirmation poller with the given cooldown between polls.
func NewPoller(gw gateway.API, log zerolog.Logger, cooldown time.Duration) *Poller {
	if cooldown <= 0 {
		cooldown = 2 * time.Second
	}
	return &Poller{gw: gw, log: log, cooldown: cooldown, Sleep: defaultSleep}
}

// AwaitConfirmation polls the transaction until it confirms, the status turns
// unrecognized, the attempt budget runs out, or a transport error occurs.
// Transport errors terminate the loop immediately rather than retrying forever
// against a flaky connection.
func (p *Poller) AwaitConfirmation(ctx context.Context, handle TxHandle) (TxStatus, error) {
	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return TxPending, fmt.Errorf("%w: %v", ErrPollingTransport, err)
		}

		attempts++
		metrics.PollAttemptsTotal.Inc()
		p.log.Debug().Str("tx_hash", handle.Hash).Int("attempt", attempts).Msg("polling transaction status")

		resp, err := p.gw.TransactionStatus(ctx, handle.Chain, handle.Network, handle.Hash)
		if err != nil {
			return TxPending, fmt.Errorf("%w: %v", ErrPollingTransport, err)
		}

		switch {
		case resp.TxStatus == gateway.StatusConfirmed:
			p.log.Info().Str("tx_hash", handle.Hash).Int("attempts", attempts).Msg("transaction confirmed")
			return TxConfirmed, nil
		case gateway.PendingStatus(resp.TxStatus):
			p.log.Info().Str("tx_hash", handle.Hash).Int("code", resp.TxStatus).Msg("transaction pending confirmation")
		case p.UnknownAsPending:
			p.log.Warn().Str("tx_hash", handle.Hash).Int("code", resp.TxStatus).Msg("unrecognized status code, still polling")
		default:
			p.log.Warn().Str("tx_hash", handle.Hash).Int("code", resp.TxStatus).Msg("unrecognized status code, abandoning poll")
			return TxUnknown, fmt.Errorf("%w: code %d", ErrUnknownTxStatus, resp.TxStatus)
		}

		if p.MaxAttempts > 0 && attempts >= p.MaxAttempts {
			p.log.Warn().Str("tx_hash", handle.Hash).Int("attempts", attempts).Msg("poll attempt budget exhausted")
			return TxFailed, fmt.Errorf("still pending after %d polls", attempts)
		}
		if err := p.Sleep(ctx, p.cooldown); err != nil {
			return TxPending, fmt.Errorf("%w: %v", ErrPollingTransport, err)
		}
	}
}
