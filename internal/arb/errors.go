package arb

import "errors"

// Stage-level failure sentinels. The cycle catches every one of these at its
// boundary; none of them ever escape to the scheduler.
var (
	ErrQuoteUnavailable   = errors.New("venue quote unavailable")
	ErrNoWalletConfigured = errors.New("no wallet configured")
	ErrExecutionRejected  = errors.New("execution rejected by venue")
	ErrPollingTransport   = errors.New("transport error while polling")
	ErrUnknownTxStatus    = errors.New("unknown transaction status")
)
