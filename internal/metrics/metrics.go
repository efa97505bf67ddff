package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "arb_cycles_total", Help: "Arbitrage cycles by outcome"},
		[]string{"outcome"},
	)
	TradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "arb_trades_total", Help: "Trades submitted to the gateway"},
		[]string{"pair", "side"},
	)
	StageFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "arb_stage_failures_total", Help: "Cycle stage failures"},
		[]string{"stage"},
	)
	PollAttemptsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "arb_poll_attempts_total", Help: "Transaction status polls issued"},
	)
)

func init() {
	prometheus.MustRegister(CyclesTotal, TradesTotal, StageFailures, PollAttemptsTotal)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{ Addr: addr, Handler: mux }
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
