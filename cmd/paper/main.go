// Binary paper runs the arbitrage loop against a simulated in-memory gateway
// so the pipeline can be exercised without touching a live venue.
package main

import (
	"context"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"balancerarb-go/internal/arb"
	"balancerarb-go/internal/config"
	"balancerarb-go/internal/gateway"
	"balancerarb-go/internal/metrics"
	"balancerarb-go/internal/oracle"
	"balancerarb-go/internal/util"
)

func main() {
	_ = godotenv.Load() // best-effort

	cfg, err := config.Load(getEnv("ARB_CONFIG", "internal/config/config.yaml"))
	if err != nil {
		l := util.NewLogger("info")
		l.Fatal().Err(err).Msg("load config")
	}
	log := util.NewLogger(cfg.App.LogLevel)

	_ = metrics.Serve(cfg.App.MetricsAddr)

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	base, quote, err := cfg.Strategy.Pair()
	if err != nil {
		log.Fatal().Err(err).Msg("parse trading pair")
	}

	// Quote the venue 2% rich against the oracle so the loop has something to do.
	venuePrice := cfg.Oracle.FixedRate.Mul(decimal.NewFromFloat(1.02))
	paper := gateway.NewPaper(venuePrice, map[string]decimal.Decimal{
		base:  decimal.NewFromInt(10),
		quote: decimal.NewFromInt(1000),
	})
	paper.SetPendingPolls(2)

	cycle, err := arb.NewCycle(cfg, oracle.NewFixed(cfg.Oracle.FixedRate), paper, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build cycle")
	}

	interval := time.Duration(cfg.Strategy.TickIntervalMs) * time.Millisecond
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Str("pair", cfg.Strategy.TradingPair).Msg("paper arbitrage loop started")
	for {
		select {
		case <-ctx.Done():
			cycle.Wait()
			log.Info().
				Str(base, paper.Balance(base).String()).
				Str(quote, paper.Balance(quote).String()).
				Msg("final paper balances")
			return
		case <-ticker.C:
			cycle.OnTick(ctx)
		}
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
