package main

import (
	"context"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

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
	log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var src oracle.Source
	switch cfg.Oracle.Mode {
	case "http":
		src = oracle.NewHTTPSource(cfg.Oracle.URL, time.Duration(cfg.Oracle.TTLMs)*time.Millisecond)
	case "ws":
		ws := oracle.NewWSSource(cfg.Oracle.WSURL, log)
		go func() {
			if err := ws.Run(ctx); err != nil {
				log.Error().Err(err).Msg("oracle stream stopped")
				cancel()
			}
		}()
		src = ws
	default:
		src = oracle.NewFixed(cfg.Oracle.FixedRate)
	}

	gw := gateway.NewClient(cfg.Gateway.BaseURL, time.Duration(cfg.Gateway.TimeoutMs)*time.Millisecond)
	cycle, err := arb.NewCycle(cfg, src, gw, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build cycle")
	}

	interval := time.Duration(cfg.Strategy.TickIntervalMs) * time.Millisecond
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().
		Str("pair", cfg.Strategy.TradingPair).
		Str("venue", cfg.Strategy.ConnectorChainNetwork).
		Msg("arbitrage loop started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("shutting down, waiting for in-flight cycle")
			cycle.Wait()
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
