// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string `yaml:"name"`
	Env         string `yaml:"env"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Gateway describes how to reach the execution gateway that quotes, trades, and polls for us.
type Gateway struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// Oracle selects and parameterizes the reference-rate source.
type Oracle struct {
	Mode      string          `yaml:"mode"` // fixed|http|ws
	FixedRate decimal.Decimal `yaml:"fixed_rate"`
	URL       string          `yaml:"url"`
	TTLMs     int             `yaml:"ttl_ms"`
	WSURL     string          `yaml:"ws_url"`
}

// Strategy groups the tunable knobs of the arbitrage loop.
type Strategy struct {
	ConnectorChainNetwork string          `yaml:"connector_chain_network"` // e.g. balancer_ethereum_mainnet
	TradingPair           string          `yaml:"trading_pair"`            // e.g. WETH-DAI
	OrderAmount           decimal.Decimal `yaml:"order_amount"`
	SlippageBuffer        decimal.Decimal `yaml:"slippage_buffer"`
	MinProfitability      decimal.Decimal `yaml:"minimum_profitability"`
	TickIntervalMs        int             `yaml:"tick_interval_ms"`
}

// Poller tunes the transaction confirmation loop.
type Poller struct {
	CooldownMs            int  `yaml:"cooldown_ms"`
	MaxAttempts           int  `yaml:"max_attempts"` // 0 = unbounded
	TreatUnknownAsPending bool `yaml:"treat_unknown_as_pending"`
}

// Risk encodes guard-rails for how much size the executor may take on.
type Risk struct {
	MaxNotionalPerTrade decimal.Decimal `yaml:"max_notional_per_trade"`
}

// WalletEntry binds a wallet address to a (chain, connector, network) triple.
type WalletEntry struct {
	Chain     string `yaml:"chain"`
	Connector string `yaml:"connector"`
	Network   string `yaml:"network"`
	Address   string `yaml:"address"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App      App           `yaml:"app"`
	Gateway  Gateway       `yaml:"gateway"`
	Oracle   Oracle        `yaml:"oracle"`
	Strategy Strategy      `yaml:"strategy"`
	Poller   Poller        `yaml:"poller"`
	Risk     Risk          `yaml:"risk"`
	Wallets  []WalletEntry `yaml:"wallets"`
}

// Pair splits the configured trading pair into base and quote symbols.
func (s Strategy) Pair() (base, quote string, err error) {
	parts := strings.Split(s.TradingPair, "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("malformed trading_pair %q", s.TradingPair)
	}
	return parts[0], parts[1], nil
}

// Venue splits connector_chain_network into its three components.
func (s Strategy) Venue() (connector, chain, network string, err error) {
	parts := strings.Split(s.ConnectorChainNetwork, "_")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", fmt.Errorf("malformed connector_chain_network %q", s.ConnectorChainNetwork)
	}
	return parts[0], parts[1], parts[2], nil
}

// Load reads a YAML file from disk and hydrates a Config struct.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
