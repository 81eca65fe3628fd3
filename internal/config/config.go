// Package config loads the simulator configuration from YAML with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the marketsim engine.
type Config struct {
	Logging Logging        `yaml:"logging"`
	Broker  Broker         `yaml:"broker"`
	Feed    Feed           `yaml:"feed"`
	Tickers []TickerConfig `yaml:"tickers"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Broker holds the virtual broker tunables.
type Broker struct {
	FailureRate float64 `yaml:"failure_rate"`
}

// Feed holds parameters for the synthetic quote feed.
type Feed struct {
	IntervalMS int     `yaml:"interval_ms"`
	Depth      int     `yaml:"depth"`
	Tick       float64 `yaml:"tick"`
	Quantity   int     `yaml:"quantity"`
	Volume     int64   `yaml:"volume"`
}

// TickerConfig declares one simulated instrument.
type TickerConfig struct {
	Name         string  `yaml:"name"`
	Token        int     `yaml:"token"`
	InitialPrice float64 `yaml:"initial_price"`
	Mode         string  `yaml:"mode"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Logging: Logging{Level: "info", Format: "json"},
		Broker:  Broker{FailureRate: 0.001},
		Feed:    Feed{IntervalMS: 1000, Depth: 5, Tick: 0.01, Quantity: 100, Volume: 15000},
		Tickers: []TickerConfig{
			{Name: "aapl", Token: 1111, InitialPrice: 100},
			{Name: "goog", Token: 2222, InitialPrice: 125},
			{Name: "amzn", Token: 3333, InitialPrice: 260},
		},
	}
}

// Load reads the YAML configuration file at the given path into the
// defaults, applies environment variable overrides, and validates the
// result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects out-of-range tunables at load time rather than deferring
// to call time.
func (c *Config) Validate() error {
	if c.Broker.FailureRate < 0 || c.Broker.FailureRate > 1 {
		return fmt.Errorf("broker.failure_rate %v outside [0, 1]", c.Broker.FailureRate)
	}
	if c.Feed.IntervalMS <= 0 {
		return fmt.Errorf("feed.interval_ms must be positive, got %d", c.Feed.IntervalMS)
	}
	if c.Feed.Quantity <= 0 {
		return fmt.Errorf("feed.quantity must be positive, got %d", c.Feed.Quantity)
	}
	for i, t := range c.Tickers {
		if t.Name == "" {
			return fmt.Errorf("tickers[%d]: name is required", i)
		}
		if t.InitialPrice < 0 {
			return fmt.Errorf("tickers[%d] %s: negative initial_price", i, t.Name)
		}
	}
	return nil
}

// applyEnvOverrides checks well-known environment variables and overrides
// the corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	if v := os.Getenv("MARKETSIM_FAILURE_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Broker.FailureRate = rate
		}
	}
	if v := os.Getenv("MARKETSIM_FEED_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.Feed.IntervalMS = ms
		}
	}
}
