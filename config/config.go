// Package config holds the backtest run configuration, loadable from YAML
// or JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete backtest configuration
type Config struct {
	Account  AccountConfig  `json:"account" yaml:"account"`
	Universe UniverseConfig `json:"universe" yaml:"universe"`
	Risk     RiskConfig     `json:"risk" yaml:"risk"`
	Metrics  MetricsConfig  `json:"metrics" yaml:"metrics"`
	Advisors AdvisorsConfig `json:"advisors" yaml:"advisors"`
	Provider ProviderConfig `json:"provider" yaml:"provider"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// AccountConfig contains account initialization parameters
type AccountConfig struct {
	ID             string  `json:"id" yaml:"id"`
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
}

// UniverseConfig names the traded symbols and the simulated date range
type UniverseConfig struct {
	Symbols   []string `json:"symbols" yaml:"symbols"`
	Benchmark string   `json:"benchmark,omitempty" yaml:"benchmark,omitempty"`
	Start     string   `json:"start" yaml:"start"` // YYYY-MM-DD
	End       string   `json:"end" yaml:"end"`     // YYYY-MM-DD
	Lookback  int      `json:"lookback,omitempty" yaml:"lookback,omitempty"`
}

// DateRange parses the start and end dates.
func (u UniverseConfig) DateRange() (start, end time.Time, err error) {
	start, err = time.Parse("2006-01-02", u.Start)
	if err != nil {
		return start, end, fmt.Errorf("parse universe.start: %w", err)
	}
	end, err = time.Parse("2006-01-02", u.End)
	if err != nil {
		return start, end, fmt.Errorf("parse universe.end: %w", err)
	}
	return start, end, nil
}

// RiskConfig contains the portfolio constraint parameters
type RiskConfig struct {
	MaxPositionPct float64 `json:"max_position_pct" yaml:"max_position_pct"`
	CashReservePct float64 `json:"cash_reserve_pct" yaml:"cash_reserve_pct"`
	FeeBuffer      float64 `json:"fee_buffer" yaml:"fee_buffer"`
}

// MetricsConfig contains the performance measurement parameters
type MetricsConfig struct {
	RiskFreeRate   float64 `json:"risk_free_rate" yaml:"risk_free_rate"`
	PeriodsPerYear int     `json:"periods_per_year" yaml:"periods_per_year"`
}

// AdvisorsConfig controls recommendation and aggregation behavior
type AdvisorsConfig struct {
	MinConviction float64 `json:"min_conviction" yaml:"min_conviction"`
	NewsDays      int     `json:"news_days" yaml:"news_days"`
}

// ProviderConfig selects and parameterizes the market data source
type ProviderConfig struct {
	Kind     string `json:"kind" yaml:"kind"` // "alpaca" or "cache"
	CacheDir string `json:"cache_dir,omitempty" yaml:"cache_dir,omitempty"`

	// Alpaca credentials; fall back to APCA_API_KEY_ID /
	// APCA_API_SECRET_KEY when empty.
	APIKey    string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	APISecret string `json:"api_secret,omitempty" yaml:"api_secret,omitempty"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	OrdersFile string `json:"orders_file,omitempty" yaml:"orders_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LogConfig controls the structured logger
type LogConfig struct {
	Level string `json:"level" yaml:"level"` // "debug", "info", "warn", "error"
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.InitialCapital <= 0 {
		return fmt.Errorf("account.initial_capital must be positive")
	}
	if len(c.Universe.Symbols) == 0 {
		return fmt.Errorf("universe.symbols is required")
	}
	if _, _, err := c.Universe.DateRange(); err != nil {
		return err
	}
	start, end, _ := c.Universe.DateRange()
	if end.Before(start) {
		return fmt.Errorf("universe.end must not precede universe.start")
	}
	if c.Risk.MaxPositionPct <= 0 || c.Risk.MaxPositionPct > 1 {
		return fmt.Errorf("risk.max_position_pct must be between 0 and 1")
	}
	if c.Risk.CashReservePct < 0 || c.Risk.CashReservePct >= 1 {
		return fmt.Errorf("risk.cash_reserve_pct must be in [0, 1)")
	}
	if c.Risk.FeeBuffer < 0 {
		return fmt.Errorf("risk.fee_buffer must not be negative")
	}
	if c.Metrics.PeriodsPerYear <= 0 {
		return fmt.Errorf("metrics.periods_per_year must be positive")
	}
	if c.Advisors.MinConviction < 0 || c.Advisors.MinConviction > 1 {
		return fmt.Errorf("advisors.min_conviction must be in [0, 1]")
	}
	switch c.Provider.Kind {
	case "alpaca", "cache":
	default:
		return fmt.Errorf("provider.kind must be 'alpaca' or 'cache'")
	}
	if c.Provider.Kind == "cache" && c.Provider.CacheDir == "" {
		return fmt.Errorf("provider.cache_dir required for cache provider")
	}
	switch c.Journal.Type {
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for SQLite type")
		}
	case "csv":
		if c.Journal.OrdersFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal orders_file and equity_file required for CSV type")
		}
	case "none":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:             "SIM-001",
			InitialCapital: 100000,
		},
		Universe: UniverseConfig{
			Symbols:   []string{"AAPL", "MSFT", "GOOGL"},
			Benchmark: "SPY",
			Start:     "2024-01-01",
			End:       "2024-06-30",
			Lookback:  250,
		},
		Risk: RiskConfig{
			MaxPositionPct: 0.30,
			CashReservePct: 0.10,
			FeeBuffer:      0.01,
		},
		Metrics: MetricsConfig{
			RiskFreeRate:   0.02,
			PeriodsPerYear: 252,
		},
		Advisors: AdvisorsConfig{
			MinConviction: 0.3,
			NewsDays:      7,
		},
		Provider: ProviderConfig{
			Kind: "alpaca",
		},
		Journal: JournalConfig{
			Type:   "none",
			DBPath: "./hedgesim.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
