package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100000.0, cfg.Account.InitialCapital)
	assert.Equal(t, "SPY", cfg.Universe.Benchmark)
	assert.Equal(t, 0.30, cfg.Risk.MaxPositionPct)
}

func TestSaveAndLoadYAML(t *testing.T) {
	cfg := Default()
	cfg.Account.InitialCapital = 50000
	cfg.Universe.Symbols = []string{"TSLA"}
	cfg.Journal = JournalConfig{Type: "sqlite", DBPath: "./runs.db"}

	path := filepath.Join(t.TempDir(), "backtest.yaml")
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 50000.0, loaded.Account.InitialCapital)
	assert.Equal(t, []string{"TSLA"}, loaded.Universe.Symbols)
	assert.Equal(t, "sqlite", loaded.Journal.Type)
}

func TestSaveAndLoadJSON(t *testing.T) {
	cfg := Default()
	cfg.Risk.MaxPositionPct = 0.25

	path := filepath.Join(t.TempDir(), "backtest.json")
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.25, loaded.Risk.MaxPositionPct)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{{not config"), 0644))
	_, err := LoadFromFile(path)
	require.Error(t, err)
}

func TestDateRange(t *testing.T) {
	u := UniverseConfig{Start: "2024-01-02", End: "2024-03-01"}
	start, end, err := u.DateRange()
	require.NoError(t, err)
	assert.True(t, start.Before(end))

	u.End = "not-a-date"
	_, _, err = u.DateRange()
	require.Error(t, err)
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero capital", func(c *Config) { c.Account.InitialCapital = 0 }},
		{"no symbols", func(c *Config) { c.Universe.Symbols = nil }},
		{"reversed dates", func(c *Config) { c.Universe.Start, c.Universe.End = c.Universe.End, c.Universe.Start }},
		{"position cap too big", func(c *Config) { c.Risk.MaxPositionPct = 1.5 }},
		{"negative fee buffer", func(c *Config) { c.Risk.FeeBuffer = -0.01 }},
		{"reserve too big", func(c *Config) { c.Risk.CashReservePct = 1.0 }},
		{"zero periods", func(c *Config) { c.Metrics.PeriodsPerYear = 0 }},
		{"bad conviction", func(c *Config) { c.Advisors.MinConviction = 2 }},
		{"unknown provider", func(c *Config) { c.Provider.Kind = "bloomberg" }},
		{"cache without dir", func(c *Config) { c.Provider.Kind = "cache"; c.Provider.CacheDir = "" }},
		{"unknown journal", func(c *Config) { c.Journal.Type = "postgres" }},
		{"sqlite without path", func(c *Config) { c.Journal = JournalConfig{Type: "sqlite"} }},
		{"csv without files", func(c *Config) { c.Journal = JournalConfig{Type: "csv"} }},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
