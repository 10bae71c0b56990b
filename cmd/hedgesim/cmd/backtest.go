package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/hedgesim/advisor"
	"github.com/rustyeddy/hedgesim/backtest"
	"github.com/rustyeddy/hedgesim/config"
	"github.com/rustyeddy/hedgesim/dataset"
	"github.com/rustyeddy/hedgesim/journal"
	"github.com/rustyeddy/hedgesim/market"
	"github.com/rustyeddy/hedgesim/metrics"
	"github.com/rustyeddy/hedgesim/provider"
	"github.com/rustyeddy/hedgesim/risk"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a backtest from a config file",
	Long: `Run a historical simulation using settings from a configuration file.

The config file specifies the account, the traded universe and date range,
risk limits, the data provider, and where to journal fills.

Example:
  hedgesim backtest -f examples/configs/basic.yaml`,
	RunE: runBacktest,
}

var (
	btConfigPath string
	btCacheOut   string
	btCapital    float64
	btSymbols    []string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	backtestCmd.Flags().StringVar(&btCacheOut, "save-cache", "", "write fetched bars to this directory as Parquet")
	backtestCmd.Flags().Float64Var(&btCapital, "capital", 0, "override account.initial_capital")
	backtestCmd.Flags().StringSliceVar(&btSymbols, "symbols", nil, "override universe.symbols")
	backtestCmd.MarkFlagRequired("config")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(btConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	setupLogging(cfg.Log.Level)

	if btCapital > 0 {
		cfg.Account.InitialCapital = btCapital
	}
	if len(btSymbols) > 0 {
		cfg.Universe.Symbols = btSymbols
	}

	start, end, err := cfg.Universe.DateRange()
	if err != nil {
		return err
	}

	fmt.Printf("Running backtest with config: %s\n", btConfigPath)
	fmt.Printf("  Account: %s (Capital: $%.2f)\n", cfg.Account.ID, cfg.Account.InitialCapital)
	fmt.Printf("  Universe: %v vs %s, %s to %s\n",
		cfg.Universe.Symbols, cfg.Universe.Benchmark, cfg.Universe.Start, cfg.Universe.End)
	fmt.Println()

	j, err := buildJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	p, err := buildProvider(cfg.Provider)
	if err != nil {
		return fmt.Errorf("create provider: %w", err)
	}

	ctx := cmd.Context()
	ds, err := dataset.Load(ctx, p, cfg.Universe.Symbols, start, end, cfg.Universe.Benchmark)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	if btCacheOut != "" {
		if err := ds.SaveCache(btCacheOut); err != nil {
			return fmt.Errorf("save cache: %w", err)
		}
		fmt.Printf("Cached bars to %s\n", btCacheOut)
	}

	r := backtest.New(cfg.Account.InitialCapital)
	r.Policy = risk.Policy{
		MaxPositionPct: cfg.Risk.MaxPositionPct,
		CashReservePct: cfg.Risk.CashReservePct,
		FeeBuffer:      cfg.Risk.FeeBuffer,
	}
	r.Metrics = metrics.Params{
		RiskFreeRate:   cfg.Metrics.RiskFreeRate,
		PeriodsPerYear: cfg.Metrics.PeriodsPerYear,
	}
	r.Aggregator = &advisor.WeightedVote{MinConviction: cfg.Advisors.MinConviction, Policy: r.Policy}
	r.Lookback = cfg.Universe.Lookback
	r.NewsDays = cfg.Advisors.NewsDays
	r.Journal = j

	res, err := r.Run(ctx, ds)
	if err != nil {
		return fmt.Errorf("run backtest: %w", err)
	}

	printResult(res)
	return nil
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

func buildJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath)
	case "csv":
		return journal.NewCSV(cfg.OrdersFile, cfg.EquityFile)
	default:
		return journal.Nop{}, nil
	}
}

func buildProvider(cfg config.ProviderConfig) (provider.Provider, error) {
	switch cfg.Kind {
	case "cache":
		return &cacheProvider{dir: cfg.CacheDir}, nil
	case "alpaca":
		key, secret := cfg.APIKey, cfg.APISecret
		if key == "" {
			key = os.Getenv("APCA_API_KEY_ID")
		}
		if secret == "" {
			secret = os.Getenv("APCA_API_SECRET_KEY")
		}
		if key == "" || secret == "" {
			return nil, fmt.Errorf("alpaca credentials missing: set provider.api_key/api_secret or APCA_API_KEY_ID/APCA_API_SECRET_KEY")
		}
		return provider.NewAlpaca(key, secret, ""), nil
	default:
		return nil, fmt.Errorf("unknown provider kind %q", cfg.Kind)
	}
}

// cacheProvider serves bars from a local Parquet cache written by an
// earlier run with --save-cache. Fundamentals and news are not cached.
type cacheProvider struct {
	dir string
}

func (c *cacheProvider) FetchBars(_ context.Context, symbol string, start, end time.Time) ([]market.Bar, error) {
	return dataset.ReadCachedBars(c.dir, symbol, start, end)
}

func (c *cacheProvider) FetchFundamentals(context.Context, string, time.Time) (*market.FundamentalSnapshot, error) {
	return nil, nil
}

func (c *cacheProvider) FetchNews(context.Context, string, time.Time, int) ([]market.Headline, error) {
	return nil, nil
}

func printResult(res *backtest.Result) {
	rep := res.Report
	fmt.Printf("\nBacktest Complete! (run %s)\n", res.RunID)
	fmt.Printf("  Initial Capital: $%.2f\n", rep.InitialCapital)
	fmt.Printf("  Final Value: $%.2f\n", rep.FinalValue)
	fmt.Printf("  Total Return: %.2f%% ($%.2f)\n", rep.TotalReturn, rep.ProfitLoss())
	fmt.Printf("  Sharpe Ratio: %.2f\n", rep.SharpeRatio)
	fmt.Printf("  Sortino Ratio: %.2f\n", rep.SortinoRatio)
	fmt.Printf("  Max Drawdown: %.2f%%\n", rep.MaxDrawdown)
	fmt.Printf("  Trades: %d (%d wins / %d losses, %.1f%% win rate)\n",
		rep.TotalTrades, rep.WinningTrades, rep.LosingTrades, rep.WinRate())

	if n := len(res.BenchmarkValues); n > 0 && n == len(res.Values) {
		bench := res.BenchmarkValues[n-1]
		if bench > 0 && rep.InitialCapital > 0 {
			benchReturn := (bench - rep.InitialCapital) / rep.InitialCapital * 100
			params := metrics.DefaultParams()
			benchSharpe := metrics.Sharpe(metrics.Returns(res.BenchmarkValues),
				params.RiskFreeRate, params.PeriodsPerYear)
			fmt.Printf("  Benchmark Return: %.2f%% (excess %.2f%%, benchmark Sharpe %.2f)\n",
				benchReturn, rep.TotalReturn-benchReturn, benchSharpe)
		}
	}
}
