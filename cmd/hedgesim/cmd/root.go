package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hedgesim",
	Short: "An equity backtesting simulator with pluggable advisors",
	Long: `Hedgesim simulates trading a basket of equities over historical data.

It provides tools for:
  - Backtesting advisor-driven strategies day by day
  - Risk-based position sizing with concentration and reserve limits
  - Journaling fills and equity curves to SQLite or CSV
  - Caching historical bars locally in Parquet
  - Performance reporting (Sharpe, Sortino, drawdown, win rate)

Complete documentation is available at https://github.com/rustyeddy/hedgesim`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
