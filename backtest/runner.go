// Package backtest drives the day-by-day simulation loop over a sealed
// dataset: advisors recommend, the aggregator merges, the risk validator
// sizes, the simulator executes, and every day closes with a mark to
// market.
package backtest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rustyeddy/hedgesim/advisor"
	"github.com/rustyeddy/hedgesim/dataset"
	"github.com/rustyeddy/hedgesim/journal"
	"github.com/rustyeddy/hedgesim/market"
	"github.com/rustyeddy/hedgesim/metrics"
	"github.com/rustyeddy/hedgesim/risk"
	"github.com/rustyeddy/hedgesim/sim"
)

// Runner wires the pieces of one backtest. Construct with New, then Run.
type Runner struct {
	InitialCapital float64
	Advisors       []advisor.Advisor
	Aggregator     advisor.Aggregator
	Policy         risk.Policy
	Metrics        metrics.Params

	// Lookback is the bar window handed to advisors, 0 for the full
	// available history.
	Lookback int

	// NewsDays is the headline lookback in calendar days; 0 disables
	// news fetching entirely.
	NewsDays int

	Journal journal.Journal
	logger  *slog.Logger
}

// Result is everything a completed run produced.
type Result struct {
	RunID           string
	Report          metrics.Report
	Values          []float64
	Dates           []time.Time
	BenchmarkValues []float64
	FinalState      market.PortfolioState
	Trades          []sim.LogEntry
}

// New returns a Runner with the standard advisors, aggregator and risk
// policy. Fields may be overridden before calling Run.
func New(initialCapital float64) *Runner {
	return &Runner{
		InitialCapital: initialCapital,
		Advisors: []advisor.Advisor{
			advisor.NewTechnical(),
			advisor.NewFundamental(),
			advisor.NewSentiment(),
		},
		Aggregator: advisor.NewWeightedVote(),
		Policy:     risk.DefaultPolicy(),
		Metrics:    metrics.DefaultParams(),
		Lookback:   250,
		NewsDays:   7,
		Journal:    journal.Nop{},
		logger:     slog.Default().With("component", "backtest"),
	}
}

// Run executes the simulation over every trading date in the dataset and
// returns the assembled result. The dataset must already be loaded; Run
// performs no fetching beyond per-day news lookups.
func (r *Runner) Run(ctx context.Context, ds *dataset.Dataset) (*Result, error) {
	if r.InitialCapital <= 0 {
		return nil, fmt.Errorf("backtest: initial capital must be positive, got %.2f", r.InitialCapital)
	}
	dates := ds.TradingDates()
	if len(dates) == 0 {
		return nil, dataset.ErrNoData
	}
	if r.logger == nil {
		r.logger = slog.Default().With("component", "backtest")
	}

	simulator := sim.New(r.InitialCapital, r.Journal, "")
	r.logger.Info("run starting",
		"run", simulator.RunID(),
		"symbols", len(ds.Symbols()),
		"dates", len(dates),
		"capital", r.InitialCapital)

	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("backtest: run canceled: %w", err)
		}
		orders := r.decideDay(ctx, ds, simulator, date)
		simulator.Apply(orders, date)
		simulator.MarkToMarket(ds.ClosingPrices(date), date)
	}

	final := simulator.CurrentState(dates[len(dates)-1])
	values := simulator.Values()
	report := metrics.NewReport(
		r.InitialCapital, final.TotalValue, values,
		simulator.TradeCount(), simulator.TradePnLs(), r.Metrics)

	r.logger.Info("run finished",
		"run", simulator.RunID(),
		"final", final.TotalValue,
		"return_pct", report.TotalReturn,
		"trades", report.TotalTrades)

	return &Result{
		RunID:           simulator.RunID(),
		Report:          report,
		Values:          values,
		Dates:           simulator.Dates(),
		BenchmarkValues: ds.BenchmarkValues(dates, r.InitialCapital),
		FinalState:      final,
		Trades:          simulator.Log(),
	}, nil
}

// decideDay produces the validated order batch for one date. Symbols are
// processed in universe order against the same opening state, so a later
// order may still be refused at apply time.
func (r *Runner) decideDay(ctx context.Context, ds *dataset.Dataset, simulator *sim.Simulator, date time.Time) []market.TradeOrder {
	state := simulator.CurrentState(date)
	var orders []market.TradeOrder

	for _, symbol := range ds.Symbols() {
		bars := ds.Window(symbol, date, r.Lookback)
		if len(bars) == 0 {
			continue
		}
		price := bars[len(bars)-1].Close
		if price <= 0 {
			continue
		}

		mctx := advisor.Context{
			Date:  date,
			Price: price,
			Bars:  bars,
		}
		if snap, ok := ds.Fundamentals(symbol); ok {
			mctx.Fundamentals = &snap
		}
		if r.NewsDays > 0 {
			mctx.News = ds.News(ctx, symbol, date, r.NewsDays)
		}

		recs := make([]market.Recommendation, 0, len(r.Advisors))
		for _, adv := range r.Advisors {
			rec, err := adv.Recommend(ctx, symbol, mctx)
			if err != nil {
				r.logger.Warn("advisor failed",
					"advisor", adv.Name(), "symbol", symbol, "error", err)
				continue
			}
			recs = append(recs, rec)
		}

		intent := r.Aggregator.Aggregate(symbol, price, recs, state)
		if intent == nil {
			continue
		}

		order, ok := r.validate(*intent, state, date)
		if ok {
			orders = append(orders, order)
		}
	}
	return orders
}

// validate sizes the intent against the risk policy. Zero feasible
// quantity drops the intent silently; the validator shrinks, never grows.
func (r *Runner) validate(intent market.TradeIntent, state market.PortfolioState, date time.Time) (market.TradeOrder, bool) {
	var qty int
	switch intent.Direction {
	case market.Buy:
		qty = risk.ValidateBuy(r.Policy, intent.Symbol, intent.Quantity, intent.Price, state)
	case market.Sell:
		qty = risk.ValidateSell(intent.Symbol, intent.Quantity, state)
	default:
		return market.TradeOrder{}, false
	}
	if qty == 0 {
		return market.TradeOrder{}, false
	}

	order, err := market.NewTradeOrder(intent.Symbol, intent.Direction, qty, intent.Price, date, intent.Rationale)
	if err != nil {
		r.logger.Warn("order construction failed", "symbol", intent.Symbol, "error", err)
		return market.TradeOrder{}, false
	}
	return order, true
}
