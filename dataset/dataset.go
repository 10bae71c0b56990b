// Package dataset owns the historical data a backtest runs over. Load
// prefetches everything up front and returns a sealed, read-only Dataset;
// the simulation loop only ever queries it with an as-of date, so nothing
// downstream can see a bar past the simulated day.
package dataset

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/rustyeddy/hedgesim/market"
	"github.com/rustyeddy/hedgesim/provider"
)

// ErrNoData means no symbol produced any bars; a run cannot proceed.
var ErrNoData = errors.New("dataset: no price data loaded")

// Dataset is the sealed result of the load phase.
type Dataset struct {
	symbols      []string
	bars         map[string][]market.Bar
	fundamentals map[string]market.FundamentalSnapshot
	benchmark    string
	benchBars    []market.Bar
	dates        []time.Time
	provider     provider.Provider
	logger       *slog.Logger
}

// Load prefetches bars and fundamentals for every symbol plus the
// benchmark series. Per-symbol fetch failures degrade to empty data and
// are logged, never fatal. Load fails only when no symbol has any bars at
// all, returning ErrNoData.
func Load(ctx context.Context, p provider.Provider, symbols []string, start, end time.Time, benchmark string) (*Dataset, error) {
	logger := slog.Default().With("component", "dataset")

	ds := &Dataset{
		symbols:      symbols,
		bars:         make(map[string][]market.Bar, len(symbols)),
		fundamentals: make(map[string]market.FundamentalSnapshot),
		benchmark:    benchmark,
		provider:     p,
		logger:       logger,
	}

	for _, symbol := range symbols {
		bars, err := p.FetchBars(ctx, symbol, start, end)
		if err != nil {
			logger.Warn("price fetch failed, skipping symbol", "symbol", symbol, "error", err)
			ds.bars[symbol] = nil
			continue
		}
		sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
		ds.bars[symbol] = bars
		logger.Info("loaded prices", "symbol", symbol, "bars", len(bars))

		// Single snapshot as of the start date; no history replay.
		snap, err := p.FetchFundamentals(ctx, symbol, start)
		if err != nil {
			logger.Warn("fundamentals fetch failed", "symbol", symbol, "error", err)
		} else if snap != nil {
			ds.fundamentals[symbol] = *snap
		}
	}

	if benchmark != "" {
		benchBars, err := p.FetchBars(ctx, benchmark, start, end)
		if err != nil {
			logger.Warn("benchmark fetch failed", "symbol", benchmark, "error", err)
		} else {
			sort.Slice(benchBars, func(i, j int) bool { return benchBars[i].Date.Before(benchBars[j].Date) })
			ds.benchBars = benchBars
		}
	}

	ds.dates = ds.buildCalendar()
	if len(ds.dates) == 0 {
		return ds, ErrNoData
	}
	return ds, nil
}

// buildCalendar derives the trading calendar from the benchmark series
// when present, else from the first symbol with any data.
func (ds *Dataset) buildCalendar() []time.Time {
	series := ds.benchBars
	if len(series) == 0 {
		for _, symbol := range ds.symbols {
			if len(ds.bars[symbol]) > 0 {
				series = ds.bars[symbol]
				break
			}
		}
	}
	if len(series) == 0 {
		return nil
	}

	seen := make(map[time.Time]struct{}, len(series))
	dates := make([]time.Time, 0, len(series))
	for _, bar := range series {
		if _, ok := seen[bar.Date]; ok {
			continue
		}
		seen[bar.Date] = struct{}{}
		dates = append(dates, bar.Date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Symbols returns the traded universe in input order.
func (ds *Dataset) Symbols() []string { return ds.symbols }

// TradingDates returns the calendar in chronological order; empty when no
// data loaded.
func (ds *Dataset) TradingDates() []time.Time { return ds.dates }

// Window returns at most lookback bars for the symbol dated at or before
// asOf, in chronological order. Bars after asOf are never returned.
func (ds *Dataset) Window(symbol string, asOf time.Time, lookback int) []market.Bar {
	bars := ds.bars[symbol]

	// bars are date-sorted: find the first bar after asOf
	cut := sort.Search(len(bars), func(i int) bool { return bars[i].Date.After(asOf) })
	visible := bars[:cut]

	if lookback > 0 && len(visible) > lookback {
		visible = visible[len(visible)-lookback:]
	}
	return visible
}

// Fundamentals returns the cached snapshot for a symbol, if any.
func (ds *Dataset) Fundamentals(symbol string) (market.FundamentalSnapshot, bool) {
	snap, ok := ds.fundamentals[symbol]
	return snap, ok
}

// News fetches headlines for the symbol in the lookback window before
// asOf. Provider errors degrade to an empty slice.
func (ds *Dataset) News(ctx context.Context, symbol string, asOf time.Time, lookbackDays int) []market.Headline {
	headlines, err := ds.provider.FetchNews(ctx, symbol, asOf, lookbackDays)
	if err != nil {
		ds.logger.Warn("news fetch failed", "symbol", symbol, "error", err)
		return nil
	}
	return headlines
}

// ClosingPrices returns the last known close at or before the date for
// each symbol that has one. Symbols without any bar yet are absent.
func (ds *Dataset) ClosingPrices(date time.Time) map[string]float64 {
	prices := make(map[string]float64, len(ds.symbols))
	for _, symbol := range ds.symbols {
		if w := ds.Window(symbol, date, 1); len(w) > 0 {
			prices[symbol] = w[len(w)-1].Close
		}
	}
	return prices
}

// Benchmark returns the benchmark symbol, which may have no data.
func (ds *Dataset) Benchmark() string { return ds.benchmark }

// BenchmarkValues returns the benchmark close for each date, scaled so the
// series starts at initialCapital. Dates the benchmark missed are 0, and
// an empty benchmark yields nil.
func (ds *Dataset) BenchmarkValues(dates []time.Time, initialCapital float64) []float64 {
	if len(ds.benchBars) == 0 {
		return nil
	}
	closes := make(map[time.Time]float64, len(ds.benchBars))
	for _, bar := range ds.benchBars {
		closes[bar.Date] = bar.Close
	}

	values := make([]float64, len(dates))
	for i, date := range dates {
		values[i] = closes[date]
	}

	if len(values) > 0 && values[0] > 0 {
		scale := initialCapital / values[0]
		for i := range values {
			values[i] *= scale
		}
	}
	return values
}

// Bars returns the full loaded series for a symbol. The backtest loop must
// not use this directly; it exists for the cache writer and diagnostics.
func (ds *Dataset) Bars(symbol string) []market.Bar { return ds.bars[symbol] }
