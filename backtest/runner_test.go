package backtest

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/hedgesim/advisor"
	"github.com/rustyeddy/hedgesim/dataset"
	"github.com/rustyeddy/hedgesim/market"
	"github.com/rustyeddy/hedgesim/provider"
)

// scripted recommends a fixed signal per symbol per date and holds
// otherwise. Keys are "SYMBOL/2024-01-02".
type scripted struct {
	signals map[string]market.Signal
}

func (s *scripted) Name() string { return "scripted" }

func (s *scripted) Recommend(_ context.Context, symbol string, mctx advisor.Context) (market.Recommendation, error) {
	key := symbol + "/" + mctx.Date.Format("2006-01-02")
	if sig, ok := s.signals[key]; ok {
		return market.NewRecommendation(s.Name(), symbol, sig, 0.9, "scripted")
	}
	return market.NewRecommendation(s.Name(), symbol, market.Hold, 0.5, "scripted")
}

func day(n int) time.Time {
	return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func flatBars(symbol string, price float64, days int) []market.Bar {
	bars := make([]market.Bar, days)
	for i := range bars {
		bars[i] = market.Bar{
			Symbol: symbol, Date: day(i),
			Open: price, High: price, Low: price, Close: price, Volume: 1000,
		}
	}
	return bars
}

func loadDataset(t *testing.T, p provider.Provider, symbols []string, days int, benchmark string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Load(context.Background(), p, symbols, day(0), day(days-1), benchmark)
	require.NoError(t, err)
	return ds
}

func TestRunBuyThenSell(t *testing.T) {
	p := provider.NewStatic()
	// price rises from 100 to 104 over 5 days
	for i := 0; i < 5; i++ {
		price := 100.0 + float64(i)
		p.AddBars("AAPL", market.Bar{
			Symbol: "AAPL", Date: day(i),
			Open: price, High: price, Low: price, Close: price, Volume: 1000,
		})
	}

	r := New(100000)
	r.Advisors = []advisor.Advisor{&scripted{signals: map[string]market.Signal{
		"AAPL/2024-01-02": market.Buy,
		"AAPL/2024-01-06": market.Sell,
	}}}
	r.NewsDays = 0

	res, err := r.Run(context.Background(), loadDataset(t, p, []string{"AAPL"}, 5, ""))
	require.NoError(t, err)

	// day 0: conviction 0.9 of the 30% cap is 27000 at $100, 270 shares
	// day 4: full liquidation at $104 for a 4*270 = 1080 gain
	assert.Equal(t, 2, len(res.Trades))
	assert.True(t, res.Trades[0].Executed)
	assert.True(t, res.Trades[1].Executed)
	assert.Equal(t, 270, res.Trades[0].Order.Quantity)
	assert.Equal(t, 270, res.Trades[1].Order.Quantity)

	assert.InDelta(t, 101080.0, res.Report.FinalValue, 1e-9)
	assert.Empty(t, res.FinalState.Positions)
	assert.Equal(t, 1, res.Report.WinningTrades)
	assert.Equal(t, 0, res.Report.LosingTrades)
	assert.Len(t, res.Values, 5)
	assert.Len(t, res.Dates, 5)
}

func TestRunMarksToMarketDaily(t *testing.T) {
	p := provider.NewStatic()
	p.AddBars("AAPL", flatBars("AAPL", 50, 6)...)

	r := New(10000)
	r.Advisors = []advisor.Advisor{&scripted{signals: map[string]market.Signal{
		"AAPL/2024-01-02": market.Buy,
	}}}
	r.NewsDays = 0

	res, err := r.Run(context.Background(), loadDataset(t, p, []string{"AAPL"}, 6, ""))
	require.NoError(t, err)

	// flat prices keep total value at initial capital every day
	require.Len(t, res.Values, 6)
	for _, v := range res.Values {
		assert.InDelta(t, 10000.0, v, 1e-9)
	}
	assert.InDelta(t, 0.0, res.Report.TotalReturn, 1e-9)
	assert.False(t, math.IsNaN(res.Report.SharpeRatio))
}

func TestRunBenchmarkSeries(t *testing.T) {
	p := provider.NewStatic()
	p.AddBars("AAPL", flatBars("AAPL", 100, 4)...)
	for i := 0; i < 4; i++ {
		price := 400.0 + float64(i)*4 // +1% per day
		p.AddBars("SPY", market.Bar{
			Symbol: "SPY", Date: day(i),
			Open: price, High: price, Low: price, Close: price, Volume: 1000,
		})
	}

	r := New(100000)
	r.Advisors = []advisor.Advisor{&scripted{signals: map[string]market.Signal{}}}
	r.NewsDays = 0

	res, err := r.Run(context.Background(), loadDataset(t, p, []string{"AAPL"}, 4, "SPY"))
	require.NoError(t, err)

	require.Len(t, res.BenchmarkValues, 4)
	assert.InDelta(t, 100000.0, res.BenchmarkValues[0], 1e-9)
	assert.InDelta(t, 103000.0, res.BenchmarkValues[3], 1e-9)
}

func TestRunSymbolsWithoutBarsAreSkipped(t *testing.T) {
	p := provider.NewStatic()
	p.AddBars("AAPL", flatBars("AAPL", 100, 3)...)
	p.FailSymbol("MSFT", nil)

	r := New(100000)
	r.Advisors = []advisor.Advisor{&scripted{signals: map[string]market.Signal{
		"MSFT/2024-01-02": market.Buy,
	}}}
	r.NewsDays = 0

	res, err := r.Run(context.Background(), loadDataset(t, p, []string{"AAPL", "MSFT"}, 3, ""))
	require.NoError(t, err)
	assert.Empty(t, res.Trades)
}

func TestRunInvalidCapital(t *testing.T) {
	r := New(0)
	_, err := r.Run(context.Background(), &dataset.Dataset{})
	require.Error(t, err)
}

func TestRunCanceledContext(t *testing.T) {
	p := provider.NewStatic()
	p.AddBars("AAPL", flatBars("AAPL", 100, 3)...)
	ds := loadDataset(t, p, []string{"AAPL"}, 3, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(100000)
	r.NewsDays = 0
	_, err := r.Run(ctx, ds)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunSellWithoutPositionProducesNoOrder(t *testing.T) {
	p := provider.NewStatic()
	p.AddBars("AAPL", flatBars("AAPL", 100, 3)...)

	r := New(100000)
	r.Advisors = []advisor.Advisor{&scripted{signals: map[string]market.Signal{
		"AAPL/2024-01-02": market.Sell,
	}}}
	r.NewsDays = 0

	res, err := r.Run(context.Background(), loadDataset(t, p, []string{"AAPL"}, 3, ""))
	require.NoError(t, err)
	assert.Empty(t, res.Trades)
	assert.InDelta(t, 100000.0, res.Report.FinalValue, 1e-9)
}
