package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturns(t *testing.T) {
	assert.Nil(t, Returns(nil))
	assert.Nil(t, Returns([]float64{100}))

	r := Returns([]float64{100, 110, 99})
	require.Len(t, r, 2)
	assert.InDelta(t, 0.10, r[0], 1e-9)
	assert.InDelta(t, -0.10, r[1], 1e-9)
}

func TestSharpeDegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, Sharpe(nil, 0.02, 252))
	assert.Equal(t, 0.0, Sharpe([]float64{}, 0.02, 252))
	// zero variance must not produce NaN
	assert.Equal(t, 0.0, Sharpe([]float64{0, 0, 0}, 0.02, 252))
	assert.Equal(t, 0.0, Sharpe([]float64{0.01, 0.01, 0.01}, 0.02, 252))
}

func TestSharpePositiveDrift(t *testing.T) {
	returns := []float64{0.01, 0.02, -0.005, 0.015, 0.01}
	s := Sharpe(returns, 0.02, 252)
	assert.False(t, math.IsNaN(s))
	assert.False(t, math.IsInf(s, 0))
	assert.Greater(t, s, 0.0)
}

func TestSortinoDegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, Sortino(nil, 0.02, 252))
	// all positive excess returns: no downside, result is 0 not Inf
	assert.Equal(t, 0.0, Sortino([]float64{0.05, 0.04, 0.06}, 0.0, 252))
}

func TestSortinoUsesDownsideOnly(t *testing.T) {
	returns := []float64{0.02, -0.01, 0.03, -0.02, 0.01}
	sortino := Sortino(returns, 0.0, 252)
	sharpe := Sharpe(returns, 0.0, 252)
	assert.False(t, math.IsNaN(sortino))
	// downside deviation is computed from a narrower sample; for this mix
	// of mostly-positive returns it is smaller, so sortino > sharpe
	assert.Greater(t, sortino, sharpe)
}

func TestMaxDrawdown(t *testing.T) {
	assert.Equal(t, 0.0, MaxDrawdown(nil))
	assert.Equal(t, 0.0, MaxDrawdown([]float64{100, 110, 120}))

	dd := MaxDrawdown([]float64{100000, 110000, 90000})
	assert.InDelta(t, 18.1818, dd, 0.001)
}

func TestMaxDrawdownBounds(t *testing.T) {
	series := [][]float64{
		{100},
		{100, 50, 25, 200},
		{5, 4, 3, 2, 1},
		{1, 1, 1},
	}
	for _, vs := range series {
		dd := MaxDrawdown(vs)
		assert.GreaterOrEqual(t, dd, 0.0)
		assert.LessOrEqual(t, dd, 100.0)
	}
}

func TestWinLossCounts(t *testing.T) {
	wins, losses := WinLossCounts([]float64{10, -5, 0, 3.5, -0.1})
	assert.Equal(t, 2, wins)
	assert.Equal(t, 2, losses)

	wins, losses = WinLossCounts(nil)
	assert.Zero(t, wins)
	assert.Zero(t, losses)
}

func TestNewReport(t *testing.T) {
	values := []float64{100000, 102000, 101000, 105000}
	rep := NewReport(100000, 105000, values, 4, []float64{500, -200, 800}, DefaultParams())

	assert.InDelta(t, 5.0, rep.TotalReturn, 1e-9)
	assert.Equal(t, 4, rep.TotalTrades)
	assert.Equal(t, 2, rep.WinningTrades)
	assert.Equal(t, 1, rep.LosingTrades)
	assert.InDelta(t, 66.6667, rep.WinRate(), 0.001)
	assert.InDelta(t, 5000.0, rep.ProfitLoss(), 1e-9)
	assert.False(t, math.IsNaN(rep.SharpeRatio))
}

func TestNewReportZeroCapital(t *testing.T) {
	rep := NewReport(0, 0, nil, 0, nil, DefaultParams())
	assert.Equal(t, 0.0, rep.TotalReturn)
	assert.Equal(t, 0.0, rep.WinRate())
	assert.Equal(t, 0.0, rep.SharpeRatio)
	assert.Equal(t, 0.0, rep.MaxDrawdown)
}
