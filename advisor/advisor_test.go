package advisor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/hedgesim/market"
	"github.com/rustyeddy/hedgesim/risk"
)

func barsFromCloses(symbol string, closes []float64) []market.Bar {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		bars[i] = market.Bar{
			Symbol: symbol,
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func TestTechnicalInsufficientHistory(t *testing.T) {
	adv := NewTechnical()
	mctx := Context{Bars: barsFromCloses("AAPL", []float64{100, 101, 102})}

	rec, err := adv.Recommend(context.Background(), "AAPL", mctx)
	require.NoError(t, err)
	assert.Equal(t, market.Hold, rec.Signal)
	assert.Equal(t, 0.5, rec.Confidence)
}

func TestTechnicalOversoldOffsetByDowntrend(t *testing.T) {
	// steady decline drives RSI deep into oversold territory
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 200 - float64(i)*2
	}
	adv := NewTechnical()
	rec, err := adv.Recommend(context.Background(), "AAPL", Context{Bars: barsFromCloses("AAPL", closes)})
	require.NoError(t, err)

	// oversold +2 is offset by price below SMA50 -1, leaving a net +1
	// which is not enough conviction to flip away from HOLD
	assert.Equal(t, market.Hold, rec.Signal)
}

func TestTechnicalUptrendBuys(t *testing.T) {
	// gentle uptrend keeps RSI moderate while price sits above SMA50
	closes := make([]float64, 220)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.3
	}
	// a few small dips keep RSI out of overbought
	for i := 10; i < len(closes); i += 7 {
		closes[i] -= 1.5
	}
	adv := NewTechnical()
	rec, err := adv.Recommend(context.Background(), "AAPL", Context{Bars: barsFromCloses("AAPL", closes)})
	require.NoError(t, err)

	if rec.Signal == market.Buy {
		assert.Greater(t, rec.Confidence, 0.5)
		assert.LessOrEqual(t, rec.Confidence, 1.0)
	}
	assert.NotEqual(t, market.Sell, rec.Signal)
}

func floatPtr(v float64) *float64 { return &v }

func TestFundamentalNoSnapshotHolds(t *testing.T) {
	adv := NewFundamental()
	rec, err := adv.Recommend(context.Background(), "AAPL", Context{})
	require.NoError(t, err)
	assert.Equal(t, market.Hold, rec.Signal)
	assert.Equal(t, 0.5, rec.Confidence)
}

func TestFundamentalCheapGrowerBuys(t *testing.T) {
	adv := NewFundamental()
	snap := &market.FundamentalSnapshot{
		Symbol:        "AAPL",
		PERatio:       floatPtr(15), // well under the 25 industry average
		MarketCap:     floatPtr(2.5e12),
		RevenueGrowth: floatPtr(14),
		DebtToEquity:  floatPtr(1.2),
	}
	rec, err := adv.Recommend(context.Background(), "AAPL", Context{Fundamentals: snap})
	require.NoError(t, err)
	assert.Equal(t, market.Buy, rec.Signal)
	assert.Greater(t, rec.Confidence, 0.5)
}

func TestFundamentalExpensiveLeveragedSells(t *testing.T) {
	adv := NewFundamental()
	snap := &market.FundamentalSnapshot{
		Symbol:        "TSLA",
		PERatio:       floatPtr(90), // over 60 * 1.2
		MarketCap:     floatPtr(8e11),
		RevenueGrowth: floatPtr(-3),
		DebtToEquity:  floatPtr(2.5),
	}
	rec, err := adv.Recommend(context.Background(), "TSLA", Context{Fundamentals: snap})
	require.NoError(t, err)
	assert.Equal(t, market.Sell, rec.Signal)
}

func TestFundamentalUnknownSymbolUsesDefaultPE(t *testing.T) {
	adv := NewFundamental()
	assert.Equal(t, 20.0, adv.industryPE("ZZZZ"))
	assert.Equal(t, 60.0, adv.industryPE("TSLA"))
}

func TestSentimentNoNewsHolds(t *testing.T) {
	adv := NewSentiment()
	rec, err := adv.Recommend(context.Background(), "AAPL", Context{})
	require.NoError(t, err)
	assert.Equal(t, market.Hold, rec.Signal)
	assert.Equal(t, 0.5, rec.Confidence)
}

func TestSentimentPositiveNewsBuys(t *testing.T) {
	adv := NewSentiment()
	news := []market.Headline{
		{Symbol: "AAPL", Text: "Apple beats expectations with record quarterly profit"},
		{Symbol: "AAPL", Text: "Analysts upgrade Apple on strong iPhone growth"},
	}
	rec, err := adv.Recommend(context.Background(), "AAPL", Context{News: news})
	require.NoError(t, err)
	assert.Equal(t, market.Buy, rec.Signal)
	assert.Greater(t, rec.Confidence, 0.5)
}

func TestSentimentNegativeNewsSells(t *testing.T) {
	adv := NewSentiment()
	news := []market.Headline{
		{Symbol: "TSLA", Text: "Tesla shares plunge after earnings miss"},
		{Symbol: "TSLA", Text: "Regulators open investigation into vehicle recall"},
	}
	rec, err := adv.Recommend(context.Background(), "TSLA", Context{News: news})
	require.NoError(t, err)
	assert.Equal(t, market.Sell, rec.Signal)
}

func TestSentimentNeutralKeywordsHold(t *testing.T) {
	adv := NewSentiment()
	news := []market.Headline{
		{Symbol: "AAPL", Text: "Apple announces annual developer conference dates"},
	}
	rec, err := adv.Recommend(context.Background(), "AAPL", Context{News: news})
	require.NoError(t, err)
	assert.Equal(t, market.Hold, rec.Signal)
}

func mustRec(t *testing.T, advisor, symbol string, sig market.Signal, conf float64) market.Recommendation {
	t.Helper()
	rec, err := market.NewRecommendation(advisor, symbol, sig, conf, "")
	require.NoError(t, err)
	return rec
}

func TestWeightedVoteBuySizing(t *testing.T) {
	agg := NewWeightedVote()
	state := market.PortfolioState{
		Cash:       100000,
		Positions:  map[string]int{},
		TotalValue: 100000,
	}
	recs := []market.Recommendation{
		mustRec(t, "technical", "AAPL", market.Buy, 0.8),
		mustRec(t, "fundamental", "AAPL", market.Buy, 0.7),
		mustRec(t, "sentiment", "AAPL", market.Hold, 0.5),
	}

	intent := agg.Aggregate("AAPL", 100, recs, state)
	require.NotNil(t, intent)
	assert.Equal(t, market.Buy, intent.Direction)
	// net vote 1.5 caps the scale at 1, so the target is the full 30%
	// position limit: 30000 / 100 = 300 shares
	assert.Equal(t, 300, intent.Quantity)
}

func TestWeightedVoteScalesWithConviction(t *testing.T) {
	agg := NewWeightedVote()
	state := market.PortfolioState{
		Cash:       100000,
		Positions:  map[string]int{},
		TotalValue: 100000,
	}
	recs := []market.Recommendation{
		mustRec(t, "technical", "AAPL", market.Buy, 0.5),
	}

	intent := agg.Aggregate("AAPL", 100, recs, state)
	require.NotNil(t, intent)
	// 0.5 conviction of the 30000 limit is 15000, 150 shares at $100
	assert.Equal(t, 150, intent.Quantity)
}

func TestWeightedVoteBelowConvictionSkips(t *testing.T) {
	agg := NewWeightedVote()
	state := market.PortfolioState{Cash: 100000, TotalValue: 100000}
	recs := []market.Recommendation{
		mustRec(t, "technical", "AAPL", market.Buy, 0.6),
		mustRec(t, "fundamental", "AAPL", market.Sell, 0.5),
	}

	assert.Nil(t, agg.Aggregate("AAPL", 100, recs, state))
}

func TestWeightedVoteSellLiquidates(t *testing.T) {
	agg := NewWeightedVote()
	state := market.PortfolioState{
		Cash:       50000,
		Positions:  map[string]int{"AAPL": 120},
		TotalValue: 62000,
	}
	recs := []market.Recommendation{
		mustRec(t, "technical", "AAPL", market.Sell, 0.8),
	}

	intent := agg.Aggregate("AAPL", 100, recs, state)
	require.NotNil(t, intent)
	assert.Equal(t, market.Sell, intent.Direction)
	assert.Equal(t, 120, intent.Quantity)
}

func TestWeightedVoteSellWithoutPositionSkips(t *testing.T) {
	agg := NewWeightedVote()
	state := market.PortfolioState{Cash: 100000, TotalValue: 100000}
	recs := []market.Recommendation{
		mustRec(t, "technical", "AAPL", market.Sell, 0.9),
	}

	assert.Nil(t, agg.Aggregate("AAPL", 100, recs, state))
}

func TestWeightedVoteNoRecommendations(t *testing.T) {
	agg := NewWeightedVote()
	state := market.PortfolioState{Cash: 100000, TotalValue: 100000}
	assert.Nil(t, agg.Aggregate("AAPL", 100, nil, state))
}

func TestWeightedVoteCustomPolicy(t *testing.T) {
	agg := &WeightedVote{
		MinConviction: 0.3,
		Policy:        risk.Policy{MaxPositionPct: 0.10, CashReservePct: 0.10, FeeBuffer: 0.01},
	}
	state := market.PortfolioState{Cash: 100000, TotalValue: 100000}
	recs := []market.Recommendation{
		mustRec(t, "technical", "AAPL", market.Buy, 1.0),
	}

	intent := agg.Aggregate("AAPL", 100, recs, state)
	require.NotNil(t, intent)
	assert.Equal(t, 100, intent.Quantity)
}
