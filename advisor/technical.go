package advisor

import (
	"context"
	"fmt"

	"github.com/rustyeddy/hedgesim/indicators"
	"github.com/rustyeddy/hedgesim/market"
)

// Technical scores price action with SMA-50, SMA-200 and RSI-14.
type Technical struct {
	RSIPeriod int
}

// NewTechnical returns a Technical advisor with the standard 14-period RSI.
func NewTechnical() *Technical {
	return &Technical{RSIPeriod: 14}
}

func (a *Technical) Name() string { return "technical" }

// Recommend needs at least 50 bars; with fewer it holds at neutral
// confidence. RSI extremes dominate, trend position tips the balance.
func (a *Technical) Recommend(_ context.Context, symbol string, mctx Context) (market.Recommendation, error) {
	if len(mctx.Bars) < 50 {
		return hold(a.Name(), symbol,
			fmt.Sprintf("insufficient history for technical analysis: %d bars, need 50", len(mctx.Bars))), nil
	}

	closes := make([]float64, len(mctx.Bars))
	for i, bar := range mctx.Bars {
		closes[i] = bar.Close
	}
	price := closes[len(closes)-1]

	sma50, err := indicators.SMA(closes, 50)
	if err != nil {
		return market.Recommendation{}, err
	}
	rsi := indicators.RSI(closes, a.RSIPeriod)

	var sma200 float64
	haveSMA200 := len(closes) >= 200
	if haveSMA200 {
		if sma200, err = indicators.SMA(closes, 200); err != nil {
			return market.Recommendation{}, err
		}
	}

	score := 0.0
	switch {
	case rsi < 30:
		score += 2 // oversold
	case rsi > 70:
		score -= 2 // overbought
	}
	if price > sma50 {
		score++
	} else {
		score--
	}
	if haveSMA200 {
		if sma50 > sma200 {
			score++
		} else {
			score--
		}
	}

	sig := market.Hold
	if score >= 2 {
		sig = market.Buy
	} else if score <= -2 {
		sig = market.Sell
	}

	confidence := 0.5
	if sig != market.Hold {
		confidence = 0.5 + 0.1*minF(absF(score), 4)
	}

	rationale := fmt.Sprintf("price %.2f vs SMA50 %.2f, RSI(%d) %.1f", price, sma50, a.RSIPeriod, rsi)
	if haveSMA200 {
		rationale += fmt.Sprintf(", SMA200 %.2f", sma200)
	}
	return market.NewRecommendation(a.Name(), symbol, sig, confidence, rationale)
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
