package advisor

import (
	"context"
	"fmt"

	"github.com/rustyeddy/hedgesim/market"
)

// Fundamental compares a company's valuation against an industry average
// and tilts on growth and leverage.
type Fundamental struct {
	// IndustryPE maps symbol to its industry's average P/E; the Default
	// value covers anything unlisted.
	IndustryPE map[string]float64
	DefaultPE  float64
}

// NewFundamental returns a Fundamental advisor seeded with a small
// large-cap table.
func NewFundamental() *Fundamental {
	return &Fundamental{
		IndustryPE: map[string]float64{
			"AAPL":  25,
			"MSFT":  30,
			"GOOGL": 22,
			"TSLA":  60,
			"AMZN":  50,
		},
		DefaultPE: 20,
	}
}

func (a *Fundamental) Name() string { return "fundamental" }

func (a *Fundamental) industryPE(symbol string) float64 {
	if pe, ok := a.IndustryPE[symbol]; ok {
		return pe
	}
	return a.DefaultPE
}

// Recommend holds at neutral confidence when no snapshot is available.
func (a *Fundamental) Recommend(_ context.Context, symbol string, mctx Context) (market.Recommendation, error) {
	snap := mctx.Fundamentals
	if snap == nil {
		return hold(a.Name(), symbol, "no fundamental data available"), nil
	}

	industry := a.industryPE(symbol)
	score := 0.0
	rationale := ""

	if snap.PERatio != nil {
		pe := *snap.PERatio
		switch {
		case pe > 0 && pe < industry*0.8:
			score += 2
		case pe > industry*1.2:
			score -= 2
		}
		rationale = fmt.Sprintf("P/E %.1f vs industry %.1f", pe, industry)
	} else {
		rationale = "P/E unknown"
	}

	if snap.RevenueGrowth != nil {
		growth := *snap.RevenueGrowth
		if growth > 10 {
			score++
		} else if growth < 0 {
			score--
		}
		rationale += fmt.Sprintf(", revenue growth %.1f%%", growth)
	}

	if snap.DebtToEquity != nil && *snap.DebtToEquity > 2 {
		score--
		rationale += fmt.Sprintf(", debt/equity %.2f", *snap.DebtToEquity)
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
		if !snap.Complete() {
			// thin data is weaker evidence
			confidence -= 0.1
		}
	}

	return market.NewRecommendation(a.Name(), symbol, sig, confidence, rationale)
}
