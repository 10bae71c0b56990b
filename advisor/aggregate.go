package advisor

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/hedgesim/market"
	"github.com/rustyeddy/hedgesim/risk"
)

// Aggregator merges the recommendations for one symbol into at most one
// trade intent. A nil return means no trade.
type Aggregator interface {
	Aggregate(symbol string, price float64, recs []market.Recommendation, state market.PortfolioState) *market.TradeIntent
}

// WeightedVote nets confidence-weighted directions: each BUY adds its
// confidence, each SELL subtracts it, HOLD contributes nothing. The net
// must clear MinConviction or the symbol is skipped.
type WeightedVote struct {
	// MinConviction is the minimum absolute net vote required to trade.
	MinConviction float64

	// Policy bounds buy sizing to the maximum position weight.
	Policy risk.Policy
}

// NewWeightedVote returns a WeightedVote with the default risk policy and
// a 0.3 conviction floor.
func NewWeightedVote() *WeightedVote {
	return &WeightedVote{MinConviction: 0.3, Policy: risk.DefaultPolicy()}
}

// Aggregate sizes buys as a conviction-scaled share of the maximum position
// value and sells the whole position. Quantities here are desires; the risk
// validator has the final say.
func (w *WeightedVote) Aggregate(symbol string, price float64, recs []market.Recommendation, state market.PortfolioState) *market.TradeIntent {
	if len(recs) == 0 || price <= 0 {
		return nil
	}

	net := 0.0
	var voices []string
	for _, rec := range recs {
		switch rec.Signal {
		case market.Buy:
			net += rec.Confidence
		case market.Sell:
			net -= rec.Confidence
		}
		voices = append(voices, fmt.Sprintf("%s=%s(%.2f)", rec.Advisor, rec.Signal, rec.Confidence))
	}

	conviction := net
	if conviction < 0 {
		conviction = -conviction
	}
	if conviction < w.MinConviction {
		return nil
	}

	rationale := fmt.Sprintf("net vote %+.2f: %s", net, strings.Join(voices, ", "))

	if net > 0 {
		// scale the target position by how far conviction exceeds the
		// floor, capped at the full position limit
		scale := conviction
		if scale > 1 {
			scale = 1
		}
		target := state.TotalValue * w.Policy.MaxPositionPct * scale
		qty := int(target / price)
		if qty <= 0 {
			return nil
		}
		return &market.TradeIntent{
			Symbol:    symbol,
			Direction: market.Buy,
			Quantity:  qty,
			Price:     price,
			Rationale: rationale,
		}
	}

	held := state.Positions[symbol]
	if held <= 0 {
		return nil
	}
	return &market.TradeIntent{
		Symbol:    symbol,
		Direction: market.Sell,
		Quantity:  held,
		Price:     price,
		Rationale: rationale,
	}
}
