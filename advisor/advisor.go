// Package advisor produces trade recommendations from point-in-time
// market context and merges them into a single intent per symbol.
//
// Advisors are deliberately pluggable: the engine only sees the Advisor
// interface, so a rule-based advisor and an externally-arbitrated one are
// interchangeable. The implementations here are deterministic rules.
package advisor

import (
	"context"
	"time"

	"github.com/rustyeddy/hedgesim/market"
)

// Context is everything an advisor may look at for one symbol on one
// simulated date. It is assembled from as-of windows, so it can never
// contain information past Date.
type Context struct {
	Date         time.Time
	Price        float64
	Bars         []market.Bar
	Fundamentals *market.FundamentalSnapshot
	News         []market.Headline
}

// Advisor analyzes one symbol and returns a recommendation.
type Advisor interface {
	// Name returns a stable identifier like "technical".
	Name() string

	// Recommend returns a direction, a confidence in [0,1] and rationale
	// for the symbol given the context. Advisors with nothing to say
	// return a HOLD, not an error.
	Recommend(ctx context.Context, symbol string, mctx Context) (market.Recommendation, error)
}

func hold(name, symbol, rationale string) market.Recommendation {
	rec, _ := market.NewRecommendation(name, symbol, market.Hold, 0.5, rationale)
	return rec
}
