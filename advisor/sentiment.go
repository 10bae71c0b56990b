package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rustyeddy/hedgesim/market"
)

// Sentiment scores recent headlines with keyword polarity.
type Sentiment struct{}

// NewSentiment returns a keyword-based Sentiment advisor.
func NewSentiment() *Sentiment { return &Sentiment{} }

func (a *Sentiment) Name() string { return "sentiment" }

var positiveWords = []string{
	"beat", "beats", "surge", "surges", "record", "growth", "upgrade",
	"strong", "profit", "gain", "gains", "rally", "outperform", "soar",
	"exceed", "exceeds", "bullish",
}

var negativeWords = []string{
	"miss", "misses", "plunge", "plunges", "drop", "drops", "downgrade",
	"weak", "loss", "losses", "lawsuit", "recall", "layoff", "layoffs",
	"decline", "declines", "bearish", "investigation",
}

// Recommend holds at neutral confidence when no headlines are available.
func (a *Sentiment) Recommend(_ context.Context, symbol string, mctx Context) (market.Recommendation, error) {
	if len(mctx.News) == 0 {
		return hold(a.Name(), symbol, "no recent news"), nil
	}

	positive, negative := 0, 0
	for _, h := range mctx.News {
		text := strings.ToLower(h.Text)
		for _, w := range positiveWords {
			if strings.Contains(text, w) {
				positive++
			}
		}
		for _, w := range negativeWords {
			if strings.Contains(text, w) {
				negative++
			}
		}
	}

	total := positive + negative
	rationale := fmt.Sprintf("%d headlines, %d positive vs %d negative keyword hits",
		len(mctx.News), positive, negative)
	if total == 0 {
		return hold(a.Name(), symbol, rationale), nil
	}

	// net polarity in [-1, 1]
	polarity := float64(positive-negative) / float64(total)

	sig := market.Hold
	confidence := 0.5
	switch {
	case polarity > 0.2:
		sig = market.Buy
		confidence = 0.5 + 0.3*polarity
	case polarity < -0.2:
		sig = market.Sell
		confidence = 0.5 + 0.3*-polarity
	}
	return market.NewRecommendation(a.Name(), symbol, sig, confidence, rationale)
}
