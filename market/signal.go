package market

import "fmt"

// Signal is an advisory direction.
type Signal int8

const (
	Hold Signal = iota
	Buy
	Sell
)

func (s Signal) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// ParseSignal converts "BUY"/"SELL"/"HOLD" to a Signal.
func ParseSignal(s string) (Signal, error) {
	switch s {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	case "HOLD":
		return Hold, nil
	}
	return Hold, fmt.Errorf("unknown signal %q", s)
}

// Recommendation is the output of a single advisor for one symbol on one
// date: a direction, a confidence in [0,1], and free-form rationale.
type Recommendation struct {
	Advisor    string
	Symbol     string
	Signal     Signal
	Confidence float64
	Rationale  string
}

// NewRecommendation validates and constructs a Recommendation.
func NewRecommendation(advisor, symbol string, sig Signal, confidence float64, rationale string) (Recommendation, error) {
	if confidence < 0 || confidence > 1 {
		return Recommendation{}, fmt.Errorf("recommendation %s/%s: confidence must be in [0,1], got %.3f", advisor, symbol, confidence)
	}
	return Recommendation{
		Advisor:    advisor,
		Symbol:     symbol,
		Signal:     sig,
		Confidence: confidence,
		Rationale:  rationale,
	}, nil
}
