package market

import "time"

// FundamentalSnapshot holds a company's fundamental metrics as of a date.
// Any field may be unknown; unknown fields are nil pointers.
type FundamentalSnapshot struct {
	Symbol       string
	Date         time.Time
	PERatio      *float64
	MarketCap    *float64
	RevenueGrowth *float64 // percent
	DebtToEquity *float64
}

// Complete reports whether every metric is present.
func (f FundamentalSnapshot) Complete() bool {
	return f.PERatio != nil &&
		f.MarketCap != nil &&
		f.RevenueGrowth != nil &&
		f.DebtToEquity != nil
}

// Headline is one news article used for sentiment analysis.
type Headline struct {
	Symbol string
	Date   time.Time
	Text   string
	Source string
	URL    string
}
