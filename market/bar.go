// Package market defines the shared value types used across the
// simulation: price bars, fundamentals, news, signals, intents, orders
// and portfolio snapshots.
package market

import (
	"fmt"
	"time"
)

// Bar is one symbol's OHLCV record for a single trading date.
// Bars are immutable once constructed; use NewBar to get validation.
type Bar struct {
	Symbol   string
	Date     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   int64
	AdjClose float64
}

// NewBar validates and constructs a Bar. High must bound open/low/close
// from above, low from below, prices must be positive and volume
// non-negative.
func NewBar(symbol string, date time.Time, open, high, low, close float64, volume int64, adjClose float64) (Bar, error) {
	if symbol == "" {
		return Bar{}, fmt.Errorf("bar: symbol is required")
	}
	if open <= 0 || high <= 0 || low <= 0 || close <= 0 {
		return Bar{}, fmt.Errorf("bar %s %s: prices must be positive", symbol, date.Format("2006-01-02"))
	}
	if high < open || high < low || high < close {
		return Bar{}, fmt.Errorf("bar %s %s: high %.4f below open/low/close", symbol, date.Format("2006-01-02"), high)
	}
	if low > open || low > close {
		return Bar{}, fmt.Errorf("bar %s %s: low %.4f above open/close", symbol, date.Format("2006-01-02"), low)
	}
	if volume < 0 {
		return Bar{}, fmt.Errorf("bar %s %s: volume must be non-negative, got %d", symbol, date.Format("2006-01-02"), volume)
	}
	return Bar{
		Symbol:   symbol,
		Date:     date,
		Open:     open,
		High:     high,
		Low:      low,
		Close:    close,
		Volume:   volume,
		AdjClose: adjClose,
	}, nil
}
