// Package journal records order fills and daily equity snapshots for
// audit. The simulation core never reads the journal back; it exists so a
// run can be inspected after the fact.
package journal

import "time"

// OrderRecord is one applied (or refused) order.
type OrderRecord struct {
	OrderID  string
	RunID    string
	Symbol   string
	Side     string // "BUY" or "SELL"
	Quantity int
	Price    float64
	Date     time.Time
	Executed bool
	Reason   string
}

// EquityRecord is one end-of-day portfolio valuation.
type EquityRecord struct {
	RunID      string
	Date       time.Time
	Cash       float64
	TotalValue float64
	Positions  int // distinct symbols held
}

type Journal interface {
	RecordOrder(OrderRecord) error
	RecordEquity(EquityRecord) error
	Close() error
}

// Nop is a Journal that discards everything.
type Nop struct{}

func (Nop) RecordOrder(OrderRecord) error   { return nil }
func (Nop) RecordEquity(EquityRecord) error { return nil }
func (Nop) Close() error                    { return nil }
