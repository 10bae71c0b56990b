package market

import (
	"fmt"
	"time"
)

// TradeIntent is a proposed trade before risk validation: a direction
// (never Hold), a desired share count and the reference price it was
// decided at. Quantity may be shrunk to zero by the validator.
type TradeIntent struct {
	Symbol    string
	Direction Signal
	Quantity  int
	Price     float64
	Rationale string
}

// TradeOrder is a validated, feasible trade ready for execution.
// Use NewTradeOrder; orders with zero quantity must never be constructed,
// the validator drops them instead.
type TradeOrder struct {
	Symbol    string
	Direction Signal
	Quantity  int
	Price     float64
	Date      time.Time
	Rationale string
}

// NewTradeOrder validates and constructs a TradeOrder.
func NewTradeOrder(symbol string, direction Signal, quantity int, price float64, date time.Time, rationale string) (TradeOrder, error) {
	if direction == Hold {
		return TradeOrder{}, fmt.Errorf("order %s: direction cannot be HOLD", symbol)
	}
	if quantity <= 0 {
		return TradeOrder{}, fmt.Errorf("order %s: quantity must be positive, got %d", symbol, quantity)
	}
	if price <= 0 {
		return TradeOrder{}, fmt.Errorf("order %s: price must be positive, got %.4f", symbol, price)
	}
	return TradeOrder{
		Symbol:    symbol,
		Direction: direction,
		Quantity:  quantity,
		Price:     price,
		Date:      date,
		Rationale: rationale,
	}, nil
}

// Notional returns quantity * price.
func (o TradeOrder) Notional() float64 {
	return float64(o.Quantity) * o.Price
}
