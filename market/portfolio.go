package market

import "time"

// PortfolioState is an immutable snapshot of the portfolio at a date.
// Positions map symbol to share count; only symbols with a positive count
// are present. Snapshots are copies, never aliases of live state.
type PortfolioState struct {
	Cash       float64
	Positions  map[string]int
	TotalValue float64
	Date       time.Time
}

// PositionValue returns the market value of one position at the given price.
func (p PortfolioState) PositionValue(symbol string, price float64) float64 {
	return float64(p.Positions[symbol]) * price
}

// Weight returns a position's fraction of total portfolio value, 0 when the
// portfolio is empty.
func (p PortfolioState) Weight(symbol string, price float64) float64 {
	if p.TotalValue == 0 {
		return 0
	}
	return p.PositionValue(symbol, price) / p.TotalValue
}

// Copy returns a deep copy of the snapshot.
func (p PortfolioState) Copy() PortfolioState {
	positions := make(map[string]int, len(p.Positions))
	for sym, qty := range p.Positions {
		positions[sym] = qty
	}
	return PortfolioState{
		Cash:       p.Cash,
		Positions:  positions,
		TotalValue: p.TotalValue,
		Date:       p.Date,
	}
}
