package sim

import "github.com/rustyeddy/hedgesim/market"

// TradePnLs computes realized P&L per matched buy/sell pair.
//
// Pairing is FIFO at whole-order granularity: per symbol, executed sells
// are matched one-to-one against executed buys in log order, and P&L for a
// pair is (sellPrice - buyPrice) * sellQuantity. Partial-lot consumption is
// deliberately not tracked; this is an approximation kept for parity with
// the reported figures, not full lot accounting.
func (s *Simulator) TradePnLs() []float64 {
	buys := make(map[string][]market.TradeOrder)
	sells := make(map[string][]market.TradeOrder)
	var symbols []string

	for _, entry := range s.log {
		if !entry.Executed {
			continue
		}
		sym := entry.Order.Symbol
		switch entry.Order.Direction {
		case market.Buy:
			if len(buys[sym]) == 0 && len(sells[sym]) == 0 {
				symbols = append(symbols, sym)
			}
			buys[sym] = append(buys[sym], entry.Order)
		case market.Sell:
			if len(buys[sym]) == 0 && len(sells[sym]) == 0 {
				symbols = append(symbols, sym)
			}
			sells[sym] = append(sells[sym], entry.Order)
		}
	}

	var pnls []float64
	for _, sym := range symbols {
		symBuys := buys[sym]
		for i, sell := range sells[sym] {
			if i >= len(symBuys) {
				break
			}
			buy := symBuys[i]
			pnls = append(pnls, (sell.Price-buy.Price)*float64(sell.Quantity))
		}
	}
	return pnls
}
