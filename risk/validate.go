package risk

import (
	"math"

	"github.com/rustyeddy/hedgesim/market"
)

// ValidateBuy returns the feasible buy quantity for the desired quantity at
// the given price, applying the policy constraints in sequence. Each
// constraint can only shrink the quantity, never grow it; a quantity of 0
// means no order should be emitted.
//
// Constraint order: affordability (with fee buffer), position concentration
// cap, cash-reserve floor.
func ValidateBuy(p Policy, symbol string, desired int, price float64, state market.PortfolioState) int {
	if desired <= 0 || price <= 0 {
		return 0
	}
	qty := desired

	// Affordability: cost plus fee buffer must fit in cash.
	required := float64(qty) * price * (1 + p.FeeBuffer)
	if required > state.Cash {
		max := int(math.Floor(state.Cash / (1 + p.FeeBuffer) / price))
		if max <= 0 {
			return 0
		}
		qty = max
	}

	// Concentration: existing position value plus new cost stays under the
	// per-position cap.
	maxPositionValue := state.TotalValue * p.MaxPositionPct
	currentValue := state.PositionValue(symbol, price)
	cost := float64(qty) * price
	if currentValue+cost > maxPositionValue {
		headroom := maxPositionValue - currentValue
		if headroom <= 0 {
			return 0
		}
		if max := int(math.Floor(headroom / price)); max < qty {
			qty = max
		}
	}

	// Cash reserve: paying for the order must leave the floor intact.
	minReserve := state.TotalValue * p.CashReservePct
	remaining := state.Cash - float64(qty)*price*(1+p.FeeBuffer)
	if remaining < minReserve {
		available := state.Cash - minReserve
		if available <= 0 {
			return 0
		}
		if max := int(math.Floor(available / (1 + p.FeeBuffer) / price)); max < qty {
			qty = max
		}
	}

	if qty < 0 {
		return 0
	}
	return qty
}

// ValidateSell returns the feasible sell quantity: the desired quantity
// clamped to the currently held share count. Sells are never blocked by
// cash or concentration constraints, only by share availability.
func ValidateSell(symbol string, desired int, state market.PortfolioState) int {
	if desired <= 0 {
		return 0
	}
	held := state.Positions[symbol]
	if held <= 0 {
		return 0
	}
	if desired < held {
		return desired
	}
	return held
}
