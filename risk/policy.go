// Package risk validates proposed trades against portfolio constraints.
// Validation is pure: the same inputs always produce the same feasible
// quantity, and a returned quantity never exceeds the requested one.
package risk

// Policy holds the portfolio constraints applied to every buy.
type Policy struct {
	// MaxPositionPct caps a single position's market value as a fraction
	// of total portfolio value (e.g. 0.3 for 30%).
	MaxPositionPct float64

	// CashReservePct is the fraction of total portfolio value that must
	// remain in cash after a buy (e.g. 0.1 for 10%).
	CashReservePct float64

	// FeeBuffer pads buy cost to cover fees/slippage (e.g. 0.01 for 1%).
	FeeBuffer float64
}

// DefaultPolicy mirrors the stock configuration: 30% per-position cap,
// 10% cash reserve, 1% fee buffer.
func DefaultPolicy() Policy {
	return Policy{
		MaxPositionPct: 0.30,
		CashReservePct: 0.10,
		FeeBuffer:      0.01,
	}
}
