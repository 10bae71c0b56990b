// Package metrics computes performance statistics over a portfolio value
// series and a list of realized trade P&Ls. All functions are pure and
// resolve degenerate inputs (empty series, zero variance, zero capital)
// to 0 rather than NaN or Inf.
package metrics

import "math"

// Returns computes simple period returns (v[i]-v[i-1])/v[i-1].
// Fewer than two values yields an empty slice.
func Returns(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (values[i]-prev)/prev)
	}
	return returns
}

// Sharpe computes the annualized Sharpe ratio of the given period returns.
// riskFreeAnnual is an annual rate converted to per-period by dividing by
// periodsPerYear. Zero-variance or empty inputs return 0.
func Sharpe(returns []float64, riskFreeAnnual float64, periodsPerYear int) float64 {
	if len(returns) == 0 || periodsPerYear <= 0 {
		return 0
	}
	perPeriodRF := riskFreeAnnual / float64(periodsPerYear)

	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - perPeriodRF
	}

	sd := stddev(excess)
	if sd == 0 {
		return 0
	}
	return mean(excess) / sd * math.Sqrt(float64(periodsPerYear))
}

// Sortino is like Sharpe but divides by the deviation of only the negative
// excess returns. No negative excess returns, or zero downside deviation,
// returns 0.
func Sortino(returns []float64, riskFreeAnnual float64, periodsPerYear int) float64 {
	if len(returns) == 0 || periodsPerYear <= 0 {
		return 0
	}
	perPeriodRF := riskFreeAnnual / float64(periodsPerYear)

	excess := make([]float64, len(returns))
	var downside []float64
	for i, r := range returns {
		excess[i] = r - perPeriodRF
		if excess[i] < 0 {
			downside = append(downside, excess[i])
		}
	}

	sd := stddev(downside)
	if sd == 0 {
		return 0
	}
	return mean(excess) / sd * math.Sqrt(float64(periodsPerYear))
}

// MaxDrawdown returns the largest peak-to-trough decline of the value
// series as a positive percentage in [0,100]. Empty input returns 0.
func MaxDrawdown(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	peak := values[0]
	worst := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			dd := (v - peak) / peak
			if dd < worst {
				worst = dd
			}
		}
	}
	return math.Abs(worst) * 100
}

// WinLossCounts counts strictly positive and strictly negative P&Ls.
// Zero-P&L trades count as neither.
func WinLossCounts(pnls []float64) (wins, losses int) {
	for _, pnl := range pnls {
		switch {
		case pnl > 0:
			wins++
		case pnl < 0:
			losses++
		}
	}
	return wins, losses
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev is the population standard deviation.
func stddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}
