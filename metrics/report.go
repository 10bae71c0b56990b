package metrics

// Params controls rate conversion for the risk-adjusted ratios.
type Params struct {
	RiskFreeRate   float64 // annual, e.g. 0.02
	PeriodsPerYear int     // trading periods per year, e.g. 252
}

// DefaultParams returns a 2% annual risk-free rate over 252 trading days.
func DefaultParams() Params {
	return Params{RiskFreeRate: 0.02, PeriodsPerYear: 252}
}

// Report is the read-only summary of a completed run.
type Report struct {
	InitialCapital float64
	FinalValue     float64
	TotalReturn    float64 // percent
	SharpeRatio    float64
	SortinoRatio   float64
	MaxDrawdown    float64 // percent
	TotalTrades    int
	WinningTrades  int
	LosingTrades   int
}

// WinRate returns winning trades as a percentage of decided trades, 0 when
// no trade had a nonzero P&L.
func (r Report) WinRate() float64 {
	decided := r.WinningTrades + r.LosingTrades
	if decided == 0 {
		return 0
	}
	return float64(r.WinningTrades) / float64(decided) * 100
}

// ProfitLoss returns the absolute gain or loss over the run.
func (r Report) ProfitLoss() float64 {
	return r.FinalValue - r.InitialCapital
}

// NewReport assembles a Report from the value history and realized trade
// P&Ls. A zero initial capital yields a 0% total return rather than a
// division error.
func NewReport(initialCapital, finalValue float64, values []float64, totalTrades int, pnls []float64, params Params) Report {
	totalReturn := 0.0
	if initialCapital > 0 {
		totalReturn = (finalValue - initialCapital) / initialCapital * 100
	}

	returns := Returns(values)
	wins, losses := WinLossCounts(pnls)

	return Report{
		InitialCapital: initialCapital,
		FinalValue:     finalValue,
		TotalReturn:    totalReturn,
		SharpeRatio:    Sharpe(returns, params.RiskFreeRate, params.PeriodsPerYear),
		SortinoRatio:   Sortino(returns, params.RiskFreeRate, params.PeriodsPerYear),
		MaxDrawdown:    MaxDrawdown(values),
		TotalTrades:    totalTrades,
		WinningTrades:  wins,
		LosingTrades:   losses,
	}
}
