// Package sim owns the portfolio ledger: it applies validated orders to
// cash and positions, marks the book to market, and keeps the append-only
// trade log and portfolio history for a run.
//
// The ledger is single-owner and single-threaded: all dates are processed
// in order by one goroutine, so there is no locking here.
package sim

import (
	"log/slog"
	"time"

	"github.com/rustyeddy/hedgesim/internal/id"
	"github.com/rustyeddy/hedgesim/journal"
	"github.com/rustyeddy/hedgesim/market"
)

// LogEntry is one order as it hit the ledger. Executed reports whether the
// balances moved; refused orders (insufficient cash or shares at apply
// time) stay in the log with Executed=false so callers can observe them.
type LogEntry struct {
	ID       string
	Order    market.TradeOrder
	Executed bool
	Note     string
}

// Simulator mutates the single portfolio ledger for a run. Snapshots
// appended to the history are copies and never mutated afterwards.
type Simulator struct {
	runID          string
	initialCapital float64
	cash           float64
	positions      map[string]int
	log            []LogEntry
	history        []market.PortfolioState
	journal        journal.Journal
	logger         *slog.Logger
}

// New creates a Simulator holding initialCapital in cash and no positions.
// The journal may be nil; recording is then skipped.
func New(initialCapital float64, j journal.Journal, runID string) *Simulator {
	if j == nil {
		j = journal.Nop{}
	}
	if runID == "" {
		runID = id.New()
	}
	return &Simulator{
		runID:          runID,
		initialCapital: initialCapital,
		cash:           initialCapital,
		positions:      make(map[string]int),
		journal:        j,
		logger:         slog.Default().With("component", "sim", "run", runID),
	}
}

// RunID returns the identifier under which this run is journaled.
func (s *Simulator) RunID() string { return s.runID }

// InitialCapital returns the starting cash amount.
func (s *Simulator) InitialCapital() float64 { return s.initialCapital }

// Apply applies each order to the ledger in input order. Cash and position
// sufficiency are re-checked here independently of any earlier validation:
// a batch can contain orders for several symbols validated against the
// same starting state, so the validator's view may be stale by the time a
// later order lands. Orders that fail the re-check are refused, not
// clamped, and recorded with Executed=false.
//
// Cash never goes negative and no position count ever goes negative.
func (s *Simulator) Apply(orders []market.TradeOrder, date time.Time) {
	for _, order := range orders {
		var entry LogEntry
		switch order.Direction {
		case market.Buy:
			entry = s.applyBuy(order)
		case market.Sell:
			entry = s.applySell(order)
		default:
			continue
		}
		s.log = append(s.log, entry)
		s.record(entry, date)
	}
}

func (s *Simulator) applyBuy(order market.TradeOrder) LogEntry {
	entry := LogEntry{ID: id.New(), Order: order}

	cost := order.Notional()
	if cost > s.cash {
		entry.Note = "insufficient cash"
		s.logger.Warn("buy refused",
			"symbol", order.Symbol, "quantity", order.Quantity,
			"cost", cost, "cash", s.cash)
		return entry
	}

	s.cash -= cost
	s.positions[order.Symbol] += order.Quantity
	entry.Executed = true
	return entry
}

func (s *Simulator) applySell(order market.TradeOrder) LogEntry {
	entry := LogEntry{ID: id.New(), Order: order}

	held := s.positions[order.Symbol]
	if held < order.Quantity {
		entry.Note = "insufficient shares"
		s.logger.Warn("sell refused",
			"symbol", order.Symbol, "quantity", order.Quantity, "held", held)
		return entry
	}

	s.cash += order.Notional()
	if held == order.Quantity {
		delete(s.positions, order.Symbol)
	} else {
		s.positions[order.Symbol] = held - order.Quantity
	}
	entry.Executed = true
	return entry
}

func (s *Simulator) record(entry LogEntry, date time.Time) {
	err := s.journal.RecordOrder(journal.OrderRecord{
		OrderID:  entry.ID,
		RunID:    s.runID,
		Symbol:   entry.Order.Symbol,
		Side:     entry.Order.Direction.String(),
		Quantity: entry.Order.Quantity,
		Price:    entry.Order.Price,
		Date:     date,
		Executed: entry.Executed,
		Reason:   entry.Order.Rationale,
	})
	if err != nil {
		s.logger.Error("journal order", "error", err)
	}
}

// MarkToMarket values the portfolio at the given closing prices and
// appends an immutable snapshot to the history. A symbol missing from
// prices contributes 0 for this date.
func (s *Simulator) MarkToMarket(prices map[string]float64, date time.Time) market.PortfolioState {
	positionsValue := 0.0
	for sym, qty := range s.positions {
		positionsValue += float64(qty) * prices[sym]
	}

	state := market.PortfolioState{
		Cash:       s.cash,
		Positions:  s.positions,
		TotalValue: s.cash + positionsValue,
		Date:       date,
	}.Copy()

	s.history = append(s.history, state)

	err := s.journal.RecordEquity(journal.EquityRecord{
		RunID:      s.runID,
		Date:       date,
		Cash:       state.Cash,
		TotalValue: state.TotalValue,
		Positions:  len(state.Positions),
	})
	if err != nil {
		s.logger.Error("journal equity", "error", err)
	}

	return state
}

// CurrentState returns the most recent snapshot, or a synthetic all-cash
// snapshot dated at the given time when nothing has been recorded yet.
func (s *Simulator) CurrentState(date time.Time) market.PortfolioState {
	if len(s.history) > 0 {
		return s.history[len(s.history)-1]
	}
	return market.PortfolioState{
		Cash:       s.cash,
		Positions:  s.positions,
		TotalValue: s.cash,
		Date:       date,
	}.Copy()
}

// History returns the recorded portfolio snapshots in chronological order.
func (s *Simulator) History() []market.PortfolioState { return s.history }

// Values returns the total portfolio value series.
func (s *Simulator) Values() []float64 {
	values := make([]float64, len(s.history))
	for i, state := range s.history {
		values[i] = state.TotalValue
	}
	return values
}

// Dates returns the snapshot dates.
func (s *Simulator) Dates() []time.Time {
	dates := make([]time.Time, len(s.history))
	for i, state := range s.history {
		dates[i] = state.Date
	}
	return dates
}

// Log returns the full trade log, refused orders included.
func (s *Simulator) Log() []LogEntry { return s.log }

// TradeCount returns the number of orders in the log, refused included.
func (s *Simulator) TradeCount() int { return len(s.log) }
