package provider

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rustyeddy/hedgesim/market"
)

// Compile-time interface check.
var _ Provider = (*Static)(nil)

// Static serves from in-memory data. It backs offline runs (bars loaded
// from a cache) and tests. Symbols configured with an error return it from
// every fetch, which lets tests exercise per-symbol degradation.
type Static struct {
	bars         map[string][]market.Bar
	fundamentals map[string]market.FundamentalSnapshot
	news         map[string][]market.Headline
	failures     map[string]error
}

// NewStatic creates an empty Static provider.
func NewStatic() *Static {
	return &Static{
		bars:         make(map[string][]market.Bar),
		fundamentals: make(map[string]market.FundamentalSnapshot),
		news:         make(map[string][]market.Headline),
		failures:     make(map[string]error),
	}
}

// AddBars appends bars for a symbol, keeping the series date-ordered.
func (s *Static) AddBars(symbol string, bars ...market.Bar) *Static {
	s.bars[symbol] = append(s.bars[symbol], bars...)
	sort.Slice(s.bars[symbol], func(i, j int) bool {
		return s.bars[symbol][i].Date.Before(s.bars[symbol][j].Date)
	})
	return s
}

// SetFundamentals stores the snapshot returned for a symbol.
func (s *Static) SetFundamentals(symbol string, snap market.FundamentalSnapshot) *Static {
	s.fundamentals[symbol] = snap
	return s
}

// AddNews appends headlines for a symbol.
func (s *Static) AddNews(symbol string, headlines ...market.Headline) *Static {
	s.news[symbol] = append(s.news[symbol], headlines...)
	return s
}

// FailSymbol makes every fetch for the symbol return err.
func (s *Static) FailSymbol(symbol string, err error) *Static {
	if err == nil {
		err = errors.New("symbol unavailable")
	}
	s.failures[symbol] = err
	return s
}

func (s *Static) FetchBars(_ context.Context, symbol string, start, end time.Time) ([]market.Bar, error) {
	if err := s.failures[symbol]; err != nil {
		return nil, err
	}
	var out []market.Bar
	for _, bar := range s.bars[symbol] {
		if bar.Date.Before(start) || bar.Date.After(end) {
			continue
		}
		out = append(out, bar)
	}
	return out, nil
}

func (s *Static) FetchFundamentals(_ context.Context, symbol string, _ time.Time) (*market.FundamentalSnapshot, error) {
	if err := s.failures[symbol]; err != nil {
		return nil, err
	}
	snap, ok := s.fundamentals[symbol]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

func (s *Static) FetchNews(_ context.Context, symbol string, asOf time.Time, lookbackDays int) ([]market.Headline, error) {
	if err := s.failures[symbol]; err != nil {
		return nil, err
	}
	cutoff := asOf.AddDate(0, 0, -lookbackDays)
	var out []market.Headline
	for _, h := range s.news[symbol] {
		if h.Date.Before(cutoff) || h.Date.After(asOf) {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}
