// Package provider abstracts upstream market data: daily price bars,
// fundamental snapshots, and news headlines. Implementations may fail per
// symbol; callers degrade to empty results rather than aborting a run.
package provider

import (
	"context"
	"time"

	"github.com/rustyeddy/hedgesim/market"
)

// Provider fetches historical market data for one symbol at a time.
type Provider interface {
	// FetchBars returns daily bars for [start, end], ordered by date.
	FetchBars(ctx context.Context, symbol string, start, end time.Time) ([]market.Bar, error)

	// FetchFundamentals returns the snapshot known as of the given date,
	// or nil when the provider has none for the symbol.
	FetchFundamentals(ctx context.Context, symbol string, asOf time.Time) (*market.FundamentalSnapshot, error)

	// FetchNews returns headlines published within lookbackDays before
	// asOf, newest first.
	FetchNews(ctx context.Context, symbol string, asOf time.Time, lookbackDays int) ([]market.Headline, error)
}
