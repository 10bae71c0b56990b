package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"github.com/rustyeddy/hedgesim/market"
)

// Compile-time interface check.
var _ Provider = (*Alpaca)(nil)

// Alpaca serves daily bars and news from the Alpaca market-data API.
// Alpaca does not publish fundamentals, so FetchFundamentals always
// reports absent; the loader treats that as "no snapshot", not an error.
type Alpaca struct {
	client *marketdata.Client
}

// NewAlpaca creates an Alpaca provider with the given credentials.
// baseURL overrides the default data endpoint when non-empty.
func NewAlpaca(apiKey, apiSecret, baseURL string) *Alpaca {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if baseURL != "" {
		opts.BaseURL = baseURL
	}
	return &Alpaca{client: marketdata.NewClient(opts)}
}

func (a *Alpaca) FetchBars(ctx context.Context, symbol string, start, end time.Time) ([]market.Bar, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	alpacaBars, err := a.client.GetBars(strings.ToUpper(symbol), marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     start,
		End:       end,
		Feed:      "iex",
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca bars %s: %w", symbol, err)
	}

	bars := make([]market.Bar, 0, len(alpacaBars))
	for _, ab := range alpacaBars {
		bar, err := market.NewBar(
			strings.ToUpper(symbol),
			ab.Timestamp.UTC().Truncate(24*time.Hour),
			ab.Open, ab.High, ab.Low, ab.Close,
			int64(ab.Volume),
			ab.Close,
		)
		if err != nil {
			// upstream glitch in one bar should not sink the series
			continue
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func (a *Alpaca) FetchFundamentals(ctx context.Context, symbol string, asOf time.Time) (*market.FundamentalSnapshot, error) {
	return nil, nil
}

func (a *Alpaca) FetchNews(ctx context.Context, symbol string, asOf time.Time, lookbackDays int) ([]market.Headline, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	start := asOf.AddDate(0, 0, -lookbackDays)
	articles, err := a.client.GetNews(marketdata.GetNewsRequest{
		Symbols:            []string{strings.ToUpper(symbol)},
		Start:              start,
		End:                asOf,
		TotalLimit:         50,
		ExcludeContentless: true,
		Sort:               marketdata.SortDesc,
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca news %s: %w", symbol, err)
	}

	headlines := make([]market.Headline, 0, len(articles))
	for _, article := range articles {
		headlines = append(headlines, market.Headline{
			Symbol: strings.ToUpper(symbol),
			Date:   article.CreatedAt.UTC(),
			Text:   article.Headline,
			Source: article.Source,
			URL:    article.URL,
		})
	}
	return headlines, nil
}
