package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/rustyeddy/hedgesim/market"
)

// barRecord is the on-disk Parquet schema for daily bars.
type barRecord struct {
	Symbol    string  `parquet:"symbol"`
	Timestamp int64   `parquet:"timestamp,timestamp(millisecond)"` // Unix ms
	Open      float64 `parquet:"open"`
	High      float64 `parquet:"high"`
	Low       float64 `parquet:"low"`
	Close     float64 `parquet:"close"`
	Volume    int64   `parquet:"volume"`
	AdjClose  float64 `parquet:"adj_close"`
}

func barPath(dir, symbol string) string {
	return filepath.Join(dir, strings.ToUpper(symbol)+".parquet")
}

// SaveCache writes every loaded series (benchmark included) to one Parquet
// file per symbol under dir, so later runs can replay the same data
// offline via LoadCache.
func (ds *Dataset) SaveCache(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cache dir: %w", err)
	}

	write := func(symbol string, bars []market.Bar) error {
		if len(bars) == 0 {
			return nil
		}
		records := make([]barRecord, len(bars))
		for i, b := range bars {
			records[i] = barRecord{
				Symbol:    b.Symbol,
				Timestamp: b.Date.UnixMilli(),
				Open:      b.Open,
				High:      b.High,
				Low:       b.Low,
				Close:     b.Close,
				Volume:    b.Volume,
				AdjClose:  b.AdjClose,
			}
		}
		if err := parquet.WriteFile(barPath(dir, symbol), records); err != nil {
			return fmt.Errorf("writing cache for %s: %w", symbol, err)
		}
		return nil
	}

	for _, symbol := range ds.symbols {
		if err := write(symbol, ds.bars[symbol]); err != nil {
			return err
		}
	}
	if ds.benchmark != "" {
		if err := write(ds.benchmark, ds.benchBars); err != nil {
			return err
		}
	}
	return nil
}

// ReadCachedBars reads one symbol's cached bars from dir, restricted to
// [start, end]. A missing file returns an empty series and no error.
func ReadCachedBars(dir, symbol string, start, end time.Time) ([]market.Bar, error) {
	path := barPath(dir, symbol)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	records, err := parquet.ReadFile[barRecord](path)
	if err != nil {
		return nil, fmt.Errorf("reading cache %s: %w", path, err)
	}

	var bars []market.Bar
	for _, r := range records {
		date := time.UnixMilli(r.Timestamp).UTC()
		if date.Before(start) || date.After(end) {
			continue
		}
		bar, err := market.NewBar(r.Symbol, date, r.Open, r.High, r.Low, r.Close, r.Volume, r.AdjClose)
		if err != nil {
			return nil, fmt.Errorf("cache %s: %w", path, err)
		}
		bars = append(bars, bar)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}
