package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"PortfolioSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price  float64
	Drift  float64                  // per-bar fractional change of generated bars
	Series map[string][]model.OHLCV // fixed bars per symbol
	Errors map[string]error         // forced failure per symbol
	Panics map[string]bool

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, w model.Window) (*model.PriceSeries, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[symbol]++
	m.mu.Unlock()

	if m.Panics[symbol] {
		panic(fmt.Sprintf("mock fetcher panic for %s", symbol))
	}
	if err, ok := m.Errors[symbol]; ok {
		return nil, err
	}
	bars, ok := m.Series[symbol]
	if !ok {
		days := int(w.End.Sub(w.Start).Hours() / 24)
		bars = GenerateBars(m.Price, m.Drift, w.End, days)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("mock %s: %w", symbol, ErrNoData)
	}
	return &model.PriceSeries{Symbol: symbol, Bars: bars, Start: w.Start, End: w.End, FetchedAt: time.Now()}, nil
}

// Calls returns how often symbol was requested.
func (m *MockFetcher) Calls(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[symbol]
}

// GenerateBars builds count daily bars ending at end, compounding drift per bar.
func GenerateBars(basePrice, drift float64, end time.Time, count int) []model.OHLCV {
	if count <= 0 {
		return nil
	}
	if basePrice == 0 {
		basePrice = 100
	}
	bars := make([]model.OHLCV, count)
	p := basePrice
	for i := 0; i < count; i++ {
		bars[i] = model.OHLCV{
			Time:   end.AddDate(0, 0, -(count - 1 - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
		p *= 1 + drift
	}
	return bars
}

// MockNews returns fixed headlines per symbol.
type MockNews struct {
	Items map[string][]model.Headline
	Err   error
}

func (m *MockNews) FetchNews(_ context.Context, symbol string, max int) ([]model.Headline, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	items := m.Items[symbol]
	if max > 0 && len(items) > max {
		items = items[:max]
	}
	return items, nil
}
