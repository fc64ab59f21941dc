package collector

import (
	"context"
	"errors"

	"PortfolioSentinel/internal/model"
)

// ErrNoData is returned when the upstream has no bars or headlines for a symbol.
var ErrNoData = errors.New("no data")

// Fetcher defines the interface for fetching daily price history.
type Fetcher interface {
	// FetchDailyBars returns bars inside the window, ordered by date with no
	// duplicate dates. An empty result is reported as ErrNoData.
	FetchDailyBars(ctx context.Context, symbol string, w model.Window) (*model.PriceSeries, error)
	Name() string
}

// NewsFetcher returns recent headlines for a symbol, newest first.
type NewsFetcher interface {
	FetchNews(ctx context.Context, symbol string, max int) ([]model.Headline, error)
}
