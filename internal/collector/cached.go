package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"PortfolioSentinel/internal/cache"
	"PortfolioSentinel/internal/metrics"
	"PortfolioSentinel/internal/model"
)

// CachedFetcher wraps a Fetcher with a byte cache keyed by symbol and window
// dates. Cache failures are logged and bypassed.
type CachedFetcher struct {
	Next    Fetcher
	Cache   cache.BytesCache
	TTL     time.Duration
	Metrics metrics.Recorder
}

func NewCachedFetcher(next Fetcher, c cache.BytesCache, ttl time.Duration, m metrics.Recorder) *CachedFetcher {
	if m == nil {
		m = metrics.Noop{}
	}
	return &CachedFetcher{Next: next, Cache: c, TTL: ttl, Metrics: m}
}

func (f *CachedFetcher) Name() string { return f.Next.Name() + "+cache" }

func cacheKey(source, symbol string, w model.Window) string {
	return fmt.Sprintf("bars:%s:%s:%s:%s", source, symbol, w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
}

func (f *CachedFetcher) FetchDailyBars(ctx context.Context, symbol string, w model.Window) (*model.PriceSeries, error) {
	key := cacheKey(f.Next.Name(), symbol, w)
	if b, ok, err := f.Cache.GetBytes(ctx, key); err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("cache read failed")
	} else if ok {
		var s model.PriceSeries
		if err := json.Unmarshal(b, &s); err == nil && s.Len() > 0 {
			f.Metrics.RecordCache(true)
			log.Debug().Str("symbol", symbol).Msg("price cache hit")
			return &s, nil
		}
		log.Warn().Str("symbol", symbol).Msg("discarding unreadable cache entry")
	}
	f.Metrics.RecordCache(false)

	s, err := f.Next.FetchDailyBars(ctx, symbol, w)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(s); err == nil {
		if err := f.Cache.SetBytes(ctx, key, b, f.TTL); err != nil {
			log.Warn().Err(err).Str("symbol", symbol).Msg("cache write failed")
		}
	}
	return s, nil
}
