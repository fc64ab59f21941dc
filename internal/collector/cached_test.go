package collector

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"PortfolioSentinel/internal/cache"
	"PortfolioSentinel/internal/metrics"
	"PortfolioSentinel/internal/model"
)

func TestCachedFetcher_HitAvoidsUpstream(t *testing.T) {
	mock := &MockFetcher{Price: 50, Drift: 0.001}
	c := cache.NewTTLCache()
	f := NewCachedFetcher(mock, c, time.Hour, metrics.Noop{})
	w := testWindow()

	first, err := f.FetchDailyBars(context.Background(), "AAA", w)
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := f.FetchDailyBars(context.Background(), "AAA", w)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if mock.Calls("AAA") != 1 {
		t.Errorf("expected 1 upstream call, got %d", mock.Calls("AAA"))
	}
	if first.Len() != second.Len() || first.Closes()[0] != second.Closes()[0] {
		t.Error("cached series differs from original")
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 cache entry, got %d", c.Len())
	}
}

// recordingCache keeps every written entry for inspection.
type recordingCache struct {
	cache.Noop
	ttls    map[string]time.Duration
	entries map[string][]byte
}

func (c *recordingCache) SetBytes(_ context.Context, key string, v []byte, ttl time.Duration) error {
	c.entries[key], c.ttls[key] = v, ttl
	return nil
}

func TestCachedFetcher_StoresOnlyRawBarsWithTTL(t *testing.T) {
	rc := &recordingCache{ttls: map[string]time.Duration{}, entries: map[string][]byte{}}
	f := NewCachedFetcher(&MockFetcher{Price: 10}, rc, 6*time.Hour, nil)
	w := testWindow()

	if _, err := f.FetchDailyBars(context.Background(), "AAA", w); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	key := cacheKey("mock", "AAA", w)
	if len(rc.entries) != 1 || rc.entries[key] == nil {
		t.Fatalf("want a single bars entry %q, got %v", key, rc.ttls)
	}
	if rc.ttls[key] != 6*time.Hour {
		t.Errorf("ttl = %v, want 6h", rc.ttls[key])
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(rc.entries[key], &fields); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	for k := range fields {
		switch k {
		case "symbol", "bars", "start", "end", "fetched_at":
		default:
			t.Errorf("cache entry carries non-input field %q", k)
		}
	}
	var s model.PriceSeries
	if err := json.Unmarshal(rc.entries[key], &s); err != nil || s.Len() == 0 {
		t.Errorf("entry is not a price series: %v", err)
	}
}

func TestCachedFetcher_ErrorsNotCached(t *testing.T) {
	mock := &MockFetcher{Errors: map[string]error{"BAD": ErrNoData}}
	f := NewCachedFetcher(mock, cache.NewTTLCache(), time.Hour, nil)

	for i := 0; i < 2; i++ {
		if _, err := f.FetchDailyBars(context.Background(), "BAD", testWindow()); !errors.Is(err, ErrNoData) {
			t.Fatalf("expected ErrNoData, got %v", err)
		}
	}
	if mock.Calls("BAD") != 2 {
		t.Errorf("failures must not be cached, got %d calls", mock.Calls("BAD"))
	}
}

type brokenCache struct{ cache.Noop }

func (brokenCache) GetBytes(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func TestCachedFetcher_BypassesBrokenCache(t *testing.T) {
	mock := &MockFetcher{Price: 10}
	f := NewCachedFetcher(mock, brokenCache{}, time.Hour, nil)
	if _, err := f.FetchDailyBars(context.Background(), "AAA", testWindow()); err != nil {
		t.Fatalf("cache failure should be bypassed, got %v", err)
	}
}
