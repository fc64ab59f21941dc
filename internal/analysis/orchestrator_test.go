package analysis

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"PortfolioSentinel/internal/collector"
	"PortfolioSentinel/internal/holdings"
	"PortfolioSentinel/internal/model"
	"PortfolioSentinel/internal/sentiment"
)

var testNow = time.Date(2025, 6, 2, 16, 0, 0, 0, time.UTC)

func newTestOrchestrator(f collector.Fetcher) *Orchestrator {
	o := New(f, Options{LookbackDays: 300, Workers: 2, Timeout: time.Second})
	o.Now = func() time.Time { return testNow }
	return o
}

func account(id string, symbols ...string) model.Account {
	a := model.Account{ID: id, Type: holdings.AccountTypeOf(id)}
	for _, s := range symbols {
		a.Positions = append(a.Positions, model.Position{Symbol: s, Name: s + " Corp"})
	}
	return a
}

type stubAnalyzer struct {
	mu   sync.Mutex
	seen map[string]int
	err  error
}

func (s *stubAnalyzer) Name() string { return "stub" }

func (s *stubAnalyzer) Analyze(_ context.Context, symbol string, headlines []model.Headline) (*model.Sentiment, error) {
	s.mu.Lock()
	if s.seen == nil {
		s.seen = make(map[string]int)
	}
	s.seen[symbol] = len(headlines)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return &model.Sentiment{Sentiment: "bullish", FutureOutlook: "steady", RecentNews: headlines}, nil
}

func TestRunRisingSeries(t *testing.T) {
	o := newTestOrchestrator(&collector.MockFetcher{Price: 100, Drift: 0.002})
	report := o.Run(context.Background(), []model.Account{account("tfsa-1", "AAA")})

	got := report.Get("TFSA", "AAA")
	if got == nil {
		t.Fatalf("missing TFSA/AAA, accounts=%v", report.Accounts)
	}
	if got.Technical.Failed() {
		t.Fatalf("unexpected technical error %q", got.Technical.Error)
	}
	if got.Technical.SMA == nil || got.Technical.SMA.Trend != model.SignalBullish {
		t.Fatalf("expected bullish trend, got %+v", got.Technical.SMA)
	}
	if got.ResolvedSymbol != "AAA.TO" {
		t.Errorf("resolved = %q, want AAA.TO", got.ResolvedSymbol)
	}
	if got.Research == nil || got.Research.Error == "" {
		t.Errorf("expected research error without analyzer, got %+v", got.Research)
	}
	if report.RunID == "" || !report.GeneratedAt.Equal(testNow) {
		t.Errorf("bad report header: %q %v", report.RunID, report.GeneratedAt)
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	f := &collector.MockFetcher{
		Price:  50,
		Drift:  0.001,
		Errors: map[string]error{"BAD.TO": errors.New("boom")},
		Panics: map[string]bool{"BOOM": true},
	}
	o := newTestOrchestrator(f)
	report := o.Run(context.Background(), []model.Account{account("tfsa-1", "BAD", "GOOD", "BOOM")})

	bad := report.Get("TFSA", "BAD")
	if bad == nil || bad.Technical.Error != ErrNoHistory {
		t.Fatalf("BAD: want %q, got %+v", ErrNoHistory, bad)
	}
	if bad.Summary.OverallRecommendation != model.RecommendHold {
		t.Errorf("BAD: recommendation %s, want HOLD", bad.Summary.OverallRecommendation)
	}
	good := report.Get("TFSA", "GOOD")
	if good == nil || good.Technical.Failed() {
		t.Fatalf("GOOD should be populated, got %+v", good)
	}
	boom := report.Get("TFSA", "BOOM")
	if boom == nil || !strings.Contains(boom.Technical.Error, "panic") {
		t.Fatalf("BOOM: expected panic error, got %+v", boom)
	}
}

func TestRunAllAccounts(t *testing.T) {
	f := &collector.MockFetcher{Price: 20, Drift: -0.001}
	o := newTestOrchestrator(f)
	accounts := []model.Account{
		account("tfsa-1", "AAA"),
		account("rrsp-2", "BBB", ""),
		account("non-registered-3", "AAA"),
		account("tfsa-9", "AAA"),
	}
	report := o.Run(context.Background(), accounts)

	tests := []struct {
		account, symbol string
	}{
		{"TFSA", "AAA"},
		{"RRSP", "BBB"},
		{"NON-REGISTERED", "AAA"},
		{"TFSA", "AAA (tfsa-9)"},
	}
	for _, tt := range tests {
		if report.Get(tt.account, tt.symbol) == nil {
			t.Errorf("missing %s/%s", tt.account, tt.symbol)
		}
	}
	if n := len(report.Accounts["RRSP"]); n != 1 {
		t.Errorf("empty symbol should be skipped, RRSP has %d entries", n)
	}
	if c := f.Calls("AAA.TO"); c != 3 {
		t.Errorf("AAA.TO fetched %d times, want 3", c)
	}
}

func TestRunDuplicateSymbolInSameAccount(t *testing.T) {
	o := newTestOrchestrator(&collector.MockFetcher{Price: 20, Drift: 0.001})
	report := o.Run(context.Background(), []model.Account{
		account("tfsa-1", "AAA"),
		account("tfsa-2", "AAA", "AAA", "AAA"),
	})

	bucket := report.Accounts["TFSA"]
	if len(bucket) != 4 {
		t.Fatalf("TFSA has %d entries, want 4: %v", len(bucket), bucket)
	}
	for _, key := range []string{"AAA", "AAA (tfsa-2)", "AAA (tfsa-2 #2)", "AAA (tfsa-2 #3)"} {
		if bucket[key] == nil {
			t.Errorf("missing key %q", key)
		}
	}
}

func TestRunWithResearch(t *testing.T) {
	an := &stubAnalyzer{}
	o := newTestOrchestrator(&collector.MockFetcher{Price: 10, Drift: 0.003})
	o.Analyzer = an
	o.News = &collector.MockNews{Items: map[string][]model.Headline{
		"AAA.TO": {{Headline: "up", Source: "wire"}, {Headline: "more", Source: "wire"}},
	}}

	got := o.Run(context.Background(), []model.Account{account("tfsa-1", "AAA")}).Get("TFSA", "AAA")
	if got.Research.Failed() {
		t.Fatalf("unexpected research error %q", got.Research.Error)
	}
	if len(got.Research.RecentNews) != 2 || an.seen["AAA.TO"] != 2 {
		t.Errorf("headlines not passed through: %+v", got.Research.RecentNews)
	}
}

func TestRunResearchFailures(t *testing.T) {
	tests := []struct {
		name     string
		analyzer sentiment.Analyzer
		news     collector.NewsFetcher
		want     string
	}{
		{"disabled", sentiment.Disabled{Provider: "OpenAI"}, nil, "OpenAI API key not configured"},
		{"analyzer error", &stubAnalyzer{err: errors.New("rate limited")}, nil, "rate limited"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrchestrator(&collector.MockFetcher{Price: 10})
			o.Analyzer = tt.analyzer
			o.News = tt.news
			got := o.Run(context.Background(), []model.Account{account("rrsp-1", "AAA")}).Get("RRSP", "AAA")
			if got.Research.Error != tt.want {
				t.Errorf("research error = %q, want %q", got.Research.Error, tt.want)
			}
			if got.Technical.Failed() {
				t.Errorf("technical should survive research failure")
			}
		})
	}
}

func TestRunNewsFailureStillAnalyzes(t *testing.T) {
	an := &stubAnalyzer{}
	o := newTestOrchestrator(&collector.MockFetcher{Price: 10})
	o.Analyzer = an
	o.News = &collector.MockNews{Err: errors.New("search down")}

	got := o.Run(context.Background(), []model.Account{account("tfsa-1", "AAA")}).Get("TFSA", "AAA")
	if got.Research.Failed() {
		t.Fatalf("research should proceed without headlines, got %q", got.Research.Error)
	}
	if n, ok := an.seen["AAA.TO"]; !ok || n != 0 {
		t.Errorf("analyzer saw %d headlines (called=%v), want 0", n, ok)
	}
}

func TestRunEmpty(t *testing.T) {
	o := newTestOrchestrator(&collector.MockFetcher{})
	if r := o.Run(context.Background(), nil); !r.Empty() {
		t.Errorf("expected empty report")
	}
}
