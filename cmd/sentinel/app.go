package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"PortfolioSentinel/internal/analysis"
	"PortfolioSentinel/internal/cache"
	"PortfolioSentinel/internal/calculator"
	"PortfolioSentinel/internal/collector"
	"PortfolioSentinel/internal/config"
	"PortfolioSentinel/internal/holdings"
	"PortfolioSentinel/internal/logger"
	"PortfolioSentinel/internal/metrics"
	"PortfolioSentinel/internal/model"
	"PortfolioSentinel/internal/recorder"
	"PortfolioSentinel/internal/report"
	"PortfolioSentinel/internal/sentiment"
)

// The CLI is short lived, so global flags are fine.
var (
	configPath = flag.String("config", envOr("CONFIG_PATH", "configs/config.yaml"), "Path to the optional YAML config file")
	envFile    = flag.String("env-file", ".env", "Path to the optional .env file")
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// app holds the wiring shared by the subcommands.
type app struct {
	cfg      *config.Config
	recorder metrics.Recorder
	prom     *metrics.Prometheus
	cache    cache.BytesCache
	history  recorder.Recorder
}

// setup loads and validates the configuration, then initialises logging,
// metrics and the cache backend.
func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := logger.Init(logger.Config{
		Debug:  cfg.Log.Debug,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	}); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, recorder: metrics.Noop{}}
	if cfg.Metrics.File != "" {
		a.prom = metrics.New()
		a.recorder = a.prom
	}
	a.cache = openCache(ctx, cfg)
	a.history = openHistory(cfg)
	return a, nil
}

func openCache(ctx context.Context, cfg *config.Config) cache.BytesCache {
	switch cfg.Cache.Backend {
	case "memory":
		return cache.NewTTLCache()
	case "redis":
		rc := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("redis unavailable, caching disabled")
			_ = rc.Close()
			return cache.Noop{}
		}
		return rc
	case "sqlite":
		sc, err := cache.NewSQLiteCache(cfg.Cache.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite cache failed, caching disabled")
			return cache.Noop{}
		}
		if n, err := sc.Prune(ctx); err != nil {
			log.Warn().Err(err).Msg("prune sqlite cache")
		} else if n > 0 {
			log.Debug().Int64("removed", n).Msg("pruned expired cache entries")
		}
		return sc
	default:
		return cache.Noop{}
	}
}

func openHistory(cfg *config.Config) recorder.Recorder {
	if cfg.History.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	r, err := recorder.NewSQLiteRecorder(cfg.History.SQLitePath)
	if err != nil {
		log.Warn().Err(err).Msg("init sqlite run log failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return r
}

func (a *app) Close() {
	if err := a.cache.Close(); err != nil {
		log.Warn().Err(err).Msg("close cache")
	}
	if err := a.history.Close(); err != nil {
		log.Warn().Err(err).Msg("close run log")
	}
}

func (a *app) holdings() holdings.Provider {
	if a.cfg.Holdings.Source == "file" {
		return &holdings.FileProvider{Path: a.cfg.Holdings.File}
	}
	return holdings.NewWealthsimple(a.cfg.Credentials.Email, a.cfg.Credentials.Password, holdings.PromptOTP(os.Stdin, os.Stderr))
}

func (a *app) resolver() *collector.Resolver {
	overrides := make(map[string]string, len(a.cfg.Analysis.SymbolOverrides))
	for from, to := range a.cfg.Analysis.SymbolOverrides {
		overrides[strings.ToUpper(from)] = to
	}
	return &collector.Resolver{Overrides: overrides}
}

func (a *app) analyzer(ctx context.Context) (sentiment.Analyzer, error) {
	provider := "OpenAI"
	if a.cfg.Sentiment.Provider == "gemini" {
		provider = "Gemini"
	}
	if !a.cfg.SentimentEnabled() {
		log.Warn().Str("provider", provider).Msg("API key not configured, research analysis disabled")
		return sentiment.Disabled{Provider: provider}, nil
	}

	key, modelName := a.cfg.Sentiment.APIKey, a.cfg.Sentiment.Model
	if a.cfg.Sentiment.Provider == "gemini" {
		b, err := sentiment.NewGemini(ctx, key, modelName)
		if err != nil {
			return nil, err
		}
		return sentiment.NewLLMAnalyzer(b), nil
	}
	return sentiment.NewLLMAnalyzer(sentiment.NewOpenAI(key, modelName, a.cfg.Sentiment.BaseURL)), nil
}

func (a *app) orchestrator(ctx context.Context) (*analysis.Orchestrator, error) {
	var fetcher collector.Fetcher = collector.NewYahooFetcher(a.cfg.Proxy)
	if a.cfg.Cache.Backend != "none" {
		fetcher = collector.NewCachedFetcher(fetcher, a.cache, a.cfg.Cache.TTL, a.recorder)
	}
	an, err := a.analyzer(ctx)
	if err != nil {
		return nil, fmt.Errorf("init sentiment: %w", err)
	}

	o := analysis.New(fetcher, analysis.Options{
		LookbackDays: a.cfg.Analysis.LookbackDays,
		Workers:      a.cfg.Analysis.Workers,
		Timeout:      a.cfg.Analysis.FetchTimeout,
		Indicators: calculator.Options{
			Enabled:   a.cfg.EnabledIndicators(),
			RSIWindow: a.cfg.Analysis.RSIWindow,
		},
	})
	o.Analyzer = an
	if sentiment.Enabled(an) {
		o.News = collector.NewYahooNews(a.cfg.Proxy)
	}
	o.Resolver = a.resolver()
	o.Metrics = a.recorder
	return o, nil
}

// run performs one full report cycle: holdings, analysis, HTML and metrics.
func (a *app) run(ctx context.Context, reportPath string) (*model.AnalysisReport, error) {
	o, err := a.orchestrator(ctx)
	if err != nil {
		return nil, err
	}
	provider := a.holdings()
	accounts, err := provider.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("get holdings from %s: %w", provider.Name(), err)
	}

	start := time.Now()
	r := o.Run(ctx, accounts)
	took := time.Since(start)
	if errors.Is(ctx.Err(), context.Canceled) {
		return r, ctx.Err()
	}
	if _, err := report.WriteHTML(reportPath, r); err != nil {
		return r, err
	}
	if !r.Empty() {
		if err := a.history.RecordRun(ctx, recorder.NewRunRecord(r, took)); err != nil {
			log.Warn().Err(err).Msg("record run")
		}
	}
	if a.prom != nil {
		if err := a.prom.WriteTextfile(a.cfg.Metrics.File); err != nil {
			log.Warn().Err(err).Msg("write metrics")
		}
	}
	return r, nil
}
