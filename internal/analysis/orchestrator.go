package analysis

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"PortfolioSentinel/internal/calculator"
	"PortfolioSentinel/internal/collector"
	"PortfolioSentinel/internal/metrics"
	"PortfolioSentinel/internal/model"
	"PortfolioSentinel/internal/sentiment"
	"PortfolioSentinel/internal/strategy"
)

// ErrNoHistory is the technical error recorded when prices cannot be fetched.
const ErrNoHistory = "no historical data"

// Options tunes a run.
type Options struct {
	LookbackDays int
	Workers      int
	Timeout      time.Duration // per external call
	Indicators   calculator.Options
}

// Defaults.
const (
	DefaultLookbackDays = 365
	DefaultWorkers      = 4
	DefaultTimeout      = 30 * time.Second
	HeadlinesToFetch    = 10
)

// Orchestrator drives the per-symbol pipeline over every account.
type Orchestrator struct {
	Fetcher  collector.Fetcher
	News     collector.NewsFetcher // optional
	Analyzer sentiment.Analyzer    // optional; nil disables research
	Resolver *collector.Resolver
	Metrics  metrics.Recorder
	Options  Options
	Now      func() time.Time
}

// New creates an Orchestrator with defaults filled in.
func New(fetcher collector.Fetcher, opts Options) *Orchestrator {
	if opts.LookbackDays <= 0 {
		opts.LookbackDays = DefaultLookbackDays
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Orchestrator{
		Fetcher:  fetcher,
		Resolver: &collector.Resolver{},
		Metrics:  metrics.Noop{},
		Options:  opts,
		Now:      time.Now,
	}
}

type job struct {
	account model.Account
	pos     model.Position
}

// Run analyses every position of every account. It never fails: per-symbol
// errors and panics are recorded inside that symbol's result.
func (o *Orchestrator) Run(ctx context.Context, accounts []model.Account) *model.AnalysisReport {
	start := o.Now()
	runID := uuid.NewString()
	logger := log.With().Str("run_id", runID).Logger()
	window := model.LookbackWindow(start, o.Options.LookbackDays)

	var jobs []job
	for _, a := range accounts {
		logger.Info().Str("account", string(a.Type)).Int("positions", len(a.Positions)).Msg("analyzing account")
		for _, p := range a.Positions {
			if p.Symbol == "" {
				continue
			}
			jobs = append(jobs, job{account: a, pos: p})
		}
	}

	// Each job writes only its own slot.
	results := make([]*model.SymbolAnalysis, len(jobs))
	var g errgroup.Group
	g.SetLimit(o.Options.Workers)
	for i, j := range jobs {
		g.Go(func() error {
			results[i] = o.analyze(ctx, logger, j, window)
			return nil
		})
	}
	_ = g.Wait()

	report := model.NewAnalysisReport(runID, start)
	for i, j := range jobs {
		insert(report, j.account, results[i])
	}

	finished := o.Now()
	o.Metrics.RecordRun(finished, finished.Sub(start))
	logger.Info().Int("symbols", len(jobs)).Dur("took", finished.Sub(start)).Msg("analysis complete")
	return report
}

// insert places a result under its account type label. A symbol already
// present in that bucket is keyed with the account id, plus a counter when
// that key is taken too.
func insert(report *model.AnalysisReport, acct model.Account, res *model.SymbolAnalysis) {
	label := string(acct.Type)
	if label == "" {
		label = string(model.AccountUnknown)
	}
	bucket, ok := report.Accounts[label]
	if !ok {
		bucket = make(map[string]*model.SymbolAnalysis)
		report.Accounts[label] = bucket
	}
	sym := res.Position.Symbol
	key := sym
	if _, dup := bucket[key]; dup {
		key = fmt.Sprintf("%s (%s)", sym, acct.ID)
	}
	for n := 2; ; n++ {
		if _, dup := bucket[key]; !dup {
			break
		}
		key = fmt.Sprintf("%s (%s #%d)", sym, acct.ID, n)
	}
	bucket[key] = res
}

func (o *Orchestrator) analyze(ctx context.Context, parent zerolog.Logger, j job, w model.Window) (res *model.SymbolAnalysis) {
	logger := parent.With().Str("account", string(j.account.Type)).Str("symbol", j.pos.Symbol).Logger()
	res = &model.SymbolAnalysis{Position: j.pos}

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("symbol analysis panicked")
			o.Metrics.RecordSymbol(metrics.StatusPanic)
			res.Technical = &model.TechnicalAnalysis{Error: fmt.Sprintf("analysis failed: %v", r)}
			if res.Research == nil {
				res.Research = &model.Sentiment{Error: "analysis aborted"}
			}
			res.Summary = *strategy.Summarize(res.Technical, nil)
		}
	}()

	res.ResolvedSymbol = o.Resolver.Resolve(j.pos)
	logger.Info().Str("resolved", res.ResolvedSymbol).Msg("using symbol for price history")

	res.Technical = o.technical(ctx, logger, res.ResolvedSymbol, w)
	res.Research = o.research(ctx, logger, res.ResolvedSymbol)
	res.Summary = *strategy.Summarize(res.Technical, res.Research)

	if res.Technical.Failed() {
		o.Metrics.RecordSymbol(metrics.StatusNoData)
	} else {
		o.Metrics.RecordSymbol(metrics.StatusOK)
	}
	return res
}

func (o *Orchestrator) technical(ctx context.Context, logger zerolog.Logger, symbol string, w model.Window) *model.TechnicalAnalysis {
	fetchCtx, cancel := context.WithTimeout(ctx, o.Options.Timeout)
	defer cancel()

	start := time.Now()
	series, err := o.Fetcher.FetchDailyBars(fetchCtx, symbol, w)
	o.Metrics.RecordLatency("fetch_bars", time.Since(start).Seconds())
	if err != nil || series.Len() == 0 {
		logger.Warn().Err(err).Msg("no price history")
		o.Metrics.RecordError(o.Fetcher.Name())
		return &model.TechnicalAnalysis{Error: ErrNoHistory}
	}

	ta := calculator.Compute(series, o.Options.Indicators)
	strategy.Classify(ta)
	return ta
}

func (o *Orchestrator) research(ctx context.Context, logger zerolog.Logger, symbol string) *model.Sentiment {
	if o.Analyzer == nil {
		return &model.Sentiment{Error: sentiment.ErrNotConfigured.Error()}
	}
	if !sentiment.Enabled(o.Analyzer) {
		_, err := o.Analyzer.Analyze(ctx, symbol, nil)
		return &model.Sentiment{Error: errorText(err, "research unavailable")}
	}

	var headlines []model.Headline
	if o.News != nil {
		newsCtx, cancel := context.WithTimeout(ctx, o.Options.Timeout)
		start := time.Now()
		items, err := o.News.FetchNews(newsCtx, symbol, HeadlinesToFetch)
		cancel()
		o.Metrics.RecordLatency("fetch_news", time.Since(start).Seconds())
		if err != nil {
			// Proceed without headlines; the prompt says no news was found.
			logger.Warn().Err(err).Msg("failed to get news")
			o.Metrics.RecordError("news")
		}
		headlines = items
	}

	aCtx, cancel := context.WithTimeout(ctx, o.Options.Timeout)
	defer cancel()
	start := time.Now()
	s, err := o.Analyzer.Analyze(aCtx, symbol, headlines)
	o.Metrics.RecordLatency("sentiment", time.Since(start).Seconds())
	if err != nil {
		logger.Error().Err(err).Msg("research analysis failed")
		o.Metrics.RecordError(o.Analyzer.Name())
		return &model.Sentiment{Error: err.Error()}
	}
	return s
}

func errorText(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	return err.Error()
}
