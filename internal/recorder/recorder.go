package recorder

import (
	"context"
	"time"

	"PortfolioSentinel/internal/model"
)

// RunRecord is the metadata stored for one run. Per-symbol results are not kept.
type RunRecord struct {
	RunID     string
	Timestamp time.Time
	Symbols   int
	Failed    int
	Duration  time.Duration
}

// NewRunRecord counts the analysed and failed symbols of a report.
func NewRunRecord(r *model.AnalysisReport, took time.Duration) RunRecord {
	rec := RunRecord{RunID: r.RunID, Timestamp: r.GeneratedAt, Duration: took}
	for _, syms := range r.Accounts {
		for _, a := range syms {
			rec.Symbols++
			if a.Technical.Failed() {
				rec.Failed++
			}
		}
	}
	return rec
}

// Recorder persists run metadata for operational review.
type Recorder interface {
	RecordRun(ctx context.Context, rec RunRecord) error
	Close() error
}
