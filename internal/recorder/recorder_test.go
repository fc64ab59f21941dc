package recorder

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"PortfolioSentinel/internal/model"
)

func testReport(runID string, at time.Time) *model.AnalysisReport {
	r := model.NewAnalysisReport(runID, at)
	r.Accounts["TFSA"] = map[string]*model.SymbolAnalysis{
		"AAA": {
			Technical: &model.TechnicalAnalysis{
				RSI: &model.RSIBlock{Window: 14, Value: model.Some(55), Signal: model.SignalNeutral},
			},
			Summary: model.Summary{OverallRecommendation: model.RecommendBuy, Score: 1.5},
		},
		"BAD": {
			Technical: &model.TechnicalAnalysis{Error: "no historical data"},
			Summary:   model.Summary{OverallRecommendation: model.RecommendHold},
		},
	}
	r.Accounts["RRSP"] = map[string]*model.SymbolAnalysis{
		"CCC": {Technical: &model.TechnicalAnalysis{}},
	}
	return r
}

func TestNewRunRecord(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := NewRunRecord(testReport("r1", at), 3*time.Second)

	if rec.RunID != "r1" || !rec.Timestamp.Equal(at) || rec.Duration != 3*time.Second {
		t.Errorf("unexpected header %+v", rec)
	}
	if rec.Symbols != 3 || rec.Failed != 1 {
		t.Errorf("symbols=%d failed=%d, want 3 and 1", rec.Symbols, rec.Failed)
	}
}

func TestSQLiteRecorder_Runs(t *testing.T) {
	ctx := context.Background()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "db", "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := r.RecordRun(ctx, NewRunRecord(testReport("r1", t0), time.Second)); err != nil {
		t.Fatalf("record r1: %v", err)
	}
	if err := r.RecordRun(ctx, NewRunRecord(testReport("r2", t0.Add(24*time.Hour)), 1500*time.Millisecond)); err != nil {
		t.Fatalf("record r2: %v", err)
	}

	runs, err := r.Runs(ctx, 5)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(runs) != 2 || runs[0].RunID != "r2" {
		t.Fatalf("want newest first, got %+v", runs)
	}
	if runs[0].Duration != 1500*time.Millisecond || runs[1].Symbols != 3 || runs[1].Failed != 1 {
		t.Errorf("unexpected rows %+v", runs)
	}

	if err := r.RecordRun(ctx, NewRunRecord(testReport("r1", t0), time.Second)); err == nil {
		t.Errorf("duplicate run id should be rejected")
	}
}

// Only run metadata is written; no per-symbol analysis outlives a run.
func TestSQLiteRecorder_StoresRunMetadataOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := r.RecordRun(context.Background(), NewRunRecord(testReport("r1", time.Now()), 0)); err != nil {
		t.Fatalf("record: %v", err)
	}
	r.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		t.Fatalf("list tables: %v", err)
	}
	defer rows.Close()
	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatal(err)
		}
		tables = append(tables, name)
	}
	if len(tables) != 1 || tables[0] != "runs" {
		t.Errorf("tables = %v, want [runs]", tables)
	}
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	if err := r.RecordRun(context.Background(), RunRecord{RunID: "r"}); err != nil {
		t.Fatal(err)
	}
}
