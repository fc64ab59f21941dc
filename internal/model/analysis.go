package model

import "time"

// SymbolAnalysis is the combined result for one (account, symbol) pair.
type SymbolAnalysis struct {
	Position       Position           `json:"position_data"`
	ResolvedSymbol string             `json:"resolved_symbol"`
	Technical      *TechnicalAnalysis `json:"technical_analysis"`
	Research       *Sentiment         `json:"research_analysis"`
	Summary        Summary            `json:"summary"`
}

// AnalysisReport maps account type label to symbol to analysis.
type AnalysisReport struct {
	RunID       string                                `json:"run_id"`
	GeneratedAt time.Time                             `json:"generated_at"`
	Accounts    map[string]map[string]*SymbolAnalysis `json:"accounts"`
}

// NewAnalysisReport creates an empty report.
func NewAnalysisReport(runID string, at time.Time) *AnalysisReport {
	return &AnalysisReport{
		RunID:       runID,
		GeneratedAt: at,
		Accounts:    make(map[string]map[string]*SymbolAnalysis),
	}
}

// Empty reports whether no symbol was analysed.
func (r *AnalysisReport) Empty() bool {
	if r == nil {
		return true
	}
	for _, syms := range r.Accounts {
		if len(syms) > 0 {
			return false
		}
	}
	return true
}

// Get returns the analysis for account and symbol, or nil.
func (r *AnalysisReport) Get(account, symbol string) *SymbolAnalysis {
	if r == nil {
		return nil
	}
	return r.Accounts[account][symbol]
}
