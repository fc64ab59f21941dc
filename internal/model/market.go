package model

import "time"

// OHLCV represents a single daily bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries holds daily bars for one symbol over a requested window.
// Bars are strictly increasing by date with no duplicate dates.
type PriceSeries struct {
	Symbol    string    `json:"symbol"`
	Bars      []OHLCV   `json:"bars"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Len returns the number of bars.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// Closes extracts the closing prices in order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, s.Len())
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Highs extracts the high prices in order.
func (s *PriceSeries) Highs() []float64 {
	out := make([]float64, s.Len())
	for i, b := range s.Bars {
		out[i] = b.High
	}
	return out
}

// Lows extracts the low prices in order.
func (s *PriceSeries) Lows() []float64 {
	out := make([]float64, s.Len())
	for i, b := range s.Bars {
		out[i] = b.Low
	}
	return out
}

// Window is a calendar date range ending at End.
type Window struct {
	Start time.Time
	End   time.Time
}

// LookbackWindow returns the window of days calendar days ending at now.
func LookbackWindow(now time.Time, days int) Window {
	return Window{Start: now.AddDate(0, 0, -days), End: now}
}
