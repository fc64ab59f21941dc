package calculator

import (
	"testing"
	"time"

	"PortfolioSentinel/internal/model"
)

func series(closes []float64) *model.PriceSeries {
	b := bars(closes)
	return &model.PriceSeries{
		Symbol: "TEST",
		Bars:   b,
		Start:  b[0].Time,
		End:    b[len(b)-1].Time,
	}
}

func TestCompute_FullHistory(t *testing.T) {
	ta := Compute(series(seq(300, 50, 0.5)), Options{})
	if ta.Failed() {
		t.Fatalf("unexpected error: %s", ta.Error)
	}
	for name, v := range map[string]model.Value{
		"price":     ta.SMA.Price,
		"sma20":     ta.SMA.SMA20,
		"sma50":     ta.SMA.SMA50,
		"sma200":    ta.SMA.SMA200,
		"rsi":       ta.RSI.Value,
		"macd":      ta.MACD.MACDLine,
		"upper":     ta.Bollinger.Upper,
		"pct":       ta.Performance.PercentChange,
		"vol":       ta.Volatility.AnnualizedVolatility,
		"atr":       ta.ATR.Value,
		"range_pos": ta.Range.Position52w,
	} {
		if !v.Valid() {
			t.Errorf("%s should be available", name)
		}
	}
	if ta.RSI.Value.Float() != 100 {
		t.Errorf("expected RSI 100 on rising series, got %f", ta.RSI.Value.Float())
	}
	if ta.Performance.Trend != "up" {
		t.Errorf("expected up trend, got %q", ta.Performance.Trend)
	}
	if ta.Performance.StartDate != "2025-01-01" {
		t.Errorf("unexpected start date %q", ta.Performance.StartDate)
	}
}

func TestCompute_ShortHistory(t *testing.T) {
	ta := Compute(series(seq(10, 20, 1)), Options{})
	if ta.SMA.SMA20.Valid() || ta.SMA.SMA50.Valid() || ta.SMA.SMA200.Valid() {
		t.Error("SMAs should be unavailable for 10 bars")
	}
	if !ta.SMA.Price.Valid() {
		t.Error("latest price should always be available")
	}
	if ta.RSI.Value.Valid() {
		t.Error("RSI should be unavailable for 10 bars")
	}
	if ta.Bollinger.Upper.Valid() {
		t.Error("Bollinger should be unavailable for 10 bars")
	}
	if !ta.MACD.MACDLine.Valid() || !ta.MACD.Warmup {
		t.Error("MACD should be computed with warmup flag")
	}
	if ta.ATR.Value.Valid() {
		t.Error("ATR should be unavailable for 10 bars")
	}
}

func TestCompute_FlatHistory(t *testing.T) {
	ta := Compute(series(seq(60, 10, 0)), Options{})
	if ta.RSI.Value.Valid() {
		t.Error("RSI should be unavailable on a flat series")
	}
	if h := ta.MACD.Histogram.Float(); h > 1e-12 || h < -1e-12 {
		t.Errorf("expected zero histogram, got %g", h)
	}
}

func TestCompute_ZeroFirstClose(t *testing.T) {
	closes := seq(5, 0, 1)
	ta := Compute(series(closes), Options{})
	if ta.Performance.PercentChange.Valid() {
		t.Error("percent change should be unavailable with zero first close")
	}
}

func TestCompute_Toggles(t *testing.T) {
	ta := Compute(series(seq(30, 1, 1)), Options{Enabled: map[string]bool{model.IndicatorRSI: true}})
	if ta.RSI == nil {
		t.Fatal("RSI block should be present")
	}
	if ta.SMA != nil || ta.MACD != nil || ta.Bollinger != nil || ta.Performance != nil || ta.Volatility != nil {
		t.Error("disabled blocks should be nil")
	}
}

func TestCompute_Empty(t *testing.T) {
	ta := Compute(&model.PriceSeries{Start: time.Now()}, Options{})
	if ta.Error != "no historical data" {
		t.Errorf("unexpected error %q", ta.Error)
	}
}
