package calculator

import (
	"testing"
	"time"

	"PortfolioSentinel/internal/model"
)

func bars(closes []float64) []model.OHLCV {
	out := make([]model.OHLCV, len(closes))
	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		out[i] = model.OHLCV{Time: day.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c}
	}
	return out
}

func TestCalculate52WeekRange_UsesLast252Bars(t *testing.T) {
	b := bars(seq(300, 1, 1))
	high, low, err := Calculate52WeekRange(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if high != 301 || low != 48 {
		t.Errorf("expected high=301 low=48, got %f/%f", high, low)
	}
	if _, _, err := Calculate52WeekRange(nil); err == nil {
		t.Error("expected error for empty bars")
	}
}

func TestCalculate52WeekPosition(t *testing.T) {
	tests := []struct {
		current, high, low, want float64
	}{
		{150, 200, 100, 0.5},
		{250, 200, 100, 1},
		{50, 200, 100, 0},
		{100, 100, 100, 0.5},
	}
	for _, tt := range tests {
		got, err := Calculate52WeekPosition(tt.current, tt.high, tt.low)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("position(%v,%v,%v) = %v, want %v", tt.current, tt.high, tt.low, got, tt.want)
		}
	}
	if _, err := Calculate52WeekPosition(1, 1, 2); err == nil {
		t.Error("expected error when high < low")
	}
}

func TestATR_ConstantRange(t *testing.T) {
	b := bars(seq(30, 100, 0))
	s := &model.PriceSeries{Bars: b}
	atr, err := ATR(s.Highs(), s.Lows(), s.Closes(), ATRPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(atr, 2) {
		t.Errorf("expected ATR 2, got %f", atr)
	}
	if _, err := ATR(s.Highs()[:14], s.Lows()[:14], s.Closes()[:14], ATRPeriod); err == nil {
		t.Error("expected error for 14 bars")
	}
}
