package calculator

import (
	"errors"
	"math"
	"testing"
)

func seq(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSMA_Windows(t *testing.T) {
	if _, err := SMA(seq(19, 1, 1), 20); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData for 19 bars, got %v", err)
	}
	v, err := SMA(seq(20, 1, 1), 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(v, 10.5) {
		t.Errorf("expected mean 10.5, got %f", v)
	}
	v, _ = SMA(seq(30, 1, 1), 20)
	if !almostEqual(v, 20.5) {
		t.Errorf("expected mean of last 20 = 20.5, got %f", v)
	}
	if _, err := SMA([]float64{1}, 0); err == nil {
		t.Error("expected error for non-positive period")
	}
}

func TestEMA_Adjusted(t *testing.T) {
	got := EMA([]float64{1, 2}, 3)
	want := (2 + 0.5*1) / 1.5
	if !almostEqual(got[1], want) {
		t.Errorf("expected %f, got %f", want, got[1])
	}
	if got[0] != 1 {
		t.Errorf("first EMA point should equal first price, got %f", got[0])
	}
	for i, v := range EMA(seq(50, 7, 0), 12) {
		if !almostEqual(v, 7) {
			t.Fatalf("constant series EMA[%d] = %f, want 7", i, v)
		}
	}
	if EMA(nil, 12) != nil {
		t.Error("expected nil for empty input")
	}
}

func TestMACD_ConstantSeries(t *testing.T) {
	res, ok := MACD(seq(60, 42, 0))
	if !ok {
		t.Fatal("expected MACD result")
	}
	if !almostEqual(res.Histogram, 0) || !almostEqual(res.MACD, 0) {
		t.Errorf("expected zero MACD and histogram, got %+v", res)
	}
	if res.Warmup {
		t.Error("60 points should not be flagged as warmup")
	}
}

func TestMACD_Warmup(t *testing.T) {
	res, ok := MACD(seq(10, 1, 1))
	if !ok {
		t.Fatal("expected a result for a short series")
	}
	if !res.Warmup {
		t.Error("expected warmup flag under 26 points")
	}
	if res.MACD <= 0 {
		t.Errorf("rising series should have positive MACD, got %f", res.MACD)
	}
	if _, ok := MACD(nil); ok {
		t.Error("expected no result for empty series")
	}
}
