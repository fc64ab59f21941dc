package calculator

import (
	"errors"
	"math"
	"testing"
)

func TestBollingerBands_Width(t *testing.T) {
	prices := seq(40, 10, 0.7)
	prices[35] = 60
	for n := 20; n <= len(prices); n++ {
		bb, err := BollingerBands(prices[:n], BollingerPeriod, BollingerK)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		sd, _ := StdDev(prices[:n], BollingerPeriod)
		if math.Abs((bb.Upper-bb.Lower)-4*sd) > 1e-9 {
			t.Errorf("n=%d: upper-lower=%f, want %f", n, bb.Upper-bb.Lower, 4*sd)
		}
	}
}

func TestBollingerBands_KnownValues(t *testing.T) {
	bb, err := BollingerBands(seq(20, 1, 1), 20, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sd := math.Sqrt(35) // sample std of 1..20
	if !almostEqual(bb.Middle, 10.5) {
		t.Errorf("middle: expected 10.5, got %f", bb.Middle)
	}
	if !almostEqual(bb.Upper, 10.5+2*sd) || !almostEqual(bb.Lower, 10.5-2*sd) {
		t.Errorf("unexpected bands %+v", bb)
	}
}

func TestBollingerBands_Short(t *testing.T) {
	if _, err := BollingerBands(seq(19, 1, 1), 20, 2); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestStdDev_Flat(t *testing.T) {
	sd, err := StdDev(seq(20, 3, 0), 20)
	if err != nil || sd != 0 {
		t.Errorf("expected 0 std, got %f (%v)", sd, err)
	}
	if _, err := StdDev([]float64{1}, 1); err == nil {
		t.Error("expected error for a single value")
	}
}
