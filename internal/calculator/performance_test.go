package calculator

import (
	"errors"
	"math"
	"testing"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name    string
		prices  []float64
		want    float64
		wantErr error
	}{
		{"ten percent", []float64{100, 110}, 10, nil},
		{"total loss", []float64{100, 0}, -100, nil},
		{"zero base", []float64{0, 5}, 0, ErrZeroBase},
		{"single price", []float64{100}, 0, ErrInsufficientData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PercentChange(tt.prices)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
			if math.IsInf(got, 0) || math.IsNaN(got) {
				t.Errorf("non-finite result %f", got)
			}
		})
	}
}

func TestVolatility(t *testing.T) {
	daily, annual, err := Volatility([]float64{100, 110, 99})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := math.Sqrt(0.02) // returns +0.1 and -0.1, sample std
	if !almostEqual(daily, want) {
		t.Errorf("daily: expected %f, got %f", want, daily)
	}
	if !almostEqual(annual, want*math.Sqrt(252)) {
		t.Errorf("annualized: expected %f, got %f", want*math.Sqrt(252), annual)
	}

	if _, _, err := Volatility([]float64{100, 101}); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData for one return, got %v", err)
	}
}

func TestDailyReturns_SkipsZeroBase(t *testing.T) {
	got := DailyReturns([]float64{0, 10, 11})
	if len(got) != 1 || !almostEqual(got[0], 0.1) {
		t.Errorf("expected [0.1], got %v", got)
	}
}
