package calculator

import (
	"fmt"
	"math"
)

// Bollinger defaults.
const (
	BollingerPeriod = 20
	BollingerK      = 2.0
)

// StdDev returns the sample standard deviation (n-1) of the last period values.
func StdDev(values []float64, period int) (float64, error) {
	if period < 2 || len(values) < period {
		return 0, fmt.Errorf("stddev(%d) over %d values: %w", period, len(values), ErrInsufficientData)
	}
	window := values[len(values)-period:]
	mean := 0.0
	for _, v := range window {
		mean += v
	}
	mean /= float64(period)
	ss := 0.0
	for _, v := range window {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(period-1)), nil
}

// BollingerResult holds the latest band values.
type BollingerResult struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// BollingerBands computes middle = SMA(period) and upper/lower = middle ± k·std(period).
func BollingerBands(prices []float64, period int, k float64) (BollingerResult, error) {
	middle, err := SMA(prices, period)
	if err != nil {
		return BollingerResult{}, err
	}
	sd, err := StdDev(prices, period)
	if err != nil {
		return BollingerResult{}, err
	}
	width := k * sd
	return BollingerResult{Upper: middle + width, Middle: middle, Lower: middle - width}, nil
}
