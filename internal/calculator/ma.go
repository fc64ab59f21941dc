package calculator

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned when a series is shorter than an indicator's window.
var ErrInsufficientData = errors.New("not enough data")

// SMA computes the simple moving average of the last period prices.
func SMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, fmt.Errorf("sma(%d) over %d prices: %w", period, len(prices), ErrInsufficientData)
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// EMA returns the adjusted exponential moving average series for the given span,
// with alpha = 2/(span+1). Each point is the weighted mean of all prior prices
// with weights (1-alpha)^i, normalised by the sum of weights.
func EMA(prices []float64, span int) []float64 {
	if span <= 0 || len(prices) == 0 {
		return nil
	}
	alpha := 2.0 / (float64(span) + 1.0)
	decay := 1 - alpha
	out := make([]float64, len(prices))
	var num, den float64
	for i, p := range prices {
		num = p + decay*num
		den = 1 + decay*den
		out[i] = num / den
	}
	return out
}

func last(xs []float64) float64 { return xs[len(xs)-1] }
