package calculator

import (
	"errors"
	"fmt"
)

// ErrFlatSeries is returned by RSI when there was no movement inside the window.
var ErrFlatSeries = errors.New("no price movement")

// RSI computes the relative strength index of the last point, averaging gains
// and losses with a simple rolling mean over period deltas.
// Requires at least period+1 prices.
func RSI(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period+1 {
		return 0, fmt.Errorf("rsi(%d) over %d prices: %w", period, len(prices), ErrInsufficientData)
	}

	var avgGain, avgLoss float64
	for i := len(prices) - period; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change // make positive
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	if avgLoss == 0 {
		if avgGain == 0 {
			return 0, ErrFlatSeries
		}
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}
