package calculator

import (
	"fmt"

	"github.com/markcheno/go-talib"
)

// ATRPeriod is the default average true range period.
const ATRPeriod = 14

// ATR returns the latest average true range. Requires more than period bars.
func ATR(highs, lows, closes []float64, period int) (float64, error) {
	n := len(closes)
	if len(highs) != n || len(lows) != n {
		return 0, fmt.Errorf("atr: mismatched series lengths %d/%d/%d", len(highs), len(lows), n)
	}
	if period <= 0 || n <= period {
		return 0, fmt.Errorf("atr(%d) over %d bars: %w", period, n, ErrInsufficientData)
	}
	out := talib.Atr(highs, lows, closes, period)
	return last(out), nil
}
