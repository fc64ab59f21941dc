package calculator

import (
	"errors"
	"math"

	"PortfolioSentinel/internal/model"
)

// TradingDays52w is the number of daily bars in a 52-week range.
const TradingDays52w = 252

// Calculate52WeekRange scans the most recent 252 bars and returns the high and low.
func Calculate52WeekRange(dailyBars []model.OHLCV) (high, low float64, err error) {
	if len(dailyBars) == 0 {
		return 0, 0, errors.New("no daily bars provided")
	}
	n := len(dailyBars)
	start := max(n-TradingDays52w, 0)
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		high = math.Max(high, dailyBars[i].High)
		low = math.Min(low, dailyBars[i].Low)
	}
	return high, low, nil
}

// Calculate52WeekPosition returns where the current price sits within the range (0.0~1.0).
func Calculate52WeekPosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	return math.Min(math.Max(pos, 0), 1), nil
}
