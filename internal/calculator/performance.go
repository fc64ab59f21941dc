package calculator

import (
	"errors"
	"fmt"
	"math"
)

// ErrZeroBase is returned when a ratio's denominator is zero.
var ErrZeroBase = errors.New("zero base price")

// TradingDaysPerYear is used to annualise daily volatility.
const TradingDaysPerYear = 252

// PercentChange returns (last-first)/first*100 over the whole series.
func PercentChange(prices []float64) (float64, error) {
	if len(prices) < 2 {
		return 0, fmt.Errorf("percent change over %d prices: %w", len(prices), ErrInsufficientData)
	}
	first := prices[0]
	if first == 0 {
		return 0, ErrZeroBase
	}
	return (last(prices) - first) / first * 100, nil
}

// DailyReturns returns day-over-day fractional returns. Returns whose base
// price is zero are skipped.
func DailyReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			continue
		}
		out = append(out, (prices[i]-prices[i-1])/prices[i-1])
	}
	return out
}

// Volatility returns the sample standard deviation of daily returns and its
// annualised value, both as fractions. Requires at least two returns.
func Volatility(prices []float64) (daily, annualized float64, err error) {
	returns := DailyReturns(prices)
	daily, err = StdDev(returns, len(returns))
	if err != nil {
		return 0, 0, fmt.Errorf("volatility: %w", err)
	}
	return daily, daily * math.Sqrt(TradingDaysPerYear), nil
}
