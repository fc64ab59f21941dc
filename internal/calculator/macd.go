package calculator

// MACD periods.
const (
	MACDFast   = 12
	MACDSlow   = 26
	MACDSignal = 9
)

// MACDResult is the latest point of the MACD computation.
type MACDResult struct {
	MACD      float64
	Signal    float64
	Histogram float64
	Warmup    bool // fewer than MACDSlow prices; early EMA values are less meaningful
}

// MACD computes EMA(fast) - EMA(slow), its EMA(signal) and the histogram,
// returning the latest point. ok is false for an empty series.
func MACD(prices []float64) (res MACDResult, ok bool) {
	if len(prices) == 0 {
		return MACDResult{}, false
	}
	fast := EMA(prices, MACDFast)
	slow := EMA(prices, MACDSlow)
	line := make([]float64, len(prices))
	for i := range prices {
		line[i] = fast[i] - slow[i]
	}
	signal := EMA(line, MACDSignal)

	res.MACD = last(line)
	res.Signal = last(signal)
	res.Histogram = res.MACD - res.Signal
	res.Warmup = len(prices) < MACDSlow
	return res, true
}
