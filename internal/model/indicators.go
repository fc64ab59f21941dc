package model

// SMABlock holds the latest close and the 20/50/200-day simple moving averages.
type SMABlock struct {
	Price  Value  `json:"price"`
	SMA20  Value  `json:"sma20"`
	SMA50  Value  `json:"sma50"`
	SMA200 Value  `json:"sma200"`
	Trend  Signal `json:"sma_trend"`
}

// RSIBlock holds the relative strength index.
type RSIBlock struct {
	Window int    `json:"window"`
	Value  Value  `json:"value"`
	Signal Signal `json:"signal"`
}

// MACDBlock holds the latest MACD point.
type MACDBlock struct {
	MACDLine   Value  `json:"macd_line"`
	SignalLine Value  `json:"signal_line"`
	Histogram  Value  `json:"histogram"`
	Warmup     bool   `json:"warmup"` // fewer than 26 closes
	Signal     Signal `json:"signal"`
}

// BollingerBlock holds the latest Bollinger bands.
type BollingerBlock struct {
	Upper  Value  `json:"upper"`
	Middle Value  `json:"middle"`
	Lower  Value  `json:"lower"`
	Signal Signal `json:"signal"`
}

// PerformanceBlock holds the percent change over the requested window.
type PerformanceBlock struct {
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	StartPrice    Value  `json:"start_price"`
	CurrentPrice  Value  `json:"current_price"`
	PercentChange Value  `json:"percent_change"`
	Trend         string `json:"trend"`
}

// VolatilityBlock holds the standard deviation of daily returns, in percent.
type VolatilityBlock struct {
	DailyStdDev          Value `json:"daily_std_dev"`
	AnnualizedVolatility Value `json:"annualized_volatility"`
}

// ATRBlock holds the average true range.
type ATRBlock struct {
	Period  int   `json:"period"`
	Value   Value `json:"value"`
	Percent Value `json:"percent"`
}

// RangeBlock holds the 52-week high/low and where the latest close sits in it.
type RangeBlock struct {
	High52w     Value `json:"high_52w"`
	Low52w      Value `json:"low_52w"`
	Position52w Value `json:"position_52w"` // 0.0 ~ 1.0
}

// TechnicalAnalysis is the per-symbol indicator result. Either Error is set
// or the enabled blocks are populated; disabled blocks stay nil.
type TechnicalAnalysis struct {
	Error       string            `json:"error,omitempty"`
	SMA         *SMABlock         `json:"sma,omitempty"`
	RSI         *RSIBlock         `json:"rsi,omitempty"`
	MACD        *MACDBlock        `json:"macd,omitempty"`
	Bollinger   *BollingerBlock   `json:"bollinger_bands,omitempty"`
	Performance *PerformanceBlock `json:"performance,omitempty"`
	Volatility  *VolatilityBlock  `json:"volatility,omitempty"`
	ATR         *ATRBlock         `json:"atr,omitempty"`
	Range       *RangeBlock       `json:"range,omitempty"`
}

// Failed reports whether the analysis could not be computed.
func (t *TechnicalAnalysis) Failed() bool { return t == nil || t.Error != "" }

// Indicator names accepted by the indicator toggle.
const (
	IndicatorSMA         = "sma"
	IndicatorRSI         = "rsi"
	IndicatorMACD        = "macd"
	IndicatorBollinger   = "bollinger_bands"
	IndicatorPerformance = "performance"
	IndicatorVolatility  = "volatility"
	IndicatorATR         = "atr"
	IndicatorRange       = "range"
)

// AllIndicators lists every indicator in report order.
var AllIndicators = []string{
	IndicatorSMA,
	IndicatorRSI,
	IndicatorMACD,
	IndicatorBollinger,
	IndicatorPerformance,
	IndicatorVolatility,
	IndicatorATR,
	IndicatorRange,
}
