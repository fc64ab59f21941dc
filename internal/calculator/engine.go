package calculator

import (
	"PortfolioSentinel/internal/model"
)

// DefaultRSIWindow is the RSI lookback used when none is configured.
const DefaultRSIWindow = 14

const dateLayout = "2006-01-02"

// Options selects which indicator blocks are computed.
type Options struct {
	// Enabled holds indicator names; nil or empty enables all of them.
	Enabled   map[string]bool
	RSIWindow int
}

func (o Options) enabled(name string) bool {
	return len(o.Enabled) == 0 || o.Enabled[name]
}

// Compute runs every enabled indicator over the series. Signal fields are left
// empty for the classifier. Short series produce unavailable values, never errors.
func Compute(series *model.PriceSeries, opts Options) *model.TechnicalAnalysis {
	if series.Len() == 0 {
		return &model.TechnicalAnalysis{Error: "no historical data"}
	}
	if opts.RSIWindow <= 0 {
		opts.RSIWindow = DefaultRSIWindow
	}
	closes := series.Closes()
	ta := &model.TechnicalAnalysis{}

	if opts.enabled(model.IndicatorSMA) {
		ta.SMA = &model.SMABlock{
			Price:  model.Some(last(closes)),
			SMA20:  valueOf(SMA(closes, 20)),
			SMA50:  valueOf(SMA(closes, 50)),
			SMA200: valueOf(SMA(closes, 200)),
		}
	}
	if opts.enabled(model.IndicatorRSI) {
		ta.RSI = &model.RSIBlock{Window: opts.RSIWindow, Value: valueOf(RSI(closes, opts.RSIWindow))}
	}
	if opts.enabled(model.IndicatorMACD) {
		b := &model.MACDBlock{}
		if m, ok := MACD(closes); ok {
			b.MACDLine = model.Some(m.MACD)
			b.SignalLine = model.Some(m.Signal)
			b.Histogram = model.Some(m.Histogram)
			b.Warmup = m.Warmup
		}
		ta.MACD = b
	}
	if opts.enabled(model.IndicatorBollinger) {
		b := &model.BollingerBlock{}
		if bb, err := BollingerBands(closes, BollingerPeriod, BollingerK); err == nil {
			b.Upper = model.Some(bb.Upper)
			b.Middle = model.Some(bb.Middle)
			b.Lower = model.Some(bb.Lower)
		}
		ta.Bollinger = b
	}
	if opts.enabled(model.IndicatorPerformance) {
		ta.Performance = performanceBlock(series, closes)
	}
	if opts.enabled(model.IndicatorVolatility) {
		b := &model.VolatilityBlock{}
		if daily, annual, err := Volatility(closes); err == nil {
			b.DailyStdDev = model.Some(daily * 100)
			b.AnnualizedVolatility = model.Some(annual * 100)
		}
		ta.Volatility = b
	}
	if opts.enabled(model.IndicatorATR) {
		b := &model.ATRBlock{Period: ATRPeriod}
		if atr, err := ATR(series.Highs(), series.Lows(), closes, ATRPeriod); err == nil {
			b.Value = model.Some(atr)
			if c := last(closes); c != 0 {
				b.Percent = model.Some(atr / c * 100)
			}
		}
		ta.ATR = b
	}
	if opts.enabled(model.IndicatorRange) {
		b := &model.RangeBlock{}
		if h, l, err := Calculate52WeekRange(series.Bars); err == nil {
			b.High52w = model.Some(h)
			b.Low52w = model.Some(l)
			if pos, err := Calculate52WeekPosition(last(closes), h, l); err == nil {
				b.Position52w = model.Some(pos)
			}
		}
		ta.Range = b
	}
	return ta
}

func performanceBlock(series *model.PriceSeries, closes []float64) *model.PerformanceBlock {
	b := &model.PerformanceBlock{
		StartDate:    series.Start.Format(dateLayout),
		EndDate:      series.End.Format(dateLayout),
		StartPrice:   model.Some(closes[0]),
		CurrentPrice: model.Some(last(closes)),
	}
	if series.Start.IsZero() {
		b.StartDate = series.Bars[0].Time.Format(dateLayout)
	}
	if series.End.IsZero() {
		b.EndDate = series.Bars[len(series.Bars)-1].Time.Format(dateLayout)
	}
	pct, err := PercentChange(closes)
	if err != nil {
		return b
	}
	b.PercentChange = model.Some(pct)
	b.Trend = "down"
	if pct > 0 {
		b.Trend = "up"
	}
	return b
}

func valueOf(v float64, err error) model.Value {
	if err != nil {
		return model.None()
	}
	return model.Some(v)
}
