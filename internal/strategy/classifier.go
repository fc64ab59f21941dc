package strategy

import "PortfolioSentinel/internal/model"

// Thresholds for the RSI signal.
const (
	RSIOversold   = 30.0
	RSIOverbought = 70.0
)

// ClassifyTrend labels the SMA alignment. Any missing input is neutral.
func ClassifyTrend(b *model.SMABlock) model.Signal {
	price, okP := b.Price.Get()
	s20, ok20 := b.SMA20.Get()
	s50, ok50 := b.SMA50.Get()
	if !okP || !ok20 || !ok50 {
		return model.SignalNeutral
	}
	switch {
	case s20 > s50 && price > s20:
		return model.SignalBullish
	case s20 < s50 && price < s20:
		return model.SignalBearish
	default:
		return model.SignalNeutral
	}
}

// ClassifyRSI labels the RSI as oversold, overbought or neutral.
func ClassifyRSI(b *model.RSIBlock) model.Signal {
	rsi, ok := b.Value.Get()
	switch {
	case !ok:
		return model.SignalUnavailable
	case rsi < RSIOversold:
		return model.SignalOversold
	case rsi > RSIOverbought:
		return model.SignalOverbought
	default:
		return model.SignalNeutral
	}
}

// ClassifyMACD is bullish only when the line is strictly above the signal.
func ClassifyMACD(b *model.MACDBlock) model.Signal {
	line, ok1 := b.MACDLine.Get()
	sig, ok2 := b.SignalLine.Get()
	if !ok1 || !ok2 {
		return model.SignalUnavailable
	}
	if line > sig {
		return model.SignalBullish
	}
	return model.SignalBearish
}

// ClassifyBollinger compares the price to the bands.
func ClassifyBollinger(b *model.BollingerBlock, price model.Value) model.Signal {
	p, okP := price.Get()
	upper, okU := b.Upper.Get()
	lower, okL := b.Lower.Get()
	switch {
	case !okP || !okU || !okL:
		return model.SignalUnavailable
	case p >= upper:
		return model.SignalUpperTouch
	case p <= lower:
		return model.SignalLowerTouch
	default:
		return model.SignalNeutral
	}
}

// Classify fills in the signal fields of every present block.
func Classify(ta *model.TechnicalAnalysis) {
	if ta == nil || ta.Failed() {
		return
	}
	var price model.Value
	if ta.SMA != nil {
		ta.SMA.Trend = ClassifyTrend(ta.SMA)
		price = ta.SMA.Price
	}
	if !price.Valid() && ta.Performance != nil {
		price = ta.Performance.CurrentPrice
	}
	if ta.RSI != nil {
		ta.RSI.Signal = ClassifyRSI(ta.RSI)
	}
	if ta.MACD != nil {
		ta.MACD.Signal = ClassifyMACD(ta.MACD)
	}
	if ta.Bollinger != nil {
		ta.Bollinger.Signal = ClassifyBollinger(ta.Bollinger, price)
	}
}
