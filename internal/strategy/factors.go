package strategy

import (
	"fmt"

	"PortfolioSentinel/internal/model"
)

// Factor weights.
const (
	weightTrend       = 1.0
	weightRSI         = 1.0
	weightMACD        = 0.5
	weightBollinger   = 0.5
	weightSentiment   = 0.5
	weightPerformance = 0.25
)

// Stretched one-year moves lean against the trend.
const performanceStretch = 20.0

func factor(name string, raw, weight float64, commentary string) model.FactorScore {
	return model.FactorScore{
		Name:       name,
		RawScore:   raw,
		Weight:     weight,
		Weighted:   raw * weight,
		Commentary: commentary,
	}
}

// scoreTrend scores the SMA alignment.
// Weight: 1.0
func scoreTrend(b *model.SMABlock) model.FactorScore {
	switch b.Trend {
	case model.SignalBullish:
		return factor("trend", 1, weightTrend, "price above SMA20 above SMA50")
	case model.SignalBearish:
		return factor("trend", -1, weightTrend, "price below SMA20 below SMA50")
	default:
		return factor("trend", 0, weightTrend, "no clear trend")
	}
}

// scoreRSI rewards oversold and penalises overbought.
// Weight: 1.0
func scoreRSI(b *model.RSIBlock) model.FactorScore {
	switch b.Signal {
	case model.SignalOversold:
		return factor("rsi", 1, weightRSI, fmt.Sprintf("RSI oversold at %.1f", b.Value.Float()))
	case model.SignalOverbought:
		return factor("rsi", -1, weightRSI, fmt.Sprintf("RSI overbought at %.1f", b.Value.Float()))
	case model.SignalUnavailable:
		return factor("rsi", 0, weightRSI, "RSI unavailable")
	default:
		return factor("rsi", 0, weightRSI, fmt.Sprintf("RSI neutral at %.1f", b.Value.Float()))
	}
}

// scoreMACD follows the MACD crossover.
// Weight: 0.5
func scoreMACD(b *model.MACDBlock) model.FactorScore {
	switch b.Signal {
	case model.SignalBullish:
		return factor("macd", 1, weightMACD, "MACD above signal line")
	case model.SignalBearish:
		return factor("macd", -1, weightMACD, "MACD below signal line")
	default:
		return factor("macd", 0, weightMACD, "MACD unavailable")
	}
}

// scoreBollinger leans against band touches.
// Weight: 0.5
func scoreBollinger(b *model.BollingerBlock) model.FactorScore {
	switch b.Signal {
	case model.SignalLowerTouch:
		return factor("bollinger", 1, weightBollinger, "price at lower Bollinger band")
	case model.SignalUpperTouch:
		return factor("bollinger", -1, weightBollinger, "price at upper Bollinger band")
	default:
		return factor("bollinger", 0, weightBollinger, "price inside Bollinger bands")
	}
}

// scorePerformance leans against moves stretched beyond ±20% over the window.
// Weight: 0.25
func scorePerformance(b *model.PerformanceBlock) model.FactorScore {
	pct, ok := b.PercentChange.Get()
	switch {
	case !ok:
		return factor("performance", 0, weightPerformance, "performance unavailable")
	case pct > performanceStretch:
		return factor("performance", -1, weightPerformance, fmt.Sprintf("up %.1f%% over the period, stretched", pct))
	case pct < -performanceStretch:
		return factor("performance", 1, weightPerformance, fmt.Sprintf("down %.1f%% over the period, stretched", -pct))
	default:
		return factor("performance", 0, weightPerformance, fmt.Sprintf("%+.1f%% over the period", pct))
	}
}

// scoreSentiment maps the research label onto a factor.
// Weight: 0.5
func scoreSentiment(s *model.Sentiment) model.FactorScore {
	switch sentimentLabel(s.Sentiment) {
	case model.SignalBullish:
		return factor("sentiment", 1, weightSentiment, "news sentiment is positive")
	case model.SignalBearish:
		return factor("sentiment", -1, weightSentiment, "news sentiment is negative")
	default:
		return factor("sentiment", 0, weightSentiment, "news sentiment is mixed")
	}
}
