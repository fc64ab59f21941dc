package strategy

import (
	"strings"

	"PortfolioSentinel/internal/model"
)

// Score bounds for a BUY or SELL call.
const (
	BuyScore  = 1.0
	SellScore = -1.0
)

// mapRecommendation maps a total score to a recommendation.
func mapRecommendation(totalScore float64) model.Recommendation {
	switch {
	case totalScore >= BuyScore:
		return model.RecommendBuy
	case totalScore <= SellScore:
		return model.RecommendSell
	default:
		return model.RecommendHold
	}
}

// Summarize computes the recommendation from classified indicators and the
// optional research result. Classify must have run on ta first.
func Summarize(ta *model.TechnicalAnalysis, research *model.Sentiment) *model.Summary {
	if ta == nil || ta.Failed() {
		return &model.Summary{
			OverallRecommendation: model.RecommendHold,
			KeyPoints:             []string{"technical data unavailable"},
		}
	}

	var factors []model.FactorScore
	if ta.SMA != nil {
		factors = append(factors, scoreTrend(ta.SMA))
	}
	if ta.RSI != nil {
		factors = append(factors, scoreRSI(ta.RSI))
	}
	if ta.MACD != nil {
		factors = append(factors, scoreMACD(ta.MACD))
	}
	if ta.Bollinger != nil {
		factors = append(factors, scoreBollinger(ta.Bollinger))
	}
	if ta.Performance != nil {
		factors = append(factors, scorePerformance(ta.Performance))
	}
	if research != nil && !research.Failed() {
		factors = append(factors, scoreSentiment(research))
	}

	var total float64
	points := []string{}
	for _, f := range factors {
		total += f.Weighted
		if f.RawScore != 0 {
			points = append(points, f.Commentary)
		}
	}
	if len(points) == 0 {
		points = append(points, "no strong signals")
	}

	return &model.Summary{
		OverallRecommendation: mapRecommendation(total),
		Score:                 total,
		Factors:               factors,
		KeyPoints:             points,
	}
}

// sentimentLabel reduces a free-text label such as "Bullish" or
// "slightly negative" to bullish, bearish or neutral.
func sentimentLabel(s string) model.Signal {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "bull"), strings.Contains(s, "positive"):
		return model.SignalBullish
	case strings.Contains(s, "bear"), strings.Contains(s, "negative"):
		return model.SignalBearish
	default:
		return model.SignalNeutral
	}
}
