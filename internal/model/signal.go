package model

// Signal is a categorical label derived from indicator values.
type Signal string

const (
	SignalBullish     Signal = "bullish"
	SignalBearish     Signal = "bearish"
	SignalNeutral     Signal = "neutral"
	SignalOversold    Signal = "oversold"
	SignalOverbought  Signal = "overbought"
	SignalUpperTouch  Signal = "upper_touch"
	SignalLowerTouch  Signal = "lower_touch"
	SignalUnavailable Signal = "unavailable"
)

// Recommendation is the overall action suggested for a position.
type Recommendation string

const (
	RecommendBuy  Recommendation = "BUY"
	RecommendHold Recommendation = "HOLD"
	RecommendSell Recommendation = "SELL"
)

// FactorScore represents a single factor's contribution to the recommendation.
type FactorScore struct {
	Name       string  `json:"name"`
	RawScore   float64 `json:"raw_score"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
	Commentary string  `json:"commentary"`
}

// Summary is the recommendation derived from technical and research signals.
type Summary struct {
	OverallRecommendation Recommendation `json:"overall_recommendation"`
	Score                 float64        `json:"score"`
	Factors               []FactorScore  `json:"factors,omitempty"`
	KeyPoints             []string       `json:"key_points"`
}
