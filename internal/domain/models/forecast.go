package models

import "time"

// ConfidenceInterval is a (lower, upper) bound pair for one horizon step.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ForecastFactors is the blend-weight breakdown attached to a forecast.
type ForecastFactors struct {
	ModelContribution     float64 `json:"model_contribution"`
	SentimentContribution float64 `json:"sentiment_contribution"`
	BaseVolatility        float64 `json:"base_volatility"`
	SentimentAdjustment   float64 `json:"sentiment_adjustment"`
}

// ForecastResult is the sentiment-adjusted multi-day forecast for one symbol.
// Immutable after creation; persisted as a prediction cache entry.
// ConfidenceIntervals aligns index-for-index with Values.
type ForecastResult struct {
	Symbol              string               `json:"symbol"`
	Values              []float64            `json:"values"`
	ConfidenceIntervals []ConfidenceInterval `json:"confidenceIntervals"`
	Sentiment           SentimentSummary     `json:"sentiment"`
	Factors             ForecastFactors      `json:"factors"`
	NewsCount           int                  `json:"news_count"`
	Timestamp           time.Time            `json:"timestamp"`
}
