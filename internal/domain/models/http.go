package models

// Requests for the public HTTP endpoints. Defined in domain for consistency
// and reuse.

type StockRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
	Days   int    `query:"days" json:"days" default:"365" validate:"gte=1,lte=3650"`
}

type PredictRequest struct {
	Symbol   string `param:"symbol" json:"symbol" validate:"required"`
	UseCache bool   `query:"use_cache" json:"use_cache" default:"true"`
}

type NewsRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
}

type SearchRequest struct {
	Query string `query:"q" json:"q" validate:"required,min=1"`
}

// StockResponse is the single-symbol history payload.
type StockResponse struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Currency      string    `json:"currency"`
	Dates         []string  `json:"dates"`
	Prices        []float64 `json:"prices"`
	Volumes       []int64   `json:"volumes"`
	CurrentPrice  float64   `json:"currentPrice"`
	PreviousPrice float64   `json:"previousPrice"`
}

// NewsResponse pairs articles with their aggregate sentiment.
type NewsResponse struct {
	Symbol    string           `json:"symbol,omitempty"`
	Items     []NewsItem       `json:"items"`
	Sentiment SentimentSummary `json:"sentiment"`
}

// PredictResponse wraps a forecast with the price context it was made in.
type PredictResponse struct {
	Symbol       string          `json:"symbol"`
	CurrentPrice float64         `json:"currentPrice"`
	Prediction   *ForecastResult `json:"prediction"`
}
