package models

import "time"

// Sentiment labels.
const (
	LabelPositive = "Positive"
	LabelNeutral  = "Neutral"
	LabelNegative = "Negative"
)

// NewsItem is one scored article.
type NewsItem struct {
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	URL            string    `json:"url"`
	Source         string    `json:"source"`
	PublishedAt    time.Time `json:"publishedAt"`
	SentimentScore float64   `json:"sentiment_score"`
}

// SentimentSummary aggregates per-article scores into one signal.
// Score is in [-1,1], Confidence in [0,1].
type SentimentSummary struct {
	Score        float64 `json:"score"`
	Label        string  `json:"label"`
	Confidence   float64 `json:"confidence"`
	ArticleCount int     `json:"article_count"`
}
