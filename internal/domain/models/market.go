package models

import "time"

// PricePoint is a single daily observation of a price series.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PriceSeries is a chronologically ascending daily series for one symbol.
// It is immutable once fetched; callers own it for the duration of one
// forecast call.
type PriceSeries struct {
	Symbol   string       `json:"symbol"`
	Name     string       `json:"name"`
	Currency string       `json:"currency"`
	Points   []PricePoint `json:"points"`
}

// Closes returns the close prices in series order.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Close
	}
	return out
}

// Empty reports whether the series has no observations.
func (s PriceSeries) Empty() bool { return len(s.Points) == 0 }

// LastClose returns the most recent close, 0 for an empty series.
func (s PriceSeries) LastClose() float64 {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[len(s.Points)-1].Close
}

// SnapshotRecord is one symbol's quick quote. Never mutated after
// construction; a new aggregation run replaces it wholesale.
type SnapshotRecord struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Volume        int64     `json:"volume"`
	MarketCap     float64   `json:"marketCap"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Currency      string    `json:"currency"`
	LastUpdate    time.Time `json:"lastUpdate"`
}

// OverviewStats holds cross-sectional statistics over one aggregation run.
type OverviewStats struct {
	Total     int     `json:"total"`
	Gainers   int     `json:"gainers"`
	Losers    int     `json:"losers"`
	Unchanged int     `json:"unchanged"`
	AvgChange float64 `json:"avgChange"`
}

// CategorySummary is a sector bucket with its average change.
type CategorySummary struct {
	Stocks    []SnapshotRecord `json:"stocks"`
	AvgChange float64          `json:"avgChange"`
	Count     int              `json:"count"`
}

// Overview is the aggregated dashboard view across the tracked universe.
type Overview struct {
	Stocks     []SnapshotRecord           `json:"stocks"`
	Statistics OverviewStats              `json:"statistics"`
	TopGainers []SnapshotRecord           `json:"topGainers"`
	TopLosers  []SnapshotRecord           `json:"topLosers"`
	Categories map[string]CategorySummary `json:"categories"`
	LastUpdate time.Time                  `json:"lastUpdate"`
}
