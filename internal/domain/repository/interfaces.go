package repository

import (
	"context"
	"errors"
	"time"

	"StockPulse/internal/domain/models"
)

// RecordKind scopes cache keys so different record types sharing a symbol
// string never collide.
type RecordKind string

const (
	KindPrice      RecordKind = "price"
	KindNews       RecordKind = "news"
	KindPrediction RecordKind = "prediction"
)

// GlobalNewsKey is the key for market-wide news, distinct from any symbol.
const GlobalNewsKey = ""

var (
	// ErrCacheMiss is returned when no entry is fresh enough.
	ErrCacheMiss = errors.New("cache: no entry within max age")
	// ErrNoData is returned when a symbol has no price history.
	ErrNoData = errors.New("no data available for symbol")
)

// CacheStore is the append-only TTL cache contract. Put inserts a new
// timestamped row and never updates in place; Get returns the most recent
// payload for (kind, key) whose age is at most maxAge, or ErrCacheMiss.
// Purge deletes rows of every kind older than the duration and is safe to
// run concurrently with reads and writes.
type CacheStore interface {
	Put(ctx context.Context, kind RecordKind, key string, payload []byte) error
	Get(ctx context.Context, kind RecordKind, key string, maxAge time.Duration) ([]byte, error)
	Purge(ctx context.Context, olderThan time.Duration) error
	Close() error
}

// MarketData is the external market-data provider.
type MarketData interface {
	// History returns a chronologically ascending daily series, possibly
	// empty. An empty result means "no data", not an error.
	History(ctx context.Context, symbol string, from, to time.Time) (models.PriceSeries, error)
	// Quote returns the current snapshot for a symbol.
	Quote(ctx context.Context, symbol string) (*models.SnapshotRecord, error)
}

// NewsProvider is the external news source.
type NewsProvider interface {
	// Fetch returns articles for a free-text query within a date window.
	Fetch(ctx context.Context, query string, from, to time.Time, limit int) ([]models.NewsItem, error)
	// Configured reports whether credentials are available. An unconfigured
	// provider is a valid operating mode.
	Configured() bool
}

// Publisher emits forecast events for downstream consumers.
type Publisher interface {
	PublishForecast(ctx context.Context, res *models.ForecastResult) error
	Close() error
}

// Metrics records operational measurements.
type Metrics interface {
	RecordCacheHit(kind string)
	RecordCacheMiss(kind string)
	RecordUpstreamError(provider string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
