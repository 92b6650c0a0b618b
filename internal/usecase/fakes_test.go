package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	applogger "StockPulse/pkg/logger"
)

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

// memStore is an in-memory append-only CacheStore with the same freshness
// semantics as the ClickHouse store.
type memStore struct {
	mu   sync.Mutex
	rows map[string][]memRow
}

type memRow struct {
	payload []byte
	at      time.Time
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[string][]memRow)}
}

func (s *memStore) Put(_ context.Context, kind domrepo.RecordKind, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := string(kind) + "|" + key
	s.rows[k] = append(s.rows[k], memRow{payload: append([]byte(nil), payload...), at: time.Now()})
	return nil
}

func (s *memStore) Get(_ context.Context, kind domrepo.RecordKind, key string, maxAge time.Duration) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.rows[string(kind)+"|"+key]
	cutoff := time.Now().Add(-maxAge)
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].at.After(cutoff) {
			return rows[i].payload, nil
		}
	}
	return nil, domrepo.ErrCacheMiss
}

func (s *memStore) Purge(_ context.Context, olderThan time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-olderThan)
	for k, rows := range s.rows {
		kept := rows[:0]
		for _, r := range rows {
			if r.at.After(cutoff) {
				kept = append(kept, r)
			}
		}
		s.rows[k] = kept
	}
	return nil
}

func (s *memStore) Close() error { return nil }

func (s *memStore) count(kind domrepo.RecordKind, key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows[string(kind)+"|"+key])
}

type fakeMarket struct {
	mu           sync.Mutex
	historyCalls int
	quoteCalls   int
	historyFn    func(symbol string) (models.PriceSeries, error)
	quoteFn      func(symbol string) (*models.SnapshotRecord, error)
}

func (m *fakeMarket) History(_ context.Context, symbol string, _, _ time.Time) (models.PriceSeries, error) {
	m.mu.Lock()
	m.historyCalls++
	m.mu.Unlock()
	return m.historyFn(symbol)
}

func (m *fakeMarket) Quote(_ context.Context, symbol string) (*models.SnapshotRecord, error) {
	m.mu.Lock()
	m.quoteCalls++
	m.mu.Unlock()
	return m.quoteFn(symbol)
}

type fakeNewsProvider struct {
	configured bool
	items      []models.NewsItem
	err        error
	calls      int
}

func (p *fakeNewsProvider) Fetch(_ context.Context, _ string, _, _ time.Time, _ int) ([]models.NewsItem, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return append([]models.NewsItem(nil), p.items...), nil
}

func (p *fakeNewsProvider) Configured() bool { return p.configured }

type nopMetrics struct{}

func (nopMetrics) RecordCacheHit(string)           {}
func (nopMetrics) RecordCacheMiss(string)          {}
func (nopMetrics) RecordUpstreamError(string)      {}
func (nopMetrics) RecordLastPrice(string, float64) {}
func (nopMetrics) RecordLatency(string, float64)   {}

func seriesOf(symbol string, closes ...float64) models.PriceSeries {
	s := models.PriceSeries{Symbol: symbol, Name: symbol, Currency: "INR"}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		s.Points = append(s.Points, models.PricePoint{
			Date:   base.AddDate(0, 0, i),
			Close:  c,
			Volume: 1000,
		})
	}
	return s
}
