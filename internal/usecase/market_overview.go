package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/service/cache"
	applogger "StockPulse/pkg/logger"
	"StockPulse/pkg/util"
)

const overviewCacheKey = "market:overview"

// OverviewConfig tunes the concurrent aggregation run.
type OverviewConfig struct {
	Symbols       []string
	Categories    map[string][]string
	MaxConcurrent int
	FetchTimeout  time.Duration
	CacheTTL      time.Duration
}

// MarketOverview aggregates quotes across the tracked universe with a
// bounded worker pool. A failing symbol is logged and excluded; the run
// succeeds with whatever quotes arrived. The assembled overview is held in
// the hot cache for the overview TTL.
type MarketOverview struct {
	market  domrepo.MarketData
	hot     cache.BytesCache
	metrics domrepo.Metrics
	l       *applogger.Logger
	cfg     OverviewConfig
}

func NewMarketOverview(
	market domrepo.MarketData,
	hot cache.BytesCache,
	metrics domrepo.Metrics,
	l *applogger.Logger,
	cfg OverviewConfig,
) *MarketOverview {
	return &MarketOverview{market: market, hot: hot, metrics: metrics, l: l, cfg: cfg}
}

// FetchOverview returns the aggregated dashboard view, serving the hot cache
// when useCache is set and the cached run is still fresh.
func (m *MarketOverview) FetchOverview(ctx context.Context, useCache bool) (*models.Overview, error) {
	if useCache {
		if cached, ok, _ := cache.GetJSON[models.Overview](m.hot, overviewCacheKey); ok {
			m.metrics.RecordCacheHit("overview")
			return cached, nil
		}
		m.metrics.RecordCacheMiss("overview")
	}

	start := time.Now()
	snapshots := m.fetchAll(ctx, dedupe(m.cfg.Symbols))
	overview := m.assemble(snapshots)

	if err := cache.SetJSON(m.hot, overviewCacheKey, overview, m.cfg.CacheTTL); err != nil {
		m.l.Warn("overview cache write failed", applogger.Error(err))
	}

	m.metrics.RecordLatency("overview", time.Since(start).Seconds())
	m.l.Info("overview aggregated",
		applogger.Int("requested", len(dedupe(m.cfg.Symbols))),
		applogger.Int("fetched", len(snapshots)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return overview, nil
}

// Search filters the current overview by case-insensitive substring match on
// symbol or name.
func (m *MarketOverview) Search(ctx context.Context, query string) ([]models.SnapshotRecord, error) {
	overview, err := m.FetchOverview(ctx, true)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matches := make([]models.SnapshotRecord, 0)
	for _, s := range overview.Stocks {
		if strings.Contains(strings.ToLower(s.Symbol), q) || strings.Contains(strings.ToLower(s.Name), q) {
			matches = append(matches, s)
		}
	}
	return matches, nil
}

// fetchAll runs one quote task per symbol under the concurrency bound. Each
// task gets its own deadline so one stalled upstream call cannot hold the
// whole run.
func (m *MarketOverview) fetchAll(ctx context.Context, symbols []string) []models.SnapshotRecord {
	sem := make(chan struct{}, m.cfg.MaxConcurrent)
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		out []models.SnapshotRecord
	)

	for _, symbol := range symbols {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			taskCtx, cancel := context.WithTimeout(ctx, m.cfg.FetchTimeout)
			defer cancel()

			snap, err := m.market.Quote(taskCtx, symbol)
			if err != nil {
				m.metrics.RecordUpstreamError("market")
				m.l.Warn("quote fetch failed",
					applogger.String("symbol", symbol), applogger.Error(err))
				return
			}
			m.metrics.RecordLastPrice(symbol, snap.Price)

			mu.Lock()
			out = append(out, *snap)
			mu.Unlock()
		}()
	}
	wg.Wait()
	return out
}

func (m *MarketOverview) assemble(stocks []models.SnapshotRecord) *models.Overview {
	sort.SliceStable(stocks, func(i, j int) bool {
		return stocks[i].MarketCap > stocks[j].MarketCap
	})

	var gainers, losers int
	var changeSum float64
	for _, s := range stocks {
		switch {
		case s.ChangePercent > 0:
			gainers++
		case s.ChangePercent < 0:
			losers++
		}
		changeSum += s.ChangePercent
	}

	var avgChange float64
	if len(stocks) > 0 {
		avgChange = util.Round2(changeSum / float64(len(stocks)))
	}

	byChange := append([]models.SnapshotRecord(nil), stocks...)
	sort.SliceStable(byChange, func(i, j int) bool {
		return byChange[i].ChangePercent > byChange[j].ChangePercent
	})

	return &models.Overview{
		Stocks: stocks,
		Statistics: models.OverviewStats{
			Total:     len(stocks),
			Gainers:   gainers,
			Losers:    losers,
			Unchanged: len(stocks) - gainers - losers,
			AvgChange: avgChange,
		},
		TopGainers: topN(byChange, 5),
		TopLosers:  topN(reversed(byChange), 5),
		Categories: m.categorize(stocks),
		LastUpdate: time.Now().UTC(),
	}
}

// categorize buckets fetched stocks into configured sectors. Sectors with no
// fetched members are omitted.
func (m *MarketOverview) categorize(stocks []models.SnapshotRecord) map[string]models.CategorySummary {
	bySymbol := make(map[string]models.SnapshotRecord, len(stocks))
	for _, s := range stocks {
		bySymbol[s.Symbol] = s
	}

	categories := make(map[string]models.CategorySummary)
	for name, symbols := range m.cfg.Categories {
		var members []models.SnapshotRecord
		var changeSum float64
		for _, sym := range symbols {
			if s, ok := bySymbol[sym]; ok {
				members = append(members, s)
				changeSum += s.ChangePercent
			}
		}
		if len(members) == 0 {
			continue
		}
		categories[name] = models.CategorySummary{
			Stocks:    members,
			AvgChange: util.Round2(changeSum / float64(len(members))),
			Count:     len(members),
		}
	}
	return categories
}

func topN(s []models.SnapshotRecord, n int) []models.SnapshotRecord {
	if len(s) < n {
		n = len(s)
	}
	return append([]models.SnapshotRecord(nil), s[:n]...)
}

func reversed(s []models.SnapshotRecord) []models.SnapshotRecord {
	out := make([]models.SnapshotRecord, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

func dedupe(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
