package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/service/sentiment"
)

func newTestAggregator(t *testing.T, provider domrepo.NewsProvider, store domrepo.CacheStore) *NewsAggregator {
	t.Helper()
	return NewNewsAggregator(provider, store, sentiment.New(), nopMetrics{}, testLogger(t), NewsConfig{
		MaxItems:    10,
		Window:      7 * 24 * time.Hour,
		MarketQuery: "stock market India OR NSE OR BSE OR Nifty OR Sensex",
		CacheTTL:    30 * time.Minute,
	})
}

func TestCompanyName(t *testing.T) {
	cases := map[string]string{
		"TATASTEEL.NS": "Tata Steel",
		"RELIANCE.NS":  "Reliance Industries",
		"SBIN.NS":      "State Bank of India",
		"TCS":          "Tata Consultancy Services",
		"UNKNOWN.NS":   "UNKNOWN",
		"UNKNOWN.BO":   "UNKNOWN",
		"PLAIN":        "PLAIN",
	}
	for symbol, want := range cases {
		if got := CompanyName(symbol); got != want {
			t.Fatalf("CompanyName(%s) = %q, want %q", symbol, got, want)
		}
	}
}

func TestSummarizeEmpty(t *testing.T) {
	agg := newTestAggregator(t, &fakeNewsProvider{}, newMemStore())
	got := agg.Summarize(nil)
	want := models.SentimentSummary{Score: 0, Label: models.LabelNeutral, Confidence: 0, ArticleCount: 0}
	if got != want {
		t.Fatalf("unexpected summary %+v", got)
	}
}

func TestSummarizeConsistentScores(t *testing.T) {
	agg := newTestAggregator(t, &fakeNewsProvider{}, newMemStore())
	items := []models.NewsItem{
		{SentimentScore: 0.6},
		{SentimentScore: 0.6},
		{SentimentScore: 0.6},
	}
	got := agg.Summarize(items)
	if got.Label != models.LabelPositive {
		t.Fatalf("expected Positive, got %s", got.Label)
	}
	if got.Score != 0.6 {
		t.Fatalf("expected score 0.6, got %v", got.Score)
	}
	if got.Confidence != 1 {
		t.Fatalf("identical scores should give confidence 1, got %v", got.Confidence)
	}
	if got.ArticleCount != 3 {
		t.Fatalf("unexpected article count %d", got.ArticleCount)
	}
}

func TestSummarizeLabelThresholds(t *testing.T) {
	agg := newTestAggregator(t, &fakeNewsProvider{}, newMemStore())
	cases := []struct {
		score float64
		want  string
	}{
		{0.2, models.LabelNeutral},
		{0.21, models.LabelPositive},
		{-0.2, models.LabelNeutral},
		{-0.21, models.LabelNegative},
		{0, models.LabelNeutral},
	}
	for _, c := range cases {
		got := agg.Summarize([]models.NewsItem{{SentimentScore: c.score}})
		if got.Label != c.want {
			t.Fatalf("score %v: got label %s, want %s", c.score, got.Label, c.want)
		}
	}
}

func TestSummarizeConfidenceFloor(t *testing.T) {
	agg := newTestAggregator(t, &fakeNewsProvider{}, newMemStore())
	// variance of {-1, 1} is 1, confidence clamps at 0
	got := agg.Summarize([]models.NewsItem{{SentimentScore: -1}, {SentimentScore: 1}})
	if got.Confidence != 0 {
		t.Fatalf("expected confidence 0, got %v", got.Confidence)
	}
}

func TestFetchScoresArticles(t *testing.T) {
	provider := &fakeNewsProvider{
		configured: true,
		items: []models.NewsItem{
			{Title: "Record profit and strong growth", Description: "shares surge"},
			{Title: "Quarterly filing published", Description: ""},
		},
	}
	agg := newTestAggregator(t, provider, newMemStore())

	items, err := agg.FetchForSymbol(context.Background(), "INFY.NS", true)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].SentimentScore <= 0 {
		t.Fatalf("expected positive score on first article, got %v", items[0].SentimentScore)
	}
	if items[1].SentimentScore != 0 {
		t.Fatalf("expected neutral score on second article, got %v", items[1].SentimentScore)
	}
}

func TestFetchPlaceholderWhenUnconfigured(t *testing.T) {
	agg := newTestAggregator(t, &fakeNewsProvider{configured: false}, newMemStore())

	items, err := agg.FetchForSymbol(context.Background(), "TATASTEEL.NS", true)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected placeholder batch of 2, got %d", len(items))
	}
	if !strings.Contains(items[0].Title, "Tata Steel") {
		t.Fatalf("placeholder title should name the company: %q", items[0].Title)
	}
	if items[0].SentimentScore != 0.5 || items[1].SentimentScore != -0.2 {
		t.Fatalf("placeholder scores changed: %v, %v", items[0].SentimentScore, items[1].SentimentScore)
	}
}

func TestFetchPlaceholderOnProviderError(t *testing.T) {
	provider := &fakeNewsProvider{configured: true, err: fmt.Errorf("upstream down")}
	agg := newTestAggregator(t, provider, newMemStore())

	items, err := agg.FetchForSymbol(context.Background(), "WIPRO.NS", true)
	if err != nil {
		t.Fatalf("provider failure must not fail the fetch: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected placeholder batch, got %d items", len(items))
	}
}

func TestFetchServedFromCache(t *testing.T) {
	provider := &fakeNewsProvider{
		configured: true,
		items:      []models.NewsItem{{Title: "one"}},
	}
	agg := newTestAggregator(t, provider, newMemStore())

	ctx := context.Background()
	if _, err := agg.FetchForSymbol(ctx, "ITC.NS", true); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := agg.FetchForSymbol(ctx, "ITC.NS", true); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("expected 1 provider call, got %d", provider.calls)
	}
}

func TestFetchCacheBypass(t *testing.T) {
	provider := &fakeNewsProvider{
		configured: true,
		items:      []models.NewsItem{{Title: "one"}},
	}
	agg := newTestAggregator(t, provider, newMemStore())

	ctx := context.Background()
	if _, err := agg.FetchForSymbol(ctx, "ITC.NS", true); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := agg.FetchForSymbol(ctx, "ITC.NS", false); err != nil {
		t.Fatalf("bypassing fetch: %v", err)
	}
	if provider.calls != 2 {
		t.Fatalf("bypass must hit the provider, got %d calls", provider.calls)
	}
}

func TestMarketNewsUsesGlobalKey(t *testing.T) {
	store := newMemStore()
	provider := &fakeNewsProvider{configured: true, items: []models.NewsItem{{Title: "market digest"}}}
	agg := newTestAggregator(t, provider, store)

	ctx := context.Background()
	if _, err := agg.FetchMarketNews(ctx, true); err != nil {
		t.Fatalf("market news: %v", err)
	}
	if _, err := agg.FetchForSymbol(ctx, "ITC.NS", true); err != nil {
		t.Fatalf("symbol news: %v", err)
	}

	if store.count(domrepo.KindNews, domrepo.GlobalNewsKey) != 1 {
		t.Fatalf("expected one global news entry")
	}
	if store.count(domrepo.KindNews, "ITC.NS") != 1 {
		t.Fatalf("expected one symbol news entry")
	}
}
