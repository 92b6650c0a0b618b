package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/repository"
	applogger "StockPulse/pkg/logger"
)

// tradingDaysPerYear annualizes daily return volatility.
const tradingDaysPerYear = 252

// ForecastConfig tunes the autoregressive model and its sentiment blend.
type ForecastConfig struct {
	Days            int
	AROrder         int
	DiffOrder       int
	SentimentWeight float64
	Damping         float64
	CacheTTL        time.Duration
	HistoryDays     int
	PriceCacheTTL   time.Duration
}

// ForecastEngine produces multi-day price forecasts by fitting a damped
// autoregressive model on differenced closes and tilting the projection with
// aggregated news sentiment. Results are cached and optionally published.
type ForecastEngine struct {
	market  domrepo.MarketData
	news    *NewsAggregator
	store   domrepo.CacheStore
	pub     domrepo.Publisher
	metrics domrepo.Metrics
	l       *applogger.Logger
	cfg     ForecastConfig
}

func NewForecastEngine(
	market domrepo.MarketData,
	news *NewsAggregator,
	store domrepo.CacheStore,
	pub domrepo.Publisher,
	metrics domrepo.Metrics,
	l *applogger.Logger,
	cfg ForecastConfig,
) *ForecastEngine {
	return &ForecastEngine{
		market:  market,
		news:    news,
		store:   store,
		pub:     pub,
		metrics: metrics,
		l:       l,
		cfg:     cfg,
	}
}

// Predict computes the sentiment-adjusted forecast for symbol. With useCache
// a prediction fresher than the forecast TTL is returned as-is; the freshly
// computed result is always written back to the cache.
func (e *ForecastEngine) Predict(ctx context.Context, symbol string, useCache bool) (*models.ForecastResult, error) {
	start := time.Now()

	if useCache {
		cached, err := repository.GetJSON[models.ForecastResult](ctx, e.store, domrepo.KindPrediction, symbol, e.cfg.CacheTTL)
		if err == nil {
			e.metrics.RecordCacheHit(string(domrepo.KindPrediction))
			return cached, nil
		}
		if !errors.Is(err, domrepo.ErrCacheMiss) {
			e.l.Warn("prediction cache read failed", applogger.String("symbol", symbol), applogger.Error(err))
		}
		e.metrics.RecordCacheMiss(string(domrepo.KindPrediction))
	}

	series, err := e.History(ctx, symbol, e.cfg.HistoryDays)
	if err != nil {
		return nil, err
	}
	if series.Empty() {
		return nil, domrepo.ErrNoData
	}
	closes := series.Closes()

	base, volatility := e.arForecast(closes)

	items, err := e.news.FetchForSymbol(ctx, symbol, true)
	if err != nil {
		return nil, err
	}
	summary := e.news.Summarize(items)

	values, sentimentAdj := e.applySentiment(base, summary.Score)
	intervals := e.confidenceIntervals(values, closes, summary.Confidence)

	result := &models.ForecastResult{
		Symbol:              symbol,
		Values:              values,
		ConfidenceIntervals: intervals,
		Sentiment:           summary,
		Factors: models.ForecastFactors{
			ModelContribution:     1 - e.cfg.SentimentWeight,
			SentimentContribution: e.cfg.SentimentWeight,
			BaseVolatility:        volatility,
			SentimentAdjustment:   sentimentAdj,
		},
		NewsCount: len(items),
		Timestamp: time.Now().UTC(),
	}

	if err := repository.PutJSON(ctx, e.store, domrepo.KindPrediction, symbol, result); err != nil {
		e.l.Warn("prediction cache write failed", applogger.String("symbol", symbol), applogger.Error(err))
	}
	if e.pub != nil {
		if err := e.pub.PublishForecast(ctx, result); err != nil {
			e.l.Warn("forecast publish failed", applogger.String("symbol", symbol), applogger.Error(err))
		}
	}

	e.metrics.RecordLatency("predict", time.Since(start).Seconds())
	e.l.Info("forecast computed",
		applogger.String("symbol", symbol),
		applogger.Int("horizon", len(values)),
		applogger.Int("news_count", len(items)),
		applogger.Float64("sentiment", summary.Score),
	)
	return result, nil
}

// History returns the daily close series for symbol, serving from the price
// cache when an entry fresher than the price TTL exists. Cache entries are
// keyed by symbol only; a nonpositive days falls back to the configured
// lookback window.
func (e *ForecastEngine) History(ctx context.Context, symbol string, days int) (models.PriceSeries, error) {
	if days <= 0 {
		days = e.cfg.HistoryDays
	}

	cached, err := repository.GetJSON[models.PriceSeries](ctx, e.store, domrepo.KindPrice, symbol, e.cfg.PriceCacheTTL)
	if err == nil {
		e.metrics.RecordCacheHit(string(domrepo.KindPrice))
		return *cached, nil
	}
	if !errors.Is(err, domrepo.ErrCacheMiss) {
		e.l.Warn("price cache read failed", applogger.String("symbol", symbol), applogger.Error(err))
	}
	e.metrics.RecordCacheMiss(string(domrepo.KindPrice))

	to := time.Now()
	from := to.AddDate(0, 0, -days)
	series, err := e.market.History(ctx, symbol, from, to)
	if err != nil {
		e.metrics.RecordUpstreamError("market")
		return models.PriceSeries{}, err
	}

	if !series.Empty() {
		if err := repository.PutJSON(ctx, e.store, domrepo.KindPrice, symbol, &series); err != nil {
			e.l.Warn("price cache write failed", applogger.String("symbol", symbol), applogger.Error(err))
		}
	}
	return series, nil
}

// arForecast fits the damped AR model and returns the raw projection plus
// the annualized return volatility of the input series.
func (e *ForecastEngine) arForecast(prices []float64) ([]float64, float64) {
	diff := append([]float64(nil), prices...)
	for range e.cfg.DiffOrder {
		diff = difference(diff)
	}

	coefs := e.arCoefficients(diff)

	working := append([]float64(nil), diff...)
	forecastDiff := make([]float64, 0, e.cfg.Days)
	for range e.cfg.Days {
		var next float64
		for j := 0; j < len(coefs) && j < len(working); j++ {
			next += coefs[j] * working[len(working)-1-j]
		}
		forecastDiff = append(forecastDiff, next)
		working = append(working, next)
	}

	last := prices[len(prices)-1]
	forecast := integrate(forecastDiff, last)

	return forecast, annualizedVolatility(prices)
}

// arCoefficients estimates one autocorrelation-style coefficient per lag and
// normalizes their absolute sum to the damping factor so the recursion
// cannot diverge.
func (e *ForecastEngine) arCoefficients(data []float64) []float64 {
	n := len(data)
	coefs := make([]float64, 0, e.cfg.AROrder)

	var denom float64
	for _, v := range data {
		denom += v * v
	}

	for lag := 1; lag <= e.cfg.AROrder; lag++ {
		if lag >= n || denom == 0 {
			coefs = append(coefs, 0)
			continue
		}
		var num float64
		for i := lag; i < n; i++ {
			num += data[i] * data[i-lag]
		}
		coefs = append(coefs, num/denom)
	}

	var total float64
	for _, c := range coefs {
		total += math.Abs(c)
	}
	if total > 0 {
		for i := range coefs {
			coefs[i] = coefs[i] / total * e.cfg.Damping
		}
	}
	return coefs
}

// applySentiment tilts the projection toward the sentiment signal. The tilt
// grows linearly with the horizon and is capped at 10% of the value on the
// final day for a full-strength signal.
func (e *ForecastEngine) applySentiment(values []float64, score float64) ([]float64, float64) {
	adj := score * e.cfg.SentimentWeight
	out := make([]float64, len(values))
	for i, v := range values {
		dayWeight := float64(i+1) / float64(len(values))
		out[i] = v * (1 + adj*dayWeight*0.1)
	}
	return out, adj
}

// confidenceIntervals widens the band with the square root of the horizon.
// Low sentiment confidence inflates the 1.96 z-band by up to 50%. Lower
// bounds never go below zero.
func (e *ForecastEngine) confidenceIntervals(values, prices []float64, sentimentConfidence float64) []models.ConfidenceInterval {
	stdErr := dailyReturnStd(prices)
	factor := 1.96 * (1 + (1-sentimentConfidence)*0.5)

	intervals := make([]models.ConfidenceInterval, len(values))
	for i, v := range values {
		margin := factor * stdErr * v * math.Sqrt(float64(i+1))
		lower := v - margin
		if lower < 0 {
			lower = 0
		}
		intervals[i] = models.ConfidenceInterval{Lower: lower, Upper: v + margin}
	}
	return intervals
}

func difference(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	out := make([]float64, len(data)-1)
	for i := 1; i < len(data); i++ {
		out[i-1] = data[i] - data[i-1]
	}
	return out
}

// integrate cumulatively sums the differenced forecast from the last
// observed price.
func integrate(diff []float64, last float64) []float64 {
	out := make([]float64, len(diff))
	cum := last
	for i, v := range diff {
		cum += v
		out[i] = cum
	}
	return out
}

func simpleReturns(prices []float64) []float64 {
	var returns []float64
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			continue
		}
		returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
	}
	return returns
}

func dailyReturnStd(prices []float64) float64 {
	returns := simpleReturns(prices)
	if len(returns) == 0 {
		return 0
	}
	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))
	var sum float64
	for _, r := range returns {
		d := r - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(returns)))
}

func annualizedVolatility(prices []float64) float64 {
	return dailyReturnStd(prices) * math.Sqrt(tradingDaysPerYear)
}
