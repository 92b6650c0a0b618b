package di

import (
	"context"
	"fmt"
	"time"

	"StockPulse/internal/domain/repository"
	"StockPulse/internal/handler/api"
	"StockPulse/internal/handler/ws"
	internalrepo "StockPulse/internal/repository"
	icache "StockPulse/internal/service/cache"
	"StockPulse/internal/service/marketdata"
	"StockPulse/internal/service/newsapi"
	"StockPulse/internal/service/sentiment"
	"StockPulse/internal/usecase"
	pkgch "StockPulse/pkg/clickhouse"
	"StockPulse/pkg/config"
	xhttp "StockPulse/pkg/http"
	pkgkafka "StockPulse/pkg/kafka"
	applogger "StockPulse/pkg/logger"
	"StockPulse/pkg/metrics"
	"StockPulse/pkg/server"

	"github.com/labstack/echo/v4"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client and ensures schema.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, internalrepo.Schema(cfg.ClickHouse.Database)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideCacheStore creates the durable append-only cache store.
func ProvideCacheStore(chClient *pkgch.Client, cfg *config.Config, l *applogger.Logger) repository.CacheStore {
	store := internalrepo.NewCHCacheStore(chClient, cfg.ClickHouse.Database)
	store.SetLogger(l)
	return store
}

// ProvideHotCache picks Redis when configured, in-process TTL cache
// otherwise.
func ProvideHotCache(cfg *config.Config) icache.BytesCache {
	if cfg.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvidePublisher creates the Kafka forecast publisher, nil when Kafka is
// disabled.
func ProvidePublisher(cfg *config.Config) (repository.Publisher, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithBatch(cfg.Kafka.BatchSize, cfg.Kafka.BatchTimeout),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Async),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic), nil
}

// ProvideNewsProvider creates the NewsAPI client.
func ProvideNewsProvider(cfg *config.Config) repository.NewsProvider {
	return newsapi.New(newsapi.Config{
		BaseURL:  cfg.News.BaseURL,
		APIKey:   cfg.News.APIKey,
		Language: cfg.News.Language,
		Sources:  cfg.News.Sources,
		Timeout:  cfg.News.Timeout,
	})
}

// ProvideMarketData creates the market data client.
func ProvideMarketData(cfg *config.Config) repository.MarketData {
	return marketdata.New(marketdata.Config{
		BaseURL:  cfg.Market.BaseURL,
		Currency: cfg.Market.Currency,
		Timeout:  cfg.Market.FetchTimeout,
	})
}

// ProvideSentimentAnalyzer creates the lexicon scorer.
func ProvideSentimentAnalyzer() *sentiment.Analyzer {
	return sentiment.New()
}

// ProvideNewsAggregator creates the news aggregation use case.
func ProvideNewsAggregator(
	provider repository.NewsProvider,
	store repository.CacheStore,
	analyzer *sentiment.Analyzer,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.NewsAggregator {
	return usecase.NewNewsAggregator(provider, store, analyzer, m, l, usecase.NewsConfig{
		MaxItems:    cfg.News.MaxItems,
		Window:      cfg.News.Window,
		MarketQuery: cfg.News.MarketQ,
		CacheTTL:    cfg.News.CacheTTL,
	})
}

// ProvideForecastEngine creates the forecast use case.
func ProvideForecastEngine(
	market repository.MarketData,
	news *usecase.NewsAggregator,
	store repository.CacheStore,
	pub repository.Publisher,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.ForecastEngine {
	return usecase.NewForecastEngine(market, news, store, pub, m, l, usecase.ForecastConfig{
		Days:            cfg.Forecast.Days,
		AROrder:         cfg.Forecast.AROrder,
		DiffOrder:       cfg.Forecast.DiffOrder,
		SentimentWeight: cfg.Forecast.SentimentWeight,
		Damping:         cfg.Forecast.Damping,
		CacheTTL:        cfg.Forecast.CacheTTL,
		HistoryDays:     cfg.Market.HistoryDays,
		PriceCacheTTL:   cfg.Market.PriceCacheTTL,
	})
}

// ProvideMarketOverview creates the overview aggregation use case.
func ProvideMarketOverview(
	market repository.MarketData,
	hot icache.BytesCache,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.MarketOverview {
	return usecase.NewMarketOverview(market, hot, m, l, usecase.OverviewConfig{
		Symbols:       cfg.Market.Symbols,
		Categories:    cfg.Market.Categories,
		MaxConcurrent: cfg.Market.MaxConcurrent,
		FetchTimeout:  cfg.Market.FetchTimeout,
		CacheTTL:      cfg.Market.OverviewCacheTTL,
	})
}

// ProvideMaintenance creates the purge loop.
func ProvideMaintenance(store repository.CacheStore, l *applogger.Logger, cfg *config.Config) *usecase.Maintenance {
	return usecase.NewMaintenance(store, l, usecase.MaintenanceConfig{
		PurgeInterval: cfg.Maintenance.PurgeInterval,
		Retention:     cfg.Maintenance.Retention,
	})
}

// ProvideHub creates the WebSocket broadcast hub.
func ProvideHub(overview *usecase.MarketOverview, l *applogger.Logger, cfg *config.Config) *ws.Hub {
	return ws.NewHub(overview, l, cfg.Market.UpdateInterval)
}

// routes registers the REST handlers and the WebSocket endpoint on one Echo
// instance.
type routes struct {
	api *api.MarketEchoHandler
	hub *ws.Hub
}

func (r *routes) RegisterRoutes(e *echo.Echo) {
	r.api.RegisterRoutes(e)
	r.hub.RegisterRoutes(e)
}

// ProvideHTTPHandler bundles all route registrars.
func ProvideHTTPHandler(
	l *applogger.Logger,
	engine *usecase.ForecastEngine,
	news *usecase.NewsAggregator,
	overview *usecase.MarketOverview,
	hub *ws.Hub,
) xhttp.Handler {
	return &routes{
		api: api.NewMarketEchoHandler(l, engine, news, overview),
		hub: hub,
	}
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	hub *ws.Hub,
	maint *usecase.Maintenance,
	chClient *pkgch.Client,
	pub repository.Publisher,
) *server.App {
	return server.New(cfg, l, handler, hub, maint, chClient, pub)
}
