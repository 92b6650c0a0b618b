//go:build wireinject
// +build wireinject

package di

import (
	"StockPulse/pkg/config"
	"StockPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideCacheStore,
		ProvideHotCache,
		ProvidePublisher,

		// External providers
		ProvideNewsProvider,
		ProvideMarketData,
		ProvideSentimentAnalyzer,

		// Use cases
		ProvideNewsAggregator,
		ProvideForecastEngine,
		ProvideMarketOverview,
		ProvideMaintenance,

		// Transport
		ProvideHub,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
