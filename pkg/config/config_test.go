package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
environment: test
clickhouse:
  host: localhost
`

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Fatalf("default port = %d", cfg.Server.Port)
	}
	if cfg.Forecast.Days != 10 || cfg.Forecast.AROrder != 5 || cfg.Forecast.DiffOrder != 1 {
		t.Fatalf("unexpected forecast defaults %+v", cfg.Forecast)
	}
	if cfg.Forecast.SentimentWeight != 0.3 || cfg.Forecast.Damping != 0.8 {
		t.Fatalf("unexpected blend defaults %+v", cfg.Forecast)
	}
	if cfg.Market.PriceCacheTTL != 5*time.Minute {
		t.Fatalf("price ttl = %v", cfg.Market.PriceCacheTTL)
	}
	if cfg.News.CacheTTL != 30*time.Minute {
		t.Fatalf("news ttl = %v", cfg.News.CacheTTL)
	}
	if cfg.Market.OverviewCacheTTL != time.Minute {
		t.Fatalf("overview ttl = %v", cfg.Market.OverviewCacheTTL)
	}
	if cfg.Forecast.CacheTTL != time.Hour {
		t.Fatalf("prediction ttl = %v", cfg.Forecast.CacheTTL)
	}
	if cfg.Maintenance.PurgeInterval != 6*time.Hour || cfg.Maintenance.Retention != 7*24*time.Hour {
		t.Fatalf("unexpected maintenance defaults %+v", cfg.Maintenance)
	}
	if cfg.Market.MaxConcurrent != 10 {
		t.Fatalf("max concurrent = %d", cfg.Market.MaxConcurrent)
	}
	if len(cfg.Market.Symbols) == 0 {
		t.Fatalf("default universe must not be empty")
	}
	if len(cfg.Market.Categories) == 0 {
		t.Fatalf("default categories must not be empty")
	}
}

func TestLoadMissingEnvironment(t *testing.T) {
	if _, err := Load(writeConfig(t, "clickhouse:\n  host: localhost\n")); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadMissingClickHouseHost(t *testing.T) {
	if _, err := Load(writeConfig(t, "environment: test\n")); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadInvalidSentimentWeight(t *testing.T) {
	body := minimalConfig + "forecast:\n  sentiment_weight: 1.5\n"
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatalf("expected validation error for out-of-range weight")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "k-123")
	t.Setenv("SYMBOLS", "AAA.NS,BBB.NS")
	t.Setenv("CLICKHOUSE_HOST", "ch.internal")
	t.Setenv("KAFKA_BROKERS", "b1:9092,b2:9092")

	cfg, err := LoadWithEnv(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.News.APIKey != "k-123" {
		t.Fatalf("api key override missing")
	}
	if len(cfg.Market.Symbols) != 2 || cfg.Market.Symbols[0] != "AAA.NS" {
		t.Fatalf("symbols override missing: %v", cfg.Market.Symbols)
	}
	if cfg.ClickHouse.Host != "ch.internal" {
		t.Fatalf("clickhouse host override missing")
	}
	if len(cfg.Kafka.Brokers) != 2 {
		t.Fatalf("kafka brokers override missing: %v", cfg.Kafka.Brokers)
	}
}
