package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	ClickHouse struct {
		Host         string        `yaml:"host"`
		Port         int           `yaml:"port"`
		Database     string        `yaml:"database"`
		User         string        `yaml:"user"`
		Password     string        `yaml:"password"`
		UseHTTP      bool          `yaml:"use_http"`
		AsyncInsert  bool          `yaml:"async_insert"`
		WaitForAsync bool          `yaml:"wait_for_async_insert"`
		DialTimeout  time.Duration `yaml:"dial_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"clickhouse"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		MaxAttempts  int           `yaml:"max_attempts"`
		BatchSize    int           `yaml:"batch_size"`
		BatchTimeout time.Duration `yaml:"batch_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		Async        bool          `yaml:"async"`
	} `yaml:"kafka"`
	News struct {
		APIKey   string        `yaml:"api_key"`
		BaseURL  string        `yaml:"base_url"`
		Sources  string        `yaml:"sources"`
		Language string        `yaml:"language"`
		MaxItems int           `yaml:"max_items"`
		Window   time.Duration `yaml:"window"`
		MarketQ  string        `yaml:"market_query"`
		CacheTTL time.Duration `yaml:"cache_ttl"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"news"`
	Market struct {
		BaseURL          string              `yaml:"base_url"`
		Symbols          []string            `yaml:"symbols"`
		Categories       map[string][]string `yaml:"categories"`
		Currency         string              `yaml:"currency"`
		MaxConcurrent    int                 `yaml:"max_concurrent"`
		FetchTimeout     time.Duration       `yaml:"fetch_timeout"`
		PriceCacheTTL    time.Duration       `yaml:"price_cache_ttl"`
		OverviewCacheTTL time.Duration       `yaml:"overview_cache_ttl"`
		UpdateInterval   time.Duration       `yaml:"update_interval"`
		HistoryDays      int                 `yaml:"history_days"`
	} `yaml:"market"`
	Forecast struct {
		Days            int           `yaml:"days"`
		AROrder         int           `yaml:"ar_order"`
		DiffOrder       int           `yaml:"diff_order"`
		SentimentWeight float64       `yaml:"sentiment_weight"`
		Damping         float64       `yaml:"damping"`
		CacheTTL        time.Duration `yaml:"cache_ttl"`
	} `yaml:"forecast"`
	Maintenance struct {
		PurgeInterval time.Duration `yaml:"purge_interval"`
		Retention     time.Duration `yaml:"retention"`
	} `yaml:"maintenance"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		c.News.APIKey = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.Market.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
		c.Redis.Enabled = true
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.News.BaseURL == "" {
		c.News.BaseURL = "https://newsapi.org/v2"
	}
	if c.News.Language == "" {
		c.News.Language = "en"
	}
	if c.News.MaxItems == 0 {
		c.News.MaxItems = 10
	}
	if c.News.Window == 0 {
		c.News.Window = 7 * 24 * time.Hour
	}
	if c.News.MarketQ == "" {
		c.News.MarketQ = "stock market India OR NSE OR BSE OR Nifty OR Sensex"
	}
	if c.News.CacheTTL == 0 {
		c.News.CacheTTL = 30 * time.Minute
	}
	if c.News.Timeout == 0 {
		c.News.Timeout = 10 * time.Second
	}
	if len(c.Market.Symbols) == 0 {
		c.Market.Symbols = DefaultSymbols()
	}
	if len(c.Market.Categories) == 0 {
		c.Market.Categories = DefaultCategories()
	}
	if c.Market.Currency == "" {
		c.Market.Currency = "INR"
	}
	if c.Market.MaxConcurrent == 0 {
		c.Market.MaxConcurrent = 10
	}
	if c.Market.FetchTimeout == 0 {
		c.Market.FetchTimeout = 5 * time.Second
	}
	if c.Market.PriceCacheTTL == 0 {
		c.Market.PriceCacheTTL = 5 * time.Minute
	}
	if c.Market.OverviewCacheTTL == 0 {
		c.Market.OverviewCacheTTL = time.Minute
	}
	if c.Market.UpdateInterval == 0 {
		c.Market.UpdateInterval = 30 * time.Second
	}
	if c.Market.HistoryDays == 0 {
		c.Market.HistoryDays = 365
	}
	if c.Forecast.Days == 0 {
		c.Forecast.Days = 10
	}
	if c.Forecast.AROrder == 0 {
		c.Forecast.AROrder = 5
	}
	if c.Forecast.DiffOrder == 0 {
		c.Forecast.DiffOrder = 1
	}
	if c.Forecast.SentimentWeight == 0 {
		c.Forecast.SentimentWeight = 0.3
	}
	if c.Forecast.Damping == 0 {
		c.Forecast.Damping = 0.8
	}
	if c.Forecast.CacheTTL == 0 {
		c.Forecast.CacheTTL = time.Hour
	}
	if c.Maintenance.PurgeInterval == 0 {
		c.Maintenance.PurgeInterval = 6 * time.Hour
	}
	if c.Maintenance.Retention == 0 {
		c.Maintenance.Retention = 7 * 24 * time.Hour
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required")
	}
	if len(c.Market.Symbols) == 0 {
		return fmt.Errorf("market.symbols cannot be empty")
	}
	if c.Forecast.SentimentWeight < 0 || c.Forecast.SentimentWeight > 1 {
		return fmt.Errorf("forecast.sentiment_weight must be within [0,1], got %v", c.Forecast.SentimentWeight)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers are required when kafka is enabled")
	}
	return nil
}
