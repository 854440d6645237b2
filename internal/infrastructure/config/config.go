package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/shopspring/decimal"

	"github.com/erginozdemir/tools4audit/internal/domain"
)

// Report store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"60s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxUploadBytes      int64         `env:"MAX_UPLOAD_BYTES"      envDefault:"33554432"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Report store
	ReportStore     string        `env:"REPORT_STORE"      envDefault:"memory"`
	ReportTTL       time.Duration `env:"REPORT_TTL"        envDefault:"1h"`
	ReportCacheSize int           `env:"REPORT_CACHE_SIZE" envDefault:"256"`

	// Redis (used when REPORT_STORE=redis)
	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`

	// Cash analysis
	CashLargeThreshold string   `env:"CASH_LARGE_THRESHOLD" envDefault:"5000"`
	CashRiskKeywords   []string `env:"CASH_RISK_KEYWORDS"   envSeparator:";"`

	// Rate limiting (requests per second per client IP; 0 disables)
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"10"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c *Config) Validate() error {
	switch c.ReportStore {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("REPORT_STORE must be %q or %q, got %q", StoreMemory, StoreRedis, c.ReportStore)
	}
	if c.ReportTTL <= 0 {
		return fmt.Errorf("REPORT_TTL must be positive, got %s", c.ReportTTL)
	}
	if c.ReportCacheSize <= 0 {
		return fmt.Errorf("REPORT_CACHE_SIZE must be positive, got %d", c.ReportCacheSize)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	if _, err := c.LargeThreshold(); err != nil {
		return err
	}
	return nil
}

// LargeThreshold parses CASH_LARGE_THRESHOLD.
func (c *Config) LargeThreshold() (decimal.Decimal, error) {
	d, err := domain.ParseAmount(c.CashLargeThreshold)
	if err != nil {
		return decimal.Zero, fmt.Errorf("CASH_LARGE_THRESHOLD: %w", err)
	}
	return d, nil
}
