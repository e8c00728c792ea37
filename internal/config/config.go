package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment  string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelName string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile      string `env:"LOG_FILE"`

	Scenario string `env:"ADVENTURE_SCENARIO" envDefault:"garden"`
	Seed     uint64 `env:"ADVENTURE_SEED"` // 0 means seed from the clock
	Wrap     int    `env:"ADVENTURE_WRAP" envDefault:"80"`

	RedisURL string `env:"REDIS_URL"` // empty disables broadcasting

	LogLevel slog.Level
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.LogLevel = parseLogLevel(cfg.LogLevelName)
	if cfg.Wrap < 0 {
		return nil, fmt.Errorf("ADVENTURE_WRAP must not be negative, got %d", cfg.Wrap)
	}
	return &cfg, nil
}

// IsProduction reports whether logs should be machine readable.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
