package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Values are resolved in order:
// built-in defaults, optional YAML file, .env file, process environment.
type Config struct {
	DataPath string `yaml:"data_path" env:"HOUSING_DATA_PATH"`

	KnowledgeBasePath string `yaml:"kb_output_path" env:"KB_OUTPUT_PATH"`
	PriceThreshold    int64  `yaml:"kb_price_threshold" env:"KB_PRICE_THRESHOLD"`

	MarkupPercent float64 `yaml:"markup_percent" env:"MARKUP_PERCENT"`

	CurrencySymbol string `yaml:"currency_symbol" env:"CURRENCY_SYMBOL"`
	Locale         string `yaml:"locale" env:"LOCALE"`

	Postgres PostgresConfig `yaml:"postgres"`

	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
}

// PostgresConfig configures the optional database mirror used by sync-db.
type PostgresConfig struct {
	DSN        string `yaml:"dsn" env:"POSTGRES_DSN"`
	MaxRetries int    `yaml:"max_retries" env:"POSTGRES_MAX_RETRIES"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		DataPath:          "./data/house-price.json",
		KnowledgeBasePath: "./prolog/housing.pl",
		PriceThreshold:    1000000,
		MarkupPercent:     10,
		CurrencySymbol:    "RM",
		Locale:            "en-MY",
		Postgres: PostgresConfig{
			MaxRetries: 5,
		},
		LogLevel: "info",
	}
}

// Load resolves the configuration. path names an optional YAML file; an
// empty path or a missing file falls back to defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %q: %w", path, err)
			}
		}
	}

	// .env is optional; system env vars apply either way
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return fmt.Errorf("config: HOUSING_DATA_PATH must not be empty")
	}
	if c.KnowledgeBasePath == "" {
		return fmt.Errorf("config: KB_OUTPUT_PATH must not be empty")
	}
	if c.PriceThreshold < 0 {
		return fmt.Errorf("config: KB_PRICE_THRESHOLD must be non-negative, got %d", c.PriceThreshold)
	}
	if math.IsNaN(c.MarkupPercent) || math.IsInf(c.MarkupPercent, 0) || c.MarkupPercent < -100 {
		return fmt.Errorf("config: MARKUP_PERCENT must be a number >= -100, got %v", c.MarkupPercent)
	}
	if c.Postgres.MaxRetries < 1 {
		return fmt.Errorf("config: POSTGRES_MAX_RETRIES must be at least 1, got %d", c.Postgres.MaxRetries)
	}
	return nil
}

// Debug reports whether debug logging is requested.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}
