// Package config assembles the bot configuration from an optional YAML file,
// flags and environment variables. The Telegram token comes from the
// environment only; everything else has documented defaults.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/vadiminshakov/voltbot/internal/services/market"
	"gopkg.in/yaml.v3"
)

const telegramTokenEnv = "TELEGRAM_BOT_TOKEN"

// Config holds everything the process needs at startup.
type Config struct {
	TelegramToken string
	BybitBaseURL  string
	HTTPTimeout   time.Duration
	MaxRetries    int
	CandleLimit   int
}

type configTmp struct {
	BybitBaseURL string `yaml:"bybit_base_url,omitempty"`
	HTTPTimeout  string `yaml:"http_timeout,omitempty"`
	MaxRetries   int    `yaml:"max_retries,omitempty"`
	CandleLimit  int    `yaml:"candle_limit,omitempty"`
}

// Get parses flags, loads .env if present and returns the effective config.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	flag.Parse()

	// .env is a convenience for local runs, absence is not an error
	_ = godotenv.Load()

	cfg := Config{
		BybitBaseURL: market.DefaultBaseURL,
		HTTPTimeout:  market.DefaultTimeout,
		MaxRetries:   market.DefaultMaxRetries,
		CandleLimit:  market.MaxCandleLimit,
	}

	if *configPath != "" {
		if err := applyYaml(*configPath, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.TelegramToken = os.Getenv(telegramTokenEnv)
	if cfg.TelegramToken == "" {
		return Config{}, fmt.Errorf("%s environment variable is required", telegramTokenEnv)
	}

	return cfg, cfg.validate()
}

func applyYaml(path string, cfg *Config) error {
	f, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var tmp configTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return fmt.Errorf("incorrect yaml config %s: %w", path, err)
	}

	if tmp.BybitBaseURL != "" {
		cfg.BybitBaseURL = tmp.BybitBaseURL
	}
	if tmp.HTTPTimeout != "" {
		timeout, err := time.ParseDuration(tmp.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("incorrect 'http_timeout' param in yaml config (correct format is 10s): %w", err)
		}
		cfg.HTTPTimeout = timeout
	}
	if tmp.MaxRetries > 0 {
		cfg.MaxRetries = tmp.MaxRetries
	}
	if tmp.CandleLimit > 0 {
		cfg.CandleLimit = tmp.CandleLimit
	}

	return nil
}

func (c Config) validate() error {
	if c.CandleLimit < market.MinCandles || c.CandleLimit > market.MaxCandleLimit {
		return fmt.Errorf("candle_limit must be between %d and %d, got %d",
			market.MinCandles, market.MaxCandleLimit, c.CandleLimit)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be at least 1, got %d", c.MaxRetries)
	}
	return nil
}
