package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/voltbot/internal/services/market"
)

func defaults() Config {
	return Config{
		BybitBaseURL: market.DefaultBaseURL,
		HTTPTimeout:  market.DefaultTimeout,
		MaxRetries:   market.DefaultMaxRetries,
		CandleLimit:  market.MaxCandleLimit,
	}
}

func TestApplyYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"bybit_base_url: https://api.bybit.test\nhttp_timeout: 5s\nmax_retries: 5\ncandle_limit: 365\n",
	), 0o644))

	cfg := defaults()
	require.NoError(t, applyYaml(path, &cfg))

	require.Equal(t, "https://api.bybit.test", cfg.BybitBaseURL)
	require.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	require.Equal(t, 5, cfg.MaxRetries)
	require.Equal(t, 365, cfg.CandleLimit)
}

func TestApplyYaml_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_retries: 4\n"), 0o644))

	cfg := defaults()
	require.NoError(t, applyYaml(path, &cfg))

	require.Equal(t, 4, cfg.MaxRetries)
	require.Equal(t, market.DefaultBaseURL, cfg.BybitBaseURL)
	require.Equal(t, market.DefaultTimeout, cfg.HTTPTimeout)
	require.Equal(t, market.MaxCandleLimit, cfg.CandleLimit)
}

func TestApplyYaml_BadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_timeout: soon\n"), 0o644))

	cfg := defaults()
	require.Error(t, applyYaml(path, &cfg))
}

func TestValidate(t *testing.T) {
	cfg := defaults()
	require.NoError(t, cfg.validate())

	cfg.CandleLimit = 10
	require.Error(t, cfg.validate(), "fewer candles than the statistics need")

	cfg = defaults()
	cfg.CandleLimit = 2000
	require.Error(t, cfg.validate())

	cfg = defaults()
	cfg.MaxRetries = 0
	require.Error(t, cfg.validate())
}
