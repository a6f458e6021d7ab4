// Package market implements the Bybit market-data client: symbol resolution
// with ambiguous-ticker fallback and daily candle retrieval, both behind a
// shared retry layer with exponential backoff.
package market

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	bybit "github.com/hirokisan/bybit/v2"
	"github.com/jpillora/backoff"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/voltbot/internal/apperr"
	"github.com/vadiminshakov/voltbot/internal/entity"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public Bybit v5 REST endpoint.
	DefaultBaseURL = "https://api.bybit.com"
	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxRetries is the attempt budget per upstream call.
	DefaultMaxRetries = 3
	// DefaultBackoffMin is the delay before the second attempt; it doubles
	// after each failure.
	DefaultBackoffMin = 500 * time.Millisecond

	maxBackoff = 8 * time.Second

	// MaxCandleLimit is the Bybit kline fetch cap.
	MaxCandleLimit = 1000
	// MinCandles is the minimum history required for the statistics downstream.
	MinCandles = 30

	maxTickerLen = 20
)

var nonAlnum = regexp.MustCompile(`[^A-Z0-9]`)

// quoteSuffixes are the quote currencies a ticker may already carry. A ticker
// ending in one of these is probed as-is, with no candidate expansion.
var quoteSuffixes = []string{"USDT", "USDC", "USD"}

// marketAPI is the slice of the Bybit SDK the client consumes. Narrow so
// tests can stub it.
type marketAPI interface {
	GetInstrumentsInfo(param bybit.V5GetInstrumentsInfoParam) (*bybit.V5GetInstrumentsInfoResponse, error)
	GetKline(param bybit.V5GetKlineParam) (*bybit.V5GetKlineResponse, error)
}

// Config carries the client knobs. Zero values fall back to the defaults above.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	BackoffMin time.Duration
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.BackoffMin <= 0 {
		c.BackoffMin = DefaultBackoffMin
	}
	return c
}

// Client resolves tickers and fetches daily candles from Bybit.
// Safe for concurrent use; the only shared state is the HTTP client pool.
type Client struct {
	api        marketAPI
	retries    int
	backoffMin time.Duration
	l          *zap.Logger
}

// NewClient builds a client over the Bybit v5 REST API. Market data endpoints
// are public, no credentials are needed.
func NewClient(cfg Config, l *zap.Logger) *Client {
	cfg = cfg.withDefaults()

	httpClient := &http.Client{Timeout: cfg.Timeout}
	sdk := bybit.NewClient().WithBaseURL(cfg.BaseURL).WithHTTPClient(httpClient)

	return &Client{
		api:        sdk.V5().Market(),
		retries:    cfg.MaxRetries,
		backoffMin: cfg.BackoffMin,
		l:          l,
	}
}

// Resolve maps a raw user ticker to the first instrument Bybit recognizes.
// Segments are probed linear, then inverse, then spot; within a segment the
// candidates are tried in generation order. Invalid input fails before any
// network call.
func (c *Client) Resolve(ctx context.Context, raw string) (entity.Resolution, error) {
	normalized, err := normalizeTicker(raw)
	if err != nil {
		return entity.Resolution{}, err
	}

	candidates := candidates(normalized)

	for _, segment := range entity.SegmentSearchOrder() {
		for _, candidate := range candidates {
			symbol, found, err := c.lookupInstrument(ctx, segment, candidate)
			if err != nil {
				return entity.Resolution{}, err
			}
			if found {
				return entity.Resolution{Segment: segment, Symbol: symbol}, nil
			}
		}
	}

	return entity.Resolution{}, &apperr.SymbolNotFoundError{Ticker: normalized}
}

// FetchDailyCandles retrieves up to limit daily candles for a resolved
// instrument, requires at least MinCandles rows and returns the series sorted
// ascending by timestamp. Upstream ordering is not trusted.
func (c *Client) FetchDailyCandles(ctx context.Context, res entity.Resolution, limit int) (entity.CandleSeries, error) {
	if limit <= 0 || limit > MaxCandleLimit {
		limit = MaxCandleLimit
	}

	var rows bybit.V5GetKlineList
	err := c.withRetry(ctx, "kline", func() error {
		resp, err := c.api.GetKline(bybit.V5GetKlineParam{
			Category: bybit.CategoryV5(res.Segment),
			Symbol:   bybit.SymbolV5(res.Symbol),
			Interval: bybit.IntervalD,
			Limit:    &limit,
		})
		if err != nil {
			return err
		}
		if resp.RetCode != 0 {
			return errors.Errorf("bybit error %d: %s", resp.RetCode, resp.RetMsg)
		}
		rows = resp.Result.List
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(rows) < MinCandles {
		return nil, &apperr.DataSourceError{
			Reason: "not enough history available (need at least 30 daily candles)",
		}
	}

	series := make(entity.CandleSeries, 0, len(rows))
	for i, row := range rows {
		candle, err := parseKlineRow(row)
		if err != nil {
			return nil, &apperr.DataSourceError{
				Reason: "malformed kline row " + strconv.Itoa(i),
				Cause:  err,
			}
		}
		series = append(series, candle)
	}

	series.Sort()
	return series, nil
}

// lookupInstrument probes one segment/symbol combination via instruments-info.
// An empty instrument list with retCode 0 means "unknown symbol", not a failure.
func (c *Client) lookupInstrument(ctx context.Context, segment entity.Segment, symbol string) (string, bool, error) {
	sym := bybit.SymbolV5(symbol)

	var resolved string
	var found bool
	err := c.withRetry(ctx, "instruments-info", func() error {
		resp, err := c.api.GetInstrumentsInfo(bybit.V5GetInstrumentsInfoParam{
			Category: bybit.CategoryV5(segment),
			Symbol:   &sym,
		})
		if err != nil {
			return err
		}
		if resp.RetCode != 0 {
			return errors.Errorf("bybit error %d: %s", resp.RetCode, resp.RetMsg)
		}

		resolved, found = "", false
		switch segment {
		case entity.SegmentSpot:
			if resp.Result.Spot != nil && len(resp.Result.Spot.List) > 0 {
				resolved, found = string(resp.Result.Spot.List[0].Symbol), true
			}
		default:
			if resp.Result.LinearInverse != nil && len(resp.Result.LinearInverse.List) > 0 {
				resolved, found = string(resp.Result.LinearInverse.List[0].Symbol), true
			}
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}

	return resolved, found, nil
}

// withRetry runs fn up to the configured attempt count, sleeping with
// exponential backoff between failures. Exhausted attempts collapse into a
// single DataSourceError wrapping the last cause.
func (c *Client) withRetry(ctx context.Context, op string, fn func() error) error {
	delay := &backoff.Backoff{
		Min:    c.backoffMin,
		Max:    maxBackoff,
		Factor: 2,
	}

	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		c.l.Warn("bybit request failed",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.retries),
			zap.Error(lastErr))

		if attempt == c.retries {
			break
		}
		select {
		case <-time.After(delay.Duration()):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return &apperr.DataSourceError{
		Reason: "could not reach Bybit API, please try again shortly",
		Cause:  lastErr,
	}
}

// normalizeTicker uppercases the input and strips everything outside [A-Z0-9].
func normalizeTicker(raw string) (string, error) {
	cleaned := nonAlnum.ReplaceAllString(strings.ToUpper(strings.TrimSpace(raw)), "")
	if cleaned == "" {
		return "", apperr.NewValidation("please send a valid ticker (e.g. BTC, ETHUSDT, PEPE)")
	}
	if len(cleaned) > maxTickerLen {
		return "", apperr.NewValidation("ticker is too long, please send a normal symbol like BTC or SOLUSDT")
	}
	return cleaned, nil
}

// candidates expands a normalized ticker into the symbol forms to probe.
// A ticker already carrying a quote suffix is probed as-is; anything else is
// tried as USDT pair, then USD pair, then bare.
func candidates(normalized string) []string {
	for _, suffix := range quoteSuffixes {
		if strings.HasSuffix(normalized, suffix) {
			return []string{normalized}
		}
	}
	return []string{normalized + "USDT", normalized + "USD", normalized}
}

func parseKlineRow(row bybit.V5GetKlineItem) (entity.Candle, error) {
	ts, err := strconv.ParseInt(row.StartTime, 10, 64)
	if err != nil {
		return entity.Candle{}, errors.Wrap(err, "start time")
	}
	open, err := strconv.ParseFloat(row.Open, 64)
	if err != nil {
		return entity.Candle{}, errors.Wrap(err, "open")
	}
	high, err := strconv.ParseFloat(row.High, 64)
	if err != nil {
		return entity.Candle{}, errors.Wrap(err, "high")
	}
	low, err := strconv.ParseFloat(row.Low, 64)
	if err != nil {
		return entity.Candle{}, errors.Wrap(err, "low")
	}
	closePrice, err := strconv.ParseFloat(row.Close, 64)
	if err != nil {
		return entity.Candle{}, errors.Wrap(err, "close")
	}
	volume, err := strconv.ParseFloat(row.Volume, 64)
	if err != nil {
		return entity.Candle{}, errors.Wrap(err, "volume")
	}

	return entity.Candle{
		Ts:     ts,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
	}, nil
}
