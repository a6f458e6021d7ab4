// Package report orchestrates the pipeline: resolve ticker, fetch candles,
// analyze, then either format a volatility report or build a DCA plan.
// Straight-line composition, no retries of its own.
package report

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/voltbot/internal/apperr"
	"github.com/vadiminshakov/voltbot/internal/entity"
	"github.com/vadiminshakov/voltbot/internal/services/analyzer"
	"github.com/vadiminshakov/voltbot/internal/services/ladder"
	"github.com/vadiminshakov/voltbot/internal/services/market"
)

// marketClient is the market-data dependency of the service.
type marketClient interface {
	Resolve(ctx context.Context, raw string) (entity.Resolution, error)
	FetchDailyCandles(ctx context.Context, res entity.Resolution, limit int) (entity.CandleSeries, error)
}

// Service exposes the two user-facing operations of the analytics core.
// Stateless across calls; safe for concurrent use.
type Service struct {
	market      marketClient
	candleLimit int
}

// New builds a report service. candleLimit outside (0, MaxCandleLimit] falls
// back to the fetch cap.
func New(m marketClient, candleLimit int) *Service {
	if candleLimit <= 0 || candleLimit > market.MaxCandleLimit {
		candleLimit = market.MaxCandleLimit
	}
	return &Service{market: m, candleLimit: candleLimit}
}

// GenerateReport resolves the user text as a ticker and renders the full
// volatility report.
func (s *Service) GenerateReport(ctx context.Context, userText string) (string, error) {
	res, err := s.market.Resolve(ctx, userText)
	if err != nil {
		return "", err
	}

	series, err := s.market.FetchDailyCandles(ctx, res, s.candleLimit)
	if err != nil {
		return "", err
	}

	stats, err := analyzer.Analyze(series)
	if err != nil {
		return "", err
	}

	return FormatReport(res, stats), nil
}

// GenerateDCAPlan builds the 6-step short ladder for a ticker and a first
// entry cost basis.
func (s *Service) GenerateDCAPlan(ctx context.Context, ticker string, firstCostBasis decimal.Decimal) (entity.DCAPlan, error) {
	if !firstCostBasis.IsPositive() {
		return entity.DCAPlan{}, apperr.NewValidation("first cost basis must be positive, got %s", firstCostBasis.String())
	}

	res, err := s.market.Resolve(ctx, ticker)
	if err != nil {
		return entity.DCAPlan{}, err
	}

	series, err := s.market.FetchDailyCandles(ctx, res, s.candleLimit)
	if err != nil {
		return entity.DCAPlan{}, err
	}

	stats, err := analyzer.Analyze(series)
	if err != nil {
		return entity.DCAPlan{}, err
	}

	return ladder.Build(res, stats, series.LastClose(), firstCostBasis)
}
