// Package ladder derives a 6-step short-entry DCA plan from pump-percentile
// statistics.
//
// Sizing contract: martingale doubling. Step k (k = 0..5, ascending
// percentile) allocates firstCostBasis * 2^k, so the rarest adverse pump
// carries the capital that pulls the average entry furthest out. Amounts are
// decimal so ladder sizes stay exact.
package ladder

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/voltbot/internal/apperr"
	"github.com/vadiminshakov/voltbot/internal/entity"
)

// Build turns percentile pump levels into laddered short entries above the
// last close. Trigger levels come from stats.DCALevels, one rung per entry of
// entity.DCAPercentiles, ascending.
func Build(res entity.Resolution, stats entity.VolatilityStats, lastClose float64, firstCostBasis decimal.Decimal) (entity.DCAPlan, error) {
	if !firstCostBasis.IsPositive() {
		return entity.DCAPlan{}, apperr.NewValidation("first cost basis must be positive, got %s", firstCostBasis.String())
	}
	if lastClose <= 0 {
		return entity.DCAPlan{}, errors.Errorf("last close must be positive, got %f", lastClose)
	}

	closePrice := decimal.NewFromFloat(lastClose)

	steps := make([]entity.DCAStep, 0, len(entity.DCAPercentiles))
	total := decimal.Zero
	size := firstCostBasis
	for _, p := range entity.DCAPercentiles {
		level := stats.DCALevels[p]
		target := closePrice.Mul(decimal.NewFromFloat(1 + level))

		steps = append(steps, entity.DCAStep{
			Percentile:   p,
			TriggerLevel: level,
			TargetPrice:  target,
			CostBasis:    size,
		})
		total = total.Add(size)
		size = size.Mul(decimal.NewFromInt(2))
	}

	return entity.DCAPlan{
		Symbol:         res.Symbol,
		Segment:        res.Segment,
		LastClose:      closePrice,
		FirstCostBasis: firstCostBasis,
		Steps:          steps,
		TotalCostBasis: total,
	}, nil
}
