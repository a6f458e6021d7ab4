package ladder

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/voltbot/internal/apperr"
	"github.com/vadiminshakov/voltbot/internal/entity"
)

func testStats() entity.VolatilityStats {
	return entity.VolatilityStats{
		DCALevels: map[int]float64{
			75: 0.05, 80: 0.06, 85: 0.08, 90: 0.10, 95: 0.14, 99: 0.22,
		},
	}
}

func testResolution() entity.Resolution {
	return entity.Resolution{Segment: entity.SegmentLinear, Symbol: "BTCUSDT"}
}

func TestBuild_SixDoublingSteps(t *testing.T) {
	plan, err := Build(testResolution(), testStats(), 100, decimal.NewFromInt(1000))
	require.NoError(t, err)

	require.Equal(t, "BTCUSDT", plan.Symbol)
	require.Equal(t, entity.SegmentLinear, plan.Segment)
	require.Len(t, plan.Steps, 6)

	wantSizes := []int64{1000, 2000, 4000, 8000, 16000, 32000}
	prevTarget := decimal.Zero
	for i, step := range plan.Steps {
		require.Equal(t, entity.DCAPercentiles[i], step.Percentile)
		require.True(t, step.CostBasis.Equal(decimal.NewFromInt(wantSizes[i])),
			"step %d size %s", i, step.CostBasis)
		require.True(t, step.TargetPrice.GreaterThanOrEqual(prevTarget),
			"targets must not decrease with rarer percentiles")
		prevTarget = step.TargetPrice
	}

	// P75 level 0.05 over last close 100
	require.True(t, plan.Steps[0].TargetPrice.Equal(decimal.NewFromInt(105)))
	require.True(t, plan.TotalCostBasis.Equal(decimal.NewFromInt(63000)))
}

func TestBuild_NonPositiveBasis(t *testing.T) {
	for _, basis := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := Build(testResolution(), testStats(), 100, basis)
		var validation *apperr.ValidationError
		require.ErrorAs(t, err, &validation)
	}
}

func TestBuild_NonPositiveLastClose(t *testing.T) {
	_, err := Build(testResolution(), testStats(), 0, decimal.NewFromInt(1000))
	require.Error(t, err)
}
