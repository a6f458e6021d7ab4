package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/voltbot/internal/entity"
)

func TestFormatDCAPlan(t *testing.T) {
	plan := entity.DCAPlan{
		Symbol:         "ETHUSDT",
		Segment:        entity.SegmentLinear,
		LastClose:      decimal.NewFromInt(2000),
		FirstCostBasis: decimal.NewFromInt(500),
		Steps: []entity.DCAStep{
			{Percentile: 75, TriggerLevel: 0.05, TargetPrice: decimal.NewFromInt(2100), CostBasis: decimal.NewFromInt(500)},
			{Percentile: 99, TriggerLevel: 0.20, TargetPrice: decimal.NewFromInt(2400), CostBasis: decimal.NewFromInt(1000)},
		},
		TotalCostBasis: decimal.NewFromInt(1500),
	}

	text := FormatDCAPlan(plan)
	require.Contains(t, text, "*Short DCA Ladder — ETHUSDT*")
	require.Contains(t, text, "Market: `linear` | Last Close: `2000`")
	require.Contains(t, text, "First entry cost basis: `500`")
	require.Contains(t, text, "• Step 1 (P75): entry `2100.000000` (+5.00%) | size `500`")
	require.Contains(t, text, "• Step 2 (P99): entry `2400.000000` (+20.00%) | size `1000`")
	require.Contains(t, text, "Total allocated: `1500`")
}

func TestPct(t *testing.T) {
	require.Equal(t, "5.12%", pct(0.0512))
	require.Equal(t, "-10.00%", pct(-0.1))
	require.Equal(t, "0.00%", pct(0))
}
