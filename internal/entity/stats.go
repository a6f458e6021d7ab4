package entity

// DCAPercentiles are the pump-distribution percentiles reported as short-entry
// trigger levels, ascending. Keep ascending: the ladder builder and the report
// formatter both rely on this order.
var DCAPercentiles = []int{75, 80, 85, 90, 95, 99}

// VolatilityStats is the fixed set of statistics derived from a daily candle
// series. Volatilities and returns are fractions (0.05 == 5%), ATR values are
// absolute price units with percent-of-last-close companions.
type VolatilityStats struct {
	CandleCount int

	DailyVol  float64
	WeeklyVol float64

	MaxDailySurge float64
	MaxDailyCrash float64

	PumpAvg  float64
	PumpStd  float64
	PumpBest float64

	DumpAvg   float64
	DumpStd   float64
	DumpWorst float64

	ATR14    float64
	ATR28    float64
	ATR14Pct float64
	ATR28Pct float64

	// DCALevels maps each entry of DCAPercentiles to the pump ratio at that
	// percentile of the intraday pump distribution.
	DCALevels map[int]float64
}
