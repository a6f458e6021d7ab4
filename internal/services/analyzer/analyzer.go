// Package analyzer turns a daily candle series into volatility, pump/dump,
// ATR and percentile risk statistics. Pure computation, no I/O.
//
// Conventions are inherited from the original research pipeline and must not
// drift: sample standard deviation with one degree of freedom, weekly
// volatility as daily x sqrt(7), ATR as the arithmetic mean of true range
// over the trailing window with the first candle's own close standing in for
// the missing previous close, percentiles by linear interpolation.
package analyzer

import (
	"fmt"
	"math"
	"sort"

	"github.com/vadiminshakov/voltbot/internal/apperr"
	"github.com/vadiminshakov/voltbot/internal/entity"
)

const (
	// MinCandles is the minimum series length the statistics are defined for.
	MinCandles = 30

	atrShortWindow = 14
	atrLongWindow  = 28
)

// Analyze computes the full statistics record for a candle series sorted
// ascending by timestamp. Fails deterministically on short series or
// non-positive prices instead of propagating NaNs.
func Analyze(series entity.CandleSeries) (entity.VolatilityStats, error) {
	if len(series) < MinCandles {
		return entity.VolatilityStats{}, &apperr.DataSourceError{
			Reason: fmt.Sprintf("need at least %d candles to analyze, got %d", MinCandles, len(series)),
		}
	}
	for i, c := range series {
		if c.Open <= 0 || c.Close <= 0 {
			return entity.VolatilityStats{}, &apperr.DataSourceError{
				Reason: fmt.Sprintf("non-positive price in candle %d", i),
			}
		}
	}

	n := len(series)

	logReturns := make([]float64, 0, n-1)
	simpleReturns := make([]float64, 0, n-1)
	pump := make([]float64, 0, n)
	dump := make([]float64, 0, n)
	trueRange := make([]float64, 0, n)

	for i, c := range series {
		pump = append(pump, (c.High-c.Open)/c.Open)
		dump = append(dump, (c.Low-c.Open)/c.Open)

		prevClose := c.Close
		if i > 0 {
			prevClose = series[i-1].Close
			logReturns = append(logReturns, math.Log(c.Close)-math.Log(prevClose))
			simpleReturns = append(simpleReturns, c.Close/prevClose-1)
		}
		trueRange = append(trueRange, math.Max(c.High-c.Low,
			math.Max(math.Abs(c.High-prevClose), math.Abs(c.Low-prevClose))))
	}

	dailyVol := sampleStd(logReturns)
	atr14 := mean(trueRange[n-atrShortWindow:])
	atr28 := mean(trueRange[n-atrLongWindow:])
	lastClose := series[n-1].Close

	levels := make(map[int]float64, len(entity.DCAPercentiles))
	sortedPump := append([]float64(nil), pump...)
	sort.Float64s(sortedPump)
	for _, p := range entity.DCAPercentiles {
		levels[p] = percentile(sortedPump, float64(p))
	}

	return entity.VolatilityStats{
		CandleCount:   n,
		DailyVol:      dailyVol,
		WeeklyVol:     dailyVol * math.Sqrt(7),
		MaxDailySurge: maxOf(simpleReturns),
		MaxDailyCrash: minOf(simpleReturns),
		PumpAvg:       mean(pump),
		PumpStd:       sampleStd(pump),
		PumpBest:      maxOf(pump),
		DumpAvg:       mean(dump),
		DumpStd:       sampleStd(dump),
		DumpWorst:     minOf(dump),
		ATR14:         atr14,
		ATR28:         atr28,
		ATR14Pct:      atr14 / lastClose,
		ATR28Pct:      atr28 / lastClose,
		DCALevels:     levels,
	}, nil
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStd is the Bessel-corrected standard deviation (divisor len-1).
func sampleStd(xs []float64) float64 {
	m := mean(xs)
	var sumSq float64
	for _, x := range xs {
		d := x - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)-1))
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// percentile computes the p-th percentile of pre-sorted data with linear
// interpolation between the two nearest ranks.
func percentile(sorted []float64, p float64) float64 {
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
