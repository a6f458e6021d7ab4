package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCandleSeries_Sort(t *testing.T) {
	series := CandleSeries{
		{Ts: 3, Close: 30},
		{Ts: 1, Close: 10},
		{Ts: 2, Close: 20},
	}

	series.Sort()
	require.Equal(t, []int64{1, 2, 3}, []int64{series[0].Ts, series[1].Ts, series[2].Ts})

	sortedOnce := append(CandleSeries(nil), series...)
	series.Sort()
	require.Equal(t, sortedOnce, series, "sorting a sorted series must change nothing")

	require.Equal(t, 30.0, series.LastClose())
	require.Zero(t, CandleSeries{}.LastClose())
}
