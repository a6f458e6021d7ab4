package entity

import "sort"

// Candle is a single daily OHLCV bar. Ts is the candle open time in
// milliseconds since epoch, as returned by the Bybit kline endpoint.
type Candle struct {
	Ts     int64
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// CandleSeries is a candle sequence ordered ascending by Ts.
type CandleSeries []Candle

// Sort orders the series ascending by timestamp. Idempotent.
func (s CandleSeries) Sort() {
	sort.Slice(s, func(i, j int) bool { return s[i].Ts < s[j].Ts })
}

// LastClose returns the close of the most recent candle, 0 for an empty series.
func (s CandleSeries) LastClose() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Close
}
