package entity

// Segment is the Bybit v5 market category an instrument trades under.
type Segment string

const (
	SegmentLinear  Segment = "linear"
	SegmentInverse Segment = "inverse"
	SegmentSpot    Segment = "spot"
)

// SegmentSearchOrder is the fixed order in which segments are probed during
// symbol resolution. USDT-margined linear perpetuals win over spot when a
// ticker exists in several segments.
func SegmentSearchOrder() []Segment {
	return []Segment{SegmentLinear, SegmentInverse, SegmentSpot}
}

// Resolution binds a user ticker to a concrete tradable instrument.
// Produced once per request, never mutated.
type Resolution struct {
	Segment Segment
	Symbol  string
}
