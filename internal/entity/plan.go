package entity

import "github.com/shopspring/decimal"

// DCAStep is one rung of a staged short-entry ladder.
type DCAStep struct {
	// Percentile of the pump distribution that triggers this rung.
	Percentile int
	// TriggerLevel is the pump ratio at that percentile (0.08 == +8% above open).
	TriggerLevel float64
	// TargetPrice is the short entry price: last close scaled by the trigger level.
	TargetPrice decimal.Decimal
	// CostBasis is the quote amount allocated to this rung.
	CostBasis decimal.Decimal
}

// DCAPlan is a 6-step laddered short-entry plan for one instrument.
// Steps are ordered by ascending percentile. Derived per request, not persisted.
type DCAPlan struct {
	Symbol         string
	Segment        Segment
	LastClose      decimal.Decimal
	FirstCostBasis decimal.Decimal
	Steps          []DCAStep
	TotalCostBasis decimal.Decimal
}
