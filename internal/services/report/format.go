package report

import (
	"fmt"
	"strings"

	"github.com/vadiminshakov/voltbot/internal/entity"
)

// pct renders a fraction as a percentage with two decimals: 0.0512 -> "5.12%".
func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// FormatReport renders the volatility report as Telegram Markdown. The section
// order and number formats are a stable contract: percentages to two decimals,
// raw ATR values to six.
func FormatReport(res entity.Resolution, stats entity.VolatilityStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Volatility Analysis — %s*\n", res.Symbol)
	fmt.Fprintf(&b, "Market: `%s` | Candles: `%d`\n\n", res.Segment, stats.CandleCount)

	b.WriteString("*Daily Stats*\n")
	fmt.Fprintf(&b, "• Volatility (Daily): `%s`\n", pct(stats.DailyVol))
	fmt.Fprintf(&b, "• Volatility (Weekly): `%s`\n", pct(stats.WeeklyVol))
	fmt.Fprintf(&b, "• Max Daily Surge: `%s`\n", pct(stats.MaxDailySurge))
	fmt.Fprintf(&b, "• Max Daily Crash: `%s`\n\n", pct(stats.MaxDailyCrash))

	b.WriteString("*Intraday Pump / Dump*\n")
	fmt.Fprintf(&b, "• Pump Avg / Std: `%s` / `%s`\n", pct(stats.PumpAvg), pct(stats.PumpStd))
	fmt.Fprintf(&b, "• Best Pump: `%s`\n", pct(stats.PumpBest))
	fmt.Fprintf(&b, "• Dump Avg / Std: `%s` / `%s`\n", pct(stats.DumpAvg), pct(stats.DumpStd))
	fmt.Fprintf(&b, "• Worst Dump: `%s`\n\n", pct(stats.DumpWorst))

	b.WriteString("*Risk Metrics (ATR)*\n")
	fmt.Fprintf(&b, "• ATR(14): `%.6f` (%s)\n", stats.ATR14, pct(stats.ATR14Pct))
	fmt.Fprintf(&b, "• ATR(28): `%.6f` (%s)\n\n", stats.ATR28, pct(stats.ATR28Pct))

	b.WriteString("*Martingale / DCA Levels (Pump Percentiles)*\n")
	for _, p := range entity.DCAPercentiles {
		fmt.Fprintf(&b, "• P%d: `%s`\n", p, pct(stats.DCALevels[p]))
	}

	b.WriteString("\n_Tip: Higher percentile levels represent rarer up-moves and can be used as more conservative DCA zones._")

	return b.String()
}

// FormatDCAPlan renders the short ladder as Telegram Markdown.
func FormatDCAPlan(plan entity.DCAPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Short DCA Ladder — %s*\n", plan.Symbol)
	fmt.Fprintf(&b, "Market: `%s` | Last Close: `%s`\n", plan.Segment, plan.LastClose.String())
	fmt.Fprintf(&b, "First entry cost basis: `%s`\n\n", plan.FirstCostBasis.String())

	for i, step := range plan.Steps {
		fmt.Fprintf(&b, "• Step %d (P%d): entry `%s` (+%s) | size `%s`\n",
			i+1, step.Percentile,
			step.TargetPrice.StringFixed(6),
			pct(step.TriggerLevel),
			step.CostBasis.String())
	}

	fmt.Fprintf(&b, "\nTotal allocated: `%s`\n", plan.TotalCostBasis.String())
	b.WriteString("_Sizes double each step: later rungs trigger on rarer pumps and pull the average entry further out._")

	return b.String()
}
