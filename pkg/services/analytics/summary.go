package analytics

import (
	"math"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// summarize computes total, average and forecasted spend for a resolved window.
//
// Average spend is per elapsed day regardless of display aggregation. The
// forecast is a linear extrapolation from the elapsed fraction of the window to
// its full nominal length; a zero-width window yields the total unchanged.
func summarize(js *joinedSnapshot, rf domain.ResolvedFilter) domain.CostSummary {
	total := decimal.Zero
	for _, row := range js.rows {
		if row.matches(rf) {
			total = total.Add(row.record.Spend())
		}
	}

	elapsed := rf.Window.End.Sub(rf.Window.Start)
	full := rf.NominalEnd.Sub(rf.Window.Start)

	forecast := total
	if elapsed > 0 && full > elapsed {
		ratio := decimal.NewFromFloat(full.Seconds() / elapsed.Seconds())
		forecast = total.Mul(ratio)
	}

	days := int64(math.Ceil(elapsed.Hours() / 24))
	if days < 1 {
		days = 1
	}
	average := total.Div(decimal.NewFromInt(days))

	return domain.CostSummary{
		TotalSpend:      total.InexactFloat64(),
		ForecastedSpend: forecast.InexactFloat64(),
		AverageSpend:    average.InexactFloat64(),
		PeriodStart:     rf.Window.Start,
		PeriodEnd:       rf.Window.End,
	}
}
