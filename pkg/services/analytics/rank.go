package analytics

import (
	"sort"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// rankContributors collapses matching rows into one spend total per group,
// ranks them descending (ties by name ascending) and truncates to limit.
//
// Percentages are taken against the grand total over ALL matching groups, not
// the truncated set, so a truncated list's percentages need not sum to 100.
// A zero grand total yields zero percentages rather than a division error.
func rankContributors(
	js *joinedSnapshot,
	rf domain.ResolvedFilter,
	by domain.GroupBy,
	limit int,
) []domain.TopContributor {
	totals := make(map[string]decimal.Decimal)
	for _, row := range js.rows {
		if !row.matches(rf) {
			continue
		}
		spend := row.record.Spend()
		for _, g := range js.groupLabels(row, by, rf.TagIDs) {
			totals[g] = totals[g].Add(spend)
		}
	}

	grand := decimal.Zero
	for _, sum := range totals {
		grand = grand.Add(sum)
	}

	hundred := decimal.NewFromInt(100)
	contributors := make([]domain.TopContributor, 0, len(totals))
	for name, sum := range totals {
		pct := decimal.Zero
		if grand.IsPositive() {
			pct = sum.Mul(hundred).Div(grand)
		}
		contributors = append(contributors, domain.TopContributor{
			Name:       name,
			Spend:      sum.InexactFloat64(),
			Percentage: pct.InexactFloat64(),
		})
	}

	sort.Slice(contributors, func(i, j int) bool {
		if contributors[i].Spend != contributors[j].Spend {
			return contributors[i].Spend > contributors[j].Spend
		}
		return contributors[i].Name < contributors[j].Name
	})

	if limit > 0 && len(contributors) > limit {
		contributors = contributors[:limit]
	}
	return contributors
}
