package analytics

import (
	"sort"
	"time"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// detectUntagged set-differences all applications against tag-link membership:
// an application with zero links is untagged, one with any link is excluded.
// Spend and last activity come from the application's usage rows inside the
// filter window; a nil filter leaves the rows unconstrained.
//
// Results are ordered by total spend descending, ties by name ascending.
func detectUntagged(js *joinedSnapshot, rf *domain.ResolvedFilter) []domain.UntaggedApplication {
	spend := make(map[int64]decimal.Decimal)
	lastActivity := make(map[int64]time.Time)
	for _, row := range js.rows {
		if row.app == nil {
			continue
		}
		if rf != nil && !row.matches(*rf) {
			continue
		}
		id := row.app.ID
		spend[id] = spend[id].Add(row.record.Spend())
		if row.record.UsageDate.After(lastActivity[id]) {
			lastActivity[id] = row.record.UsageDate
		}
	}

	var untagged []domain.UntaggedApplication
	for _, app := range js.apps {
		if _, linked := js.tagged[app.ID]; linked {
			continue
		}
		u := domain.UntaggedApplication{
			Application: app,
			TotalSpend:  spend[app.ID].InexactFloat64(),
		}
		if at, ok := lastActivity[app.ID]; ok {
			t := at
			u.LastActivity = &t
		}
		untagged = append(untagged, u)
	}

	sort.Slice(untagged, func(i, j int) bool {
		if untagged[i].TotalSpend != untagged[j].TotalSpend {
			return untagged[i].TotalSpend > untagged[j].TotalSpend
		}
		return untagged[i].Name < untagged[j].Name
	})
	return untagged
}
