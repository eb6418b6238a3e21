package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// aggregateTrends buckets matching usage rows by calendar period, sub-groups
// them by the chosen dimension, and sums spend per cell at decimal precision.
// Only non-empty cells are emitted; gaps between buckets are not filled.
//
// Ordering: buckets chronologically, then descending spend within a bucket,
// ties broken by group label ascending.
func aggregateTrends(
	js *joinedSnapshot,
	rf domain.ResolvedFilter,
	opts domain.AggregationOptions,
) []domain.TrendDataPoint {
	type bucket struct {
		start  time.Time
		label  string
		groups map[string]decimal.Decimal
	}

	buckets := make(map[time.Time]*bucket)
	for _, row := range js.rows {
		if !row.matches(rf) {
			continue
		}

		labels := js.groupLabels(row, opts.GroupBy, rf.TagIDs)
		if len(labels) == 0 {
			continue
		}

		start, label := bucketFor(row.record.UsageDate, opts.Period)
		b, ok := buckets[start]
		if !ok {
			b = &bucket{start: start, label: label, groups: map[string]decimal.Decimal{}}
			buckets[start] = b
		}
		spend := row.record.Spend()
		for _, g := range labels {
			b.groups[g] = b.groups[g].Add(spend)
		}
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].start.Before(ordered[j].start)
	})

	var points []domain.TrendDataPoint
	for _, b := range ordered {
		cells := make([]domain.TrendDataPoint, 0, len(b.groups))
		for g, sum := range b.groups {
			cells = append(cells, domain.TrendDataPoint{
				Period:     b.label,
				Value:      sum.InexactFloat64(),
				GroupLabel: g,
			})
		}
		sort.Slice(cells, func(i, j int) bool {
			if cells[i].Value != cells[j].Value {
				return cells[i].Value > cells[j].Value
			}
			return cells[i].GroupLabel < cells[j].GroupLabel
		})
		points = append(points, cells...)
	}
	return points
}

// groupLabels returns the labels a row contributes spend under. Tag grouping
// fans out across the application's tags, narrowed to the filter's tag set when
// one is given; a row whose application has no qualifying tags contributes to
// no tag group.
func (js *joinedSnapshot) groupLabels(row usageRow, by domain.GroupBy, filterTags []int64) []string {
	switch by {
	case domain.GroupByCreator:
		if row.app == nil {
			return nil
		}
		return []string{row.app.Creator}
	case domain.GroupByTag:
		if row.app == nil {
			return nil
		}
		ids := row.tagIDs
		if len(filterTags) > 0 {
			ids = intersectIDs(ids, filterTags)
		}
		labels := make([]string, 0, len(ids))
		for _, id := range ids {
			if name, ok := js.tagNames[id]; ok {
				labels = append(labels, name)
			}
		}
		return labels
	default:
		if row.app == nil {
			return nil
		}
		return []string{row.app.Name}
	}
}

// bucketFor maps an instant to its calendar bucket start and display label.
// Weeks are ISO weeks (Monday start).
func bucketFor(t time.Time, period domain.Period) (time.Time, string) {
	switch period {
	case domain.PeriodDaily:
		start := startOfDay(t)
		return start, start.Format("2006-01-02")
	case domain.PeriodWeekly:
		start := startOfISOWeek(t)
		year, week := start.ISOWeek()
		return start, fmt.Sprintf("%d-W%02d", year, week)
	default:
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		return start, start.Format("Jan 2006")
	}
}
