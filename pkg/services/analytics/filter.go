package analytics

import (
	"time"

	"github.com/de-tools/cost-lens/pkg/models/domain"
)

// ResolveFilter turns a symbolic CostFilter into a concrete predicate relative
// to the supplied instant. It is a pure function: callers inject "now" so
// resolution stays reproducible.
//
// Resolution priority: a custom range requires both explicit bounds; otherwise
// explicit bounds override the named range's defaults; otherwise the named
// range expands to [period start, now].
func ResolveFilter(f domain.CostFilter, now time.Time) (domain.ResolvedFilter, error) {
	tr := f.TimeRange
	if tr == "" {
		tr = domain.TimeRangeYTD
	}

	if tr == domain.TimeRangeCustom {
		if f.StartDate == nil || f.EndDate == nil {
			return domain.ResolvedFilter{}, domain.ErrMissingCustomBounds
		}
		if f.StartDate.After(*f.EndDate) {
			return domain.ResolvedFilter{}, domain.NewValidationError(
				"start_date", "start_date must not be after end_date")
		}
		return resolved(f, *f.StartDate, *f.EndDate, *f.EndDate), nil
	}

	start, nominalEnd := expandNamedRange(tr, now)
	end := now

	if f.StartDate != nil {
		start = *f.StartDate
	}
	if f.EndDate != nil {
		end = *f.EndDate
		nominalEnd = end
	}
	if start.After(end) {
		return domain.ResolvedFilter{}, domain.NewValidationError(
			"start_date", "start_date must not be after end_date")
	}

	return resolved(f, start, end, nominalEnd), nil
}

func resolved(f domain.CostFilter, start, end, nominalEnd time.Time) domain.ResolvedFilter {
	return domain.ResolvedFilter{
		Window:       domain.Window{Start: start, End: end},
		NominalEnd:   nominalEnd,
		Creator:      f.Creator,
		TagIDs:       f.TagIDs,
		WorkspaceIDs: f.WorkspaceIDs,
	}
}

// expandNamedRange returns the default start of the named range and the end of
// the full nominal period it belongs to.
func expandNamedRange(tr domain.TimeRange, now time.Time) (start, nominalEnd time.Time) {
	switch tr {
	case domain.TimeRangeDay:
		start = startOfDay(now)
		return start, start.AddDate(0, 0, 1)
	case domain.TimeRangeWeek:
		start = startOfISOWeek(now)
		return start, start.AddDate(0, 0, 7)
	case domain.TimeRangeMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0)
	case domain.TimeRangeQuarter:
		qm := time.Month((int(now.Month())-1)/3*3 + 1)
		start = time.Date(now.Year(), qm, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 3, 0)
	default: // year and ytd both anchor at Jan 1
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(1, 0, 0)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfISOWeek truncates to the preceding Monday.
func startOfISOWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
