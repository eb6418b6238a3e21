package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type TimeRange string

const (
	TimeRangeDay     TimeRange = "day"
	TimeRangeWeek    TimeRange = "week"
	TimeRangeMonth   TimeRange = "month"
	TimeRangeQuarter TimeRange = "quarter"
	TimeRangeYear    TimeRange = "year"
	TimeRangeYTD     TimeRange = "ytd"
	TimeRangeCustom  TimeRange = "custom"
)

// ParseTimeRange maps a raw string to a TimeRange. An empty string resolves to
// the default (ytd); anything unknown is a validation error.
func ParseTimeRange(s string) (TimeRange, error) {
	switch TimeRange(s) {
	case "":
		return TimeRangeYTD, nil
	case TimeRangeDay, TimeRangeWeek, TimeRangeMonth, TimeRangeQuarter,
		TimeRangeYear, TimeRangeYTD, TimeRangeCustom:
		return TimeRange(s), nil
	}
	return "", NewValidationError("time_range", fmt.Sprintf("unknown time range %q", s))
}

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return PeriodMonthly, nil
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return Period(s), nil
	}
	return "", NewValidationError("period", fmt.Sprintf("unknown aggregation period %q", s))
}

type GroupBy string

const (
	GroupByApp     GroupBy = "app"
	GroupByCreator GroupBy = "creator"
	GroupByTag     GroupBy = "tag"
)

func ParseGroupBy(s string) (GroupBy, error) {
	switch GroupBy(s) {
	case "":
		return GroupByApp, nil
	case GroupByApp, GroupByCreator, GroupByTag:
		return GroupBy(s), nil
	}
	return "", NewValidationError("group_by", fmt.Sprintf("unknown grouping %q", s))
}

// CostFilter is the symbolic filter supplied by callers: a named time range with
// optional explicit bounds plus creator/tag/workspace constraints. Empty tag and
// workspace sets mean unconstrained.
type CostFilter struct {
	TimeRange    TimeRange
	StartDate    *time.Time
	EndDate      *time.Time
	Creator      string
	TagIDs       []int64
	WorkspaceIDs []string
}

type AggregationOptions struct {
	Period  Period
	GroupBy GroupBy
}

// Window is a concrete half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// ResolvedFilter is a fully determined predicate produced from a CostFilter.
// NominalEnd is the end of the named period the window belongs to (end of today,
// of the ISO week, of the month, ...); for custom or explicit bounds it equals
// Window.End. It exists so forecasting can extrapolate to the full period.
type ResolvedFilter struct {
	Window       Window
	NominalEnd   time.Time
	Creator      string
	TagIDs       []int64
	WorkspaceIDs []string
}

// UsageRecord is one billed unit of consumption. Records are immutable once
// ingested; the spend contribution is UsageQuantity * UnitPrice.
type UsageRecord struct {
	ID            string
	WorkspaceID   string
	SKUName       string
	Cloud         string
	UsageDate     time.Time
	UsageUnit     string
	UsageQuantity decimal.Decimal
	UnitPrice     decimal.Decimal
	Metadata      map[string]string
}

func (u UsageRecord) Spend() decimal.Decimal {
	return u.UsageQuantity.Mul(u.UnitPrice)
}
