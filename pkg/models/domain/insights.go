package domain

import "time"

// CostSummary describes spend over a resolved window.
type CostSummary struct {
	TotalSpend      float64
	ForecastedSpend float64
	AverageSpend    float64
	PeriodStart     time.Time
	PeriodEnd       time.Time
}

// TrendDataPoint is one non-empty (period bucket, group) cell of an aggregation.
type TrendDataPoint struct {
	Period     string
	Value      float64
	GroupLabel string
}

type TopContributor struct {
	Name       string
	Spend      float64
	Percentage float64
}

// UntaggedApplication is an application with no tag links, joined with its
// spend inside the filter window. LastActivity is nil when the window holds no
// usage for the application.
type UntaggedApplication struct {
	Application
	TotalSpend   float64
	LastActivity *time.Time
}

// MutationResult is the outcome of an idempotent mutation. Expected conditions
// (duplicate assign, missing link on remove) report success.
type MutationResult struct {
	Success bool
	Message string
}

// Snapshot is a read-only view of the row set analytics computations run over.
// Nothing in the computation layer mutates it, so one snapshot may serve any
// number of concurrent requests.
type Snapshot struct {
	Records      []UsageRecord
	Applications []Application
	Tags         []Tag
	Links        []ApplicationTagLink
}
