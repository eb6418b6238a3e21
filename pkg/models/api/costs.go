package api

import "time"

type CostSummary struct {
	TotalSpend      float64   `json:"total_spend"`
	ForecastedSpend float64   `json:"forecasted_spend"`
	AverageSpend    float64   `json:"average_spend"`
	PeriodStart     time.Time `json:"period_start"`
	PeriodEnd       time.Time `json:"period_end"`
}

type TrendDataPoint struct {
	Period     string  `json:"period"`
	Value      float64 `json:"value"`
	GroupLabel string  `json:"group_label"`
}

type TopContributor struct {
	Name       string  `json:"name"`
	Spend      float64 `json:"spend"`
	Percentage float64 `json:"percentage"`
}

type UntaggedApplication struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Creator      string     `json:"creator"`
	WorkspaceID  string     `json:"workspace_id"`
	TotalSpend   float64    `json:"total_spend"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
}

type Error struct {
	Error string `json:"error"`
}
