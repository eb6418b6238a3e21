package adapters

import (
	"github.com/de-tools/cost-lens/pkg/models/api"
	"github.com/de-tools/cost-lens/pkg/models/domain"
)

func MapCostSummaryDomainToApi(s domain.CostSummary) api.CostSummary {
	return api.CostSummary{
		TotalSpend:      s.TotalSpend,
		ForecastedSpend: s.ForecastedSpend,
		AverageSpend:    s.AverageSpend,
		PeriodStart:     s.PeriodStart,
		PeriodEnd:       s.PeriodEnd,
	}
}

func MapTrendDataPointDomainToApi(p domain.TrendDataPoint) api.TrendDataPoint {
	return api.TrendDataPoint{
		Period:     p.Period,
		Value:      p.Value,
		GroupLabel: p.GroupLabel,
	}
}

func MapTopContributorDomainToApi(c domain.TopContributor) api.TopContributor {
	return api.TopContributor{
		Name:       c.Name,
		Spend:      c.Spend,
		Percentage: c.Percentage,
	}
}

func MapUntaggedApplicationDomainToApi(u domain.UntaggedApplication) api.UntaggedApplication {
	return api.UntaggedApplication{
		ID:           u.ID,
		Name:         u.Name,
		Creator:      u.Creator,
		WorkspaceID:  u.WorkspaceID,
		TotalSpend:   u.TotalSpend,
		LastActivity: u.LastActivity,
	}
}

func MapApplicationDomainToApi(a domain.Application) api.Application {
	return api.Application{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Creator:     a.Creator,
		WorkspaceID: a.WorkspaceID,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func MapTagDomainToApi(t domain.Tag) api.Tag {
	return api.Tag{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Color:       t.Color,
		CreatedAt:   t.CreatedAt,
	}
}

func MapRecommendationDomainToApi(r domain.Recommendation) api.Recommendation {
	return api.Recommendation{
		ID:               r.ID,
		Title:            r.Title,
		Description:      r.Description,
		PotentialSavings: r.PotentialSavings,
		Priority:         string(r.Priority),
		Category:         r.Category,
		IsActive:         r.IsActive,
		CreatedAt:        r.CreatedAt,
	}
}

func MapMutationResultDomainToApi(m domain.MutationResult) api.MutationResult {
	return api.MutationResult{Success: m.Success, Message: m.Message}
}
