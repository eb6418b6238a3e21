package adapters

import (
	"maps"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/models/store"
	"github.com/shopspring/decimal"
)

func MapStoreUsageRecordToDomain(r store.UsageRecord) domain.UsageRecord {
	return domain.UsageRecord{
		ID:            r.ID,
		WorkspaceID:   r.WorkspaceID,
		SKUName:       r.SKUName,
		Cloud:         r.Cloud,
		UsageDate:     r.UsageDate,
		UsageUnit:     r.UsageUnit,
		UsageQuantity: decimal.NewFromFloat(r.UsageQuantity),
		UnitPrice:     decimal.NewFromFloat(r.UnitPrice),
		Metadata:      maps.Clone(r.Metadata),
	}
}

func MapStoreApplicationToDomain(a store.Application) domain.Application {
	return domain.Application{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Creator:     a.Creator,
		WorkspaceID: a.WorkspaceID,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func MapStoreTagToDomain(t store.Tag) domain.Tag {
	return domain.Tag{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Color:       t.Color,
		CreatedAt:   t.CreatedAt,
	}
}

func MapStoreApplicationTagToDomain(l store.ApplicationTag) domain.ApplicationTagLink {
	return domain.ApplicationTagLink{
		ApplicationID: l.ApplicationID,
		TagID:         l.TagID,
		AssignedAt:    l.AssignedAt,
	}
}

func MapStoreRecommendationToDomain(r store.Recommendation) domain.Recommendation {
	return domain.Recommendation{
		ID:               r.ID,
		Title:            r.Title,
		Description:      r.Description,
		PotentialSavings: r.PotentialSavings,
		Priority:         domain.Priority(r.Priority),
		Category:         r.Category,
		IsActive:         r.IsActive,
		CreatedAt:        r.CreatedAt,
	}
}
